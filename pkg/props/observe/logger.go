// Package observe provides observability for propkit: structured
// logging via slog and opt-in dispatch metrics via OpenTelemetry.
//
// Everything here is nil-safe and no-op by default, so schemas without a
// configured logger or recorder pay almost nothing.
package observe

import (
	"log/slog"
)

// LogCompiled logs successful schema compilation.
func LogCompiled(logger *slog.Logger, schema string, fields, warnings int) {
	if logger == nil {
		return
	}
	logger.Debug("schema compiled",
		slog.String("schema", schema),
		slog.Int("fields", fields),
		slog.Int("warnings", warnings),
	)
}

// LogUnconfigured logs the warning for a field declared without a usable
// descriptor.
func LogUnconfigured(logger *slog.Logger, schema, field string) {
	if logger == nil {
		return
	}
	logger.Warn("property not configured, no accessors synthesized",
		slog.String("schema", schema),
		slog.String("field", field),
	)
}

// LogDispatchMiss logs an undefined-method call.
func LogDispatchMiss(logger *slog.Logger, schema, objectID, method string) {
	if logger == nil {
		return
	}
	logger.Error("undefined method",
		slog.String("schema", schema),
		slog.String("object_id", objectID),
		slog.String("method", method),
	)
}

// LogTypeMismatch logs a rejected setter value.
func LogTypeMismatch(logger *slog.Logger, schema, objectID, field, expected, got string) {
	if logger == nil {
		return
	}
	logger.Error("setter value failed type check",
		slog.String("schema", schema),
		slog.String("object_id", objectID),
		slog.String("field", field),
		slog.String("expected", expected),
		slog.String("got", got),
	)
}

// LogConstructed logs object construction.
func LogConstructed(logger *slog.Logger, schema, objectID string) {
	if logger == nil {
		return
	}
	logger.Debug("object constructed",
		slog.String("schema", schema),
		slog.String("object_id", objectID),
	)
}
