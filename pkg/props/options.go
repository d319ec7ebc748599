package props

import (
	"log/slog"

	"github.com/randalmurphal/propkit/pkg/props/observe"
)

// Initializer is the post-construction extension point. It runs once
// after accessors are synthesized and defaults are applied, receiving
// the arguments given to CompiledSchema.New.
type Initializer func(obj *Object, args ...any) error

// Option configures a Schema.
type Option func(*Schema)

// WithName sets the schema name used in diagnostics and undefined-method
// errors. Default: "Object".
func WithName(name string) Option {
	return func(s *Schema) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets a structured logger for compile warnings and dispatch
// errors. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Schema) {
		s.logger = logger
	}
}

// WithMetrics sets a metrics recorder for dispatch instrumentation.
// Default: observe.NoopRecorder.
//
// Example:
//
//	schema := props.NewSchema(props.WithMetrics(observe.NewRecorder()))
func WithMetrics(rec observe.Recorder) Option {
	return func(s *Schema) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithInitializer sets the post-construction hook invoked by New after
// defaults are applied.
func WithInitializer(init Initializer) Option {
	return func(s *Schema) {
		s.init = init
	}
}
