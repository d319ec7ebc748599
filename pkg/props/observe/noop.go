package observe

import "context"

// NoopRecorder is a Recorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopRecorder struct{}

// Compile-time interface check.
var _ Recorder = NoopRecorder{}

// RecordDispatch does nothing.
func (NoopRecorder) RecordDispatch(_ context.Context, _, _, _ string, _ error) {}

// RecordTypeMismatch does nothing.
func (NoopRecorder) RecordTypeMismatch(_ context.Context, _, _ string) {}
