// Package props synthesizes property accessors from declarative
// per-property configuration.
package props

import (
	"errors"
	"fmt"
)

// Sentinel errors for schema compilation.
var (
	// ErrBadAccessorName indicates a custom getter/setter name is not a
	// valid identifier.
	ErrBadAccessorName = errors.New("accessor name is not a valid identifier")

	// ErrDuplicateAccessor indicates two fields derive the same accessor name.
	ErrDuplicateAccessor = errors.New("duplicate accessor name")

	// ErrBadDescriptor indicates a raw descriptor value is not a mapping.
	ErrBadDescriptor = errors.New("descriptor is not a mapping")

	// ErrUnknownTypeName indicates a raw descriptor names an unknown type.
	ErrUnknownTypeName = errors.New("unknown type name")
)

// Sentinel errors for dispatch.
var (
	// ErrUndefinedMethod indicates a Call name matched neither a getter
	// nor a setter.
	ErrUndefinedMethod = errors.New("undefined method")

	// ErrMissingArgument indicates a setter was called without a value.
	ErrMissingArgument = errors.New("missing argument")

	// ErrTypeMismatch indicates a setter value failed the declared type check.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownField indicates a Get/Set field name is not in the schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrNotReadable indicates a direct Get on a field with no getter.
	ErrNotReadable = errors.New("field is not readable")

	// ErrNotWritable indicates a direct Set on a field with no setter.
	ErrNotWritable = errors.New("field is not writable")
)

// ConfigurationError reports a malformed property declaration.
// Compilation fails fast: no object can be constructed from a schema
// whose declarations are malformed.
type ConfigurationError struct {
	// Field is the property the declaration belongs to.
	Field string
	// Reason describes what is wrong with the declaration.
	Reason string
	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("property %q: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// InvalidArgumentError reports a bad setter invocation: a value that
// fails the declared type check, or a call with no value at all.
type InvalidArgumentError struct {
	// Field is the property being written.
	Field string
	// Method is the setter name as invoked.
	Method string
	// Expected is the declared type name (empty when the argument was missing).
	Expected string
	// Got describes the rejected value's type.
	Got string
	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if errors.Is(e.Err, ErrMissingArgument) {
		return fmt.Sprintf("%s: missing argument for property %q", e.Method, e.Field)
	}
	return fmt.Sprintf("%s: property %q expects %s, got %s", e.Method, e.Field, e.Expected, e.Got)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// UndefinedMethodError reports a dispatch miss: the called name matches
// no synthesized getter or setter.
type UndefinedMethodError struct {
	// Schema is the owning schema's name.
	Schema string
	// Method is the name that was called.
	Method string
}

// Error implements the error interface.
func (e *UndefinedMethodError) Error() string {
	return fmt.Sprintf("undefined method %s.%s", e.Schema, e.Method)
}

// Unwrap always returns ErrUndefinedMethod.
func (e *UndefinedMethodError) Unwrap() error {
	return ErrUndefinedMethod
}

// Warning is a non-fatal compile-time diagnostic. Warnings are returned
// from Compile via CompiledSchema.Warnings rather than raised, so the
// caller decides how to log or escalate them.
type Warning struct {
	// Field is the property the warning concerns.
	Field string
	// Message describes the problem.
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	return fmt.Sprintf("property %q: %s", w.Field, w.Message)
}
