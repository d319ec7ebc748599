package props

import (
	"context"
	"fmt"

	"github.com/randalmurphal/propkit/pkg/props/observe"
)

// Object is a live instance of a CompiledSchema: per-object value
// storage behind the schema's shared dispatch table.
//
// Object is not synchronized. Concurrent use of a single object requires
// external coordination; distinct objects are independent.
type Object struct {
	schema   *CompiledSchema
	id       string
	values   map[string]any
	assigned map[string]bool
	watchers []WatchFunc
}

// WatchFunc observes successful property writes. It runs synchronously
// on the writing goroutine, after the value is assigned.
type WatchFunc func(field string, old, new any)

// ID returns the object's instance identifier, used in diagnostics.
func (o *Object) ID() string {
	return o.id
}

// Schema returns the compiled schema backing this object.
func (o *Object) Schema() *CompiledSchema {
	return o.schema
}

// Call routes an accessor invocation through the dispatch table.
//
// If name is a registered setter, the first argument becomes the
// property's new value (checked against the declared type) and the
// object itself is returned, supporting chained calls:
//
//	if _, err := obj.Call("setOwner", "alice"); err != nil { ... }
//
// If name is a registered getter, the current value is returned.
// Any other name fails with an UndefinedMethodError.
func (o *Object) Call(name string, args ...any) (any, error) {
	ctx := context.Background()

	if field, ok := o.schema.setters[name]; ok {
		if len(args) == 0 {
			err := &InvalidArgumentError{
				Field:  field,
				Method: name,
				Err:    ErrMissingArgument,
			}
			o.schema.metrics.RecordDispatch(ctx, o.schema.name, name, observe.KindSetter, err)
			return nil, err
		}
		err := o.write(field, name, args[0])
		o.schema.metrics.RecordDispatch(ctx, o.schema.name, name, observe.KindSetter, err)
		if err != nil {
			return nil, err
		}
		return o, nil
	}

	if field, ok := o.schema.getters[name]; ok {
		o.schema.metrics.RecordDispatch(ctx, o.schema.name, name, observe.KindGetter, nil)
		return o.values[field], nil
	}

	err := &UndefinedMethodError{Schema: o.schema.name, Method: name}
	o.schema.metrics.RecordDispatch(ctx, o.schema.name, name, observe.KindMiss, err)
	observe.LogDispatchMiss(o.schema.logger, o.schema.name, o.id, name)
	return nil, err
}

// MustCall is Call, panicking on error. Useful in tests and examples
// where the accessor is known to exist.
func (o *Object) MustCall(name string, args ...any) any {
	v, err := o.Call(name, args...)
	if err != nil {
		panic(fmt.Sprintf("props: %v", err))
	}
	return v
}

// Get reads a property by field name, honoring readability: fields
// without a getter are not reachable this way.
func (o *Object) Get(field string) (any, error) {
	i, ok := o.schema.byField[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if o.schema.fields[i].getter == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotReadable, field)
	}
	return o.values[field], nil
}

// Set writes a property by field name, honoring writability and the
// declared type.
func (o *Object) Set(field string, v any) error {
	i, ok := o.schema.byField[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	method := o.schema.fields[i].setter
	if method == "" {
		return fmt.Errorf("%w: %s", ErrNotWritable, field)
	}
	return o.write(field, method, v)
}

// Peek returns a field's current value and whether it has ever been
// assigned, bypassing readability. Intended for introspection and debug
// display only.
func (o *Object) Peek(field string) (any, bool) {
	return o.values[field], o.assigned[field]
}

// Watch registers a callback fired after each successful write, whether
// it came through Call, Set, or construction-time seeding. Callbacks run
// in registration order.
func (o *Object) Watch(fn WatchFunc) {
	if fn == nil {
		panic("props: watch callback cannot be nil")
	}
	o.watchers = append(o.watchers, fn)
}

// write assigns a value to a field, enforcing the declared type.
// method is the accessor name reported in diagnostics.
func (o *Object) write(field, method string, v any) error {
	if t, ok := o.schema.types[field]; ok && !t.Check(v) {
		got := typeName(v)
		o.schema.metrics.RecordTypeMismatch(context.Background(), o.schema.name, field)
		observe.LogTypeMismatch(o.schema.logger, o.schema.name, o.id, field, t.Name(), got)
		return &InvalidArgumentError{
			Field:    field,
			Method:   method,
			Expected: t.Name(),
			Got:      got,
			Err:      ErrTypeMismatch,
		}
	}

	old := o.values[field]
	o.values[field] = v
	o.assigned[field] = true

	for _, fn := range o.watchers {
		fn(field, old, v)
	}
	return nil
}
