package props

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/randalmurphal/propkit/pkg/props/observe"
)

// CompiledSchema is the immutable result of Schema.Compile. It holds the
// dispatch table mapping accessor method names to fields, the declared
// types, and the resolved defaults. It is safe for concurrent use and
// can be shared across any number of objects.
type CompiledSchema struct {
	name     string
	fields   []compiledField
	byField  map[string]int
	getters  map[string]string
	setters  map[string]string
	types    map[string]Type
	warnings []Warning
	logger   *slog.Logger
	metrics  observe.Recorder
	init     Initializer
}

// compiledField is one property with its resolved accessor names.
// An empty getter/setter means none was synthesized.
type compiledField struct {
	name   string
	desc   Descriptor
	getter string
	setter string
}

// Name returns the schema name used in diagnostics.
func (cs *CompiledSchema) Name() string {
	return cs.name
}

// Fields returns the property names in declaration order.
func (cs *CompiledSchema) Fields() []string {
	names := make([]string, len(cs.fields))
	for i, f := range cs.fields {
		names[i] = f.name
	}
	return names
}

// Has reports whether the schema declares the field.
func (cs *CompiledSchema) Has(field string) bool {
	_, ok := cs.byField[field]
	return ok
}

// Warnings returns the non-fatal diagnostics collected during Compile,
// in declaration order.
func (cs *CompiledSchema) Warnings() []Warning {
	out := make([]Warning, len(cs.warnings))
	copy(out, cs.warnings)
	return out
}

// GetterName returns the synthesized getter name for a field, and
// whether one exists.
func (cs *CompiledSchema) GetterName(field string) (string, bool) {
	i, ok := cs.byField[field]
	if !ok || cs.fields[i].getter == "" {
		return "", false
	}
	return cs.fields[i].getter, true
}

// SetterName returns the synthesized setter name for a field, and
// whether one exists.
func (cs *CompiledSchema) SetterName(field string) (string, bool) {
	i, ok := cs.byField[field]
	if !ok || cs.fields[i].setter == "" {
		return "", false
	}
	return cs.fields[i].setter, true
}

// TypeFor returns the declared type for a field, and whether the field
// is typed.
func (cs *CompiledSchema) TypeFor(field string) (Type, bool) {
	t, ok := cs.types[field]
	return t, ok
}

// Getters returns a copy of the getter dispatch table (method name to
// field name).
func (cs *CompiledSchema) Getters() map[string]string {
	out := make(map[string]string, len(cs.getters))
	for k, v := range cs.getters {
		out[k] = v
	}
	return out
}

// Setters returns a copy of the setter dispatch table.
func (cs *CompiledSchema) Setters() map[string]string {
	out := make(map[string]string, len(cs.setters))
	for k, v := range cs.setters {
		out[k] = v
	}
	return out
}

// New constructs an object backed by this schema.
//
// Each property with an explicit default is initialized to it. When the
// property has a setter the default is applied through the setter path,
// so a declared type is validated against the default too; a read-only
// default is assigned directly. Properties without a default are left
// unset. Unconfigured and internal fields receive nothing.
//
// The args are passed to the schema's Initializer, if one was set.
func (cs *CompiledSchema) New(args ...any) (*Object, error) {
	return cs.construct(nil, args)
}

// NewFrom constructs an object and then applies the given initial values
// over the defaults. The values travel the same checked path as setter
// writes, so declared types are enforced, but writability is not: this
// is the construction channel, and read-only properties may be seeded
// here. Unknown field names are rejected.
func (cs *CompiledSchema) NewFrom(values map[string]any, args ...any) (*Object, error) {
	return cs.construct(values, args)
}

func (cs *CompiledSchema) construct(values map[string]any, args []any) (*Object, error) {
	obj := &Object{
		schema:   cs,
		id:       uuid.NewString(),
		values:   make(map[string]any, len(cs.fields)),
		assigned: make(map[string]bool, len(cs.fields)),
	}

	for _, f := range cs.fields {
		if !f.desc.hasDefault {
			continue
		}
		if f.setter != "" {
			if err := obj.write(f.name, f.setter, f.desc.def); err != nil {
				return nil, err
			}
			continue
		}
		// No setter: direct assignment, no type check.
		obj.values[f.name] = f.desc.def
		obj.assigned[f.name] = true
	}

	// Deterministic application order for seeded values.
	for _, field := range sortedKeys(values) {
		i, ok := cs.byField[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		method := cs.fields[i].setter
		if method == "" {
			method = "new"
		}
		if err := obj.write(field, method, values[field]); err != nil {
			return nil, err
		}
	}

	if cs.init != nil {
		if err := cs.init(obj, args...); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", cs.name, err)
		}
	}

	observe.LogConstructed(cs.logger, cs.name, obj.id)
	return obj, nil
}

func sortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
