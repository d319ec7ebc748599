// Package inspect provides read-only introspection over property
// objects: per-property descriptor records, a debug dump, and dotted
// path lookup into nested values.
//
// Everything here is for developer-facing display and never mutates the
// object it examines.
package inspect

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/randalmurphal/propkit/pkg/props"
)

// Info describes one property of an object: its name, declared type
// ("untyped" when none), synthesized accessor names (empty when absent),
// and current value.
type Info struct {
	// Name is the property's field name.
	Name string

	// Type is the declared type name, or "untyped".
	Type string

	// Getter is the synthesized getter name, or empty.
	Getter string

	// Setter is the synthesized setter name, or empty.
	Setter string

	// Value is the property's current value.
	Value any

	// Assigned reports whether the property has ever been written.
	Assigned bool
}

// String formats the record for display.
func (i Info) String() string {
	accessors := ""
	if i.Getter != "" {
		accessors += " getter=" + i.Getter
	}
	if i.Setter != "" {
		accessors += " setter=" + i.Setter
	}
	if accessors == "" {
		accessors = " (no accessors)"
	}
	return fmt.Sprintf("%s<%s>%s", i.Name, i.Type, accessors)
}

// Describe builds the descriptor record for one property.
func Describe(obj *props.Object, field string) (Info, error) {
	schema := obj.Schema()
	if !schema.Has(field) {
		return Info{}, fmt.Errorf("describe %s: %w: %s", schema.Name(), props.ErrUnknownField, field)
	}

	info := Info{Name: field, Type: "untyped"}
	if t, ok := schema.TypeFor(field); ok {
		info.Type = t.Name()
	}
	if name, ok := schema.GetterName(field); ok {
		info.Getter = name
	}
	if name, ok := schema.SetterName(field); ok {
		info.Setter = name
	}
	info.Value, info.Assigned = obj.Peek(field)
	return info, nil
}

// DescribeAll builds descriptor records for every property, in
// declaration order.
func DescribeAll(obj *props.Object) []Info {
	fields := obj.Schema().Fields()
	infos := make([]Info, 0, len(fields))
	for _, field := range fields {
		info, err := Describe(obj, field)
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

// dumper renders values deterministically for debug display.
var dumper = &spew.ConfigState{Indent: "  ", SortKeys: true}

// Dump writes a debug display of all properties to w.
func Dump(w io.Writer, obj *props.Object) error {
	schema := obj.Schema()
	if _, err := fmt.Fprintf(w, "%s (%s)\n", schema.Name(), obj.ID()); err != nil {
		return err
	}
	for _, info := range DescribeAll(obj) {
		value := "<unset>"
		if info.Assigned {
			value = dumper.Sprintf("%#v", info.Value)
		}
		if _, err := fmt.Fprintf(w, "  %s: %s\n", info.String(), value); err != nil {
			return err
		}
	}
	return nil
}
