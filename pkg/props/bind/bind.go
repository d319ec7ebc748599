// Package bind builds property schemas from annotated Go structs, the
// typed analogue of declaring properties as instance fields.
//
// Exported struct fields carry a `prop` tag naming a preset and options:
//
//	type Account struct {
//	    Owner   string  `prop:"public"`
//	    Balance float64 `prop:"readonly,default=0"`
//	    Secret  string  `prop:"writeonly,setter=conceal"`
//	    Audit   []string `prop:"internal"`
//	    scratch int     // unexported: ignored
//	}
//
// The declared type defaults to the field's Go type and can be
// overridden with a type= option. Fields without a tag are unconfigured
// (a compile-time Warning, no accessors); `prop:"-"` omits the field
// entirely. Compiled schemas are cached per struct type, built at most
// once and immutable afterwards.
package bind

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/randalmurphal/propkit/pkg/props"
)

// For returns the compiled schema for the struct type T.
// Without options the result comes from the per-type cache; with options
// a fresh schema is built, since options are not part of the cache key.
func For[T any](opts ...props.Option) (*props.CompiledSchema, error) {
	return SchemaFor(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// SchemaFor is the non-generic form of For.
func SchemaFor(rt reflect.Type, opts ...props.Option) (*props.CompiledSchema, error) {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: %s is not a struct type", rt)
	}
	if len(opts) == 0 {
		return cache.getOrCreate(rt, func() (*props.CompiledSchema, error) {
			return build(rt)
		})
	}
	return build(rt, opts...)
}

// Wrap builds an object over a struct value: the schema comes from the
// struct's type and each configured field's current value seeds the
// object. Zero-valued struct fields are not seeded, so declared defaults
// still apply to them.
func Wrap(v any, args ...any) (*props.Object, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("bind: cannot wrap nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: %s is not a struct type", rv.Type())
	}

	schema, err := SchemaFor(rv.Type())
	if err != nil {
		return nil, err
	}

	values := make(map[string]any)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		// Only configured fields are seeded; untagged fields stay
		// unset like any other unconfigured property.
		tag, ok := f.Tag.Lookup("prop")
		if !ok || tag == "-" {
			continue
		}
		field := lowerFirst(f.Name)
		if !schema.Has(field) {
			continue
		}
		fv := rv.Field(i)
		if fv.IsZero() {
			continue
		}
		values[field] = fv.Interface()
	}

	return schema.NewFrom(values, args...)
}

func build(rt reflect.Type, opts ...props.Option) (*props.CompiledSchema, error) {
	all := append([]props.Option{props.WithName(rt.Name())}, opts...)
	schema := props.NewSchema(all...)

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, ok := f.Tag.Lookup("prop")
		if tag == "-" {
			continue
		}
		field := lowerFirst(f.Name)
		if !ok {
			// Unconfigured: Compile reports the warning.
			schema.Add(field, props.Descriptor{})
			continue
		}
		desc, err := parseTag(field, f, tag)
		if err != nil {
			return nil, err
		}
		schema.Add(field, desc)
	}

	return schema.Compile()
}

// parseTag interprets a prop tag: a preset followed by options.
func parseTag(field string, f reflect.StructField, tag string) (props.Descriptor, error) {
	parts := strings.Split(tag, ",")

	preset := parts[0]
	if strings.Contains(preset, "=") {
		// Tag starts with an option; preset defaults to public.
		preset = "public"
	} else {
		parts = parts[1:]
	}

	var desc props.Descriptor
	switch preset {
	case "public", "":
		desc = props.Public()
	case "readonly":
		desc = props.ReadOnly()
	case "writeonly":
		desc = props.WriteOnly()
	case "internal":
		desc = props.Internal()
	default:
		return props.Descriptor{}, &props.ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("unknown preset %q in prop tag", preset),
			Err:    props.ErrBadDescriptor,
		}
	}

	typed := false
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return props.Descriptor{}, &props.ConfigurationError{
				Field:  field,
				Reason: fmt.Sprintf("malformed prop tag option %q", part),
				Err:    props.ErrBadDescriptor,
			}
		}
		switch key {
		case "getter":
			desc = desc.Getter(value)
		case "setter":
			desc = desc.Setter(value)
		case "type":
			t, err := props.ParseKind(value)
			if err != nil {
				return props.Descriptor{}, &props.ConfigurationError{
					Field:  field,
					Reason: fmt.Sprintf("unknown type name %q", value),
					Err:    props.ErrUnknownTypeName,
				}
			}
			desc = desc.Typed(t)
			typed = true
		case "default":
			def, err := parseDefault(field, f.Type, value)
			if err != nil {
				return props.Descriptor{}, err
			}
			desc = desc.Default(def)
		default:
			return props.Descriptor{}, &props.ConfigurationError{
				Field:  field,
				Reason: fmt.Sprintf("unknown prop tag option %q", key),
				Err:    props.ErrBadDescriptor,
			}
		}
	}

	if !typed {
		if t, ok := inferType(f.Type); ok {
			desc = desc.Typed(t)
		}
	}
	return desc, nil
}

// inferType maps a struct field's Go type to a declared property type.
// Empty interface fields stay untyped.
func inferType(rt reflect.Type) (props.Type, bool) {
	switch rt.Kind() {
	case reflect.String:
		return props.String, true
	case reflect.Bool:
		return props.Bool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return props.Int, true
	case reflect.Float32, reflect.Float64:
		return props.Float, true
	case reflect.Map:
		return props.Map, true
	case reflect.Slice, reflect.Array:
		return props.Slice, true
	case reflect.Interface:
		if rt.NumMethod() == 0 {
			return props.Type{}, false
		}
		return props.ReflectType(rt), true
	default:
		return props.ReflectType(rt), true
	}
}

// parseDefault converts a default= tag value to the field's Go type.
func parseDefault(field string, rt reflect.Type, value string) (any, error) {
	switch rt.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return int(n), nil
		}
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f, nil
		}
	case reflect.Interface:
		return value, nil
	}
	return nil, &props.ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf("cannot parse default %q as %s", value, rt),
		Err:    props.ErrBadDescriptor,
	}
}

// lowerFirst derives the property name from a Go field name.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	low := unicode.ToLower(r)
	if low == r {
		return s
	}
	return string(low) + s[size:]
}
