package props

import (
	"fmt"
	"reflect"
)

// Kind identifies one of the built-in value categories a property can
// be constrained to.
type Kind int

const (
	// KindAny accepts every value, including nil.
	KindAny Kind = iota

	// KindString accepts string values.
	KindString

	// KindBool accepts bool values.
	KindBool

	// KindInt accepts values of any signed or unsigned integer type.
	KindInt

	// KindFloat accepts float32/float64, and integers by widening.
	KindFloat

	// KindMap accepts values whose reflect.Kind is Map.
	KindMap

	// KindSlice accepts slices and arrays.
	KindSlice
)

// String returns the kind's type name as used in raw descriptors.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindMap:
		return "map"
	case KindSlice:
		return "slice"
	default:
		return "unknown"
	}
}

// Type constrains the values a property accepts. The zero Type means
// untyped: every value conforms and setters skip the check entirely.
//
// Build one with KindOf, TypeOf, or CheckFunc.
type Type struct {
	name  string
	kind  Kind
	rt    reflect.Type
	check func(any) bool
}

// Built-in kind descriptors for the common cases.
var (
	Any    = KindOf(KindAny)
	String = KindOf(KindString)
	Bool   = KindOf(KindBool)
	Int    = KindOf(KindInt)
	Float  = KindOf(KindFloat)
	Map    = KindOf(KindMap)
	Slice  = KindOf(KindSlice)
)

// KindOf returns a Type that checks values against a built-in kind.
func KindOf(k Kind) Type {
	return Type{name: k.String(), kind: k}
}

// TypeOf returns a Type that accepts values assignable to the Go type T.
// nil conforms only when T is nilable (pointer, map, slice, chan, func,
// or interface).
func TypeOf[T any]() Type {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	return Type{name: rt.String(), rt: rt}
}

// ReflectType is the non-generic form of TypeOf, for callers that hold
// a reflect.Type.
func ReflectType(rt reflect.Type) Type {
	if rt == nil {
		panic("props: reflect type cannot be nil")
	}
	return Type{name: rt.String(), rt: rt}
}

// CheckFunc returns a Type that accepts values for which fn reports true.
// The name appears in type-mismatch diagnostics.
func CheckFunc(name string, fn func(v any) bool) Type {
	if name == "" {
		panic("props: check type name cannot be empty")
	}
	if fn == nil {
		panic("props: check function cannot be nil")
	}
	return Type{name: name, check: fn}
}

// ParseKind maps a raw descriptor type name to its Type.
// Recognized names: any, string, bool, int, float, double, map,
// slice, array. Unknown names return an error wrapping ErrUnknownTypeName.
func ParseKind(name string) (Type, error) {
	switch name {
	case "any", "":
		return Any, nil
	case "string":
		return String, nil
	case "bool", "boolean":
		return Bool, nil
	case "int", "integer":
		return Int, nil
	case "float", "double":
		return Float, nil
	case "map":
		return Map, nil
	case "slice", "array":
		return Slice, nil
	default:
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownTypeName, name)
	}
}

// Name returns the type name used in diagnostics, or "untyped" for the
// zero Type.
func (t Type) Name() string {
	if t.name == "" {
		return "untyped"
	}
	return t.name
}

// IsZero reports whether t is the untyped zero value.
func (t Type) IsZero() bool {
	return t.name == "" && t.rt == nil && t.check == nil
}

// Check reports whether v conforms to the type. The zero Type accepts
// everything.
func (t Type) Check(v any) bool {
	switch {
	case t.IsZero():
		return true
	case t.check != nil:
		return t.check(v)
	case t.rt != nil:
		if v == nil {
			return nilable(t.rt)
		}
		return reflect.TypeOf(v).AssignableTo(t.rt)
	}
	return t.checkKind(v)
}

func (t Type) checkKind(v any) bool {
	if t.kind == KindAny {
		return true
	}
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	switch t.kind {
	case KindString:
		return k == reflect.String
	case KindBool:
		return k == reflect.Bool
	case KindInt:
		return isIntKind(k)
	case KindFloat:
		return k == reflect.Float32 || k == reflect.Float64 || isIntKind(k)
	case KindMap:
		return k == reflect.Map
	case KindSlice:
		return k == reflect.Slice || k == reflect.Array
	}
	return false
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func nilable(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	}
	return false
}

// typeName describes a value's type for mismatch diagnostics.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
