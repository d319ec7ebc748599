package props

import (
	"unicode"
	"unicode/utf8"
)

// Descriptor declares how accessors are synthesized for one property.
//
// The zero Descriptor is "unconfigured": compilation emits a Warning for
// the field, synthesizes nothing, and applies no default. Start from one
// of the presets (Public, ReadOnly, WriteOnly, Internal) and chain the
// builder methods:
//
//	props.Public().Typed(props.String).Default("hi").Setter("assignValue")
type Descriptor struct {
	configured bool
	readable   bool
	writable   bool
	getter     string
	setter     string
	typ        Type
	def        any
	hasDefault bool
}

// Public returns the preset with both a getter and a setter.
// This is the preset raw descriptors merge over.
func Public() Descriptor {
	return Descriptor{configured: true, readable: true, writable: true}
}

// ReadOnly returns the preset with a getter only.
func ReadOnly() Descriptor {
	return Descriptor{configured: true, readable: true}
}

// WriteOnly returns the preset with a setter only.
func WriteOnly() Descriptor {
	return Descriptor{configured: true, writable: true}
}

// Internal returns the preset with no accessors at all. Unlike the zero
// Descriptor it is an explicit choice, so no Warning is emitted; like it,
// no default is applied and the field stays reachable only through Peek.
func Internal() Descriptor {
	return Descriptor{configured: true}
}

// Typed constrains values written to the property. The constraint is
// enforced on every setter invocation as well as on an explicit default.
func (d Descriptor) Typed(t Type) Descriptor {
	d.typ = t
	return d
}

// Default sets the value the property is initialized to at construction.
// When the property has a setter, the default is applied through it, so
// a declared type is validated against the default too. An absent
// default leaves the field unset and is never type-checked.
func (d Descriptor) Default(v any) Descriptor {
	d.def = v
	d.hasDefault = true
	return d
}

// Getter overrides the derived getter name. The name must be a valid
// identifier; compilation fails otherwise.
func (d Descriptor) Getter(name string) Descriptor {
	d.getter = name
	return d
}

// Setter overrides the derived setter name.
func (d Descriptor) Setter(name string) Descriptor {
	d.setter = name
	return d
}

// Readable reports whether the descriptor synthesizes a getter.
func (d Descriptor) Readable() bool { return d.readable }

// Writable reports whether the descriptor synthesizes a setter.
func (d Descriptor) Writable() bool { return d.writable }

// IsConfigured reports whether the descriptor is anything other than the
// unconfigured zero value.
func (d Descriptor) IsConfigured() bool { return d.configured }

// getterName resolves the getter method name for a field.
func (d Descriptor) getterName(field string) string {
	if d.getter != "" {
		return d.getter
	}
	return "get" + capitalize(field)
}

// setterName resolves the setter method name for a field.
func (d Descriptor) setterName(field string) string {
	if d.setter != "" {
		return d.setter
	}
	return "set" + capitalize(field)
}

// capitalize upper-cases the first rune of a field name, matching the
// get<Field>/set<Field> derivation convention.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	up := unicode.ToUpper(r)
	if up == r {
		return s
	}
	return string(up) + s[size:]
}

// isIdentifier reports whether name matches the accessor-name syntax:
// a letter or underscore followed by letters, digits, or underscores.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
