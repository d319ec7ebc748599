package props

import (
	"fmt"

	"github.com/randalmurphal/propkit/pkg/props/observe"
)

// Compile validates the declarations and produces an immutable
// CompiledSchema.
//
// Compile fails fast with a ConfigurationError when:
//   - a custom or derived accessor name is not a valid identifier
//   - two properties resolve to the same accessor name
//
// Unconfigured fields (zero Descriptor) are not errors: they produce a
// Warning, get no accessors, and no default. The warnings are available
// via CompiledSchema.Warnings.
func (s *Schema) Compile() (*CompiledSchema, error) {
	cs := &CompiledSchema{
		name:    s.name,
		byField: make(map[string]int, len(s.decls)),
		getters: make(map[string]string),
		setters: make(map[string]string),
		types:   make(map[string]Type),
		logger:  s.logger,
		metrics: s.metrics,
		init:    s.init,
	}

	// owner tracks which field claimed each accessor name, across both
	// getters and setters. Colliding registrations are rejected rather
	// than last-wins.
	owner := make(map[string]string)

	for _, decl := range s.decls {
		cf := compiledField{name: decl.field, desc: decl.desc}

		if !decl.desc.configured {
			cs.warnings = append(cs.warnings, Warning{
				Field:   decl.field,
				Message: "not configured; no accessors synthesized",
			})
			observe.LogUnconfigured(s.logger, s.name, decl.field)
			cs.byField[decl.field] = len(cs.fields)
			cs.fields = append(cs.fields, cf)
			continue
		}

		if decl.desc.writable {
			name := decl.desc.setterName(decl.field)
			if err := cs.claim(owner, name, decl.field); err != nil {
				return nil, err
			}
			cs.setters[name] = decl.field
			cf.setter = name
		}

		if decl.desc.readable {
			name := decl.desc.getterName(decl.field)
			if err := cs.claim(owner, name, decl.field); err != nil {
				return nil, err
			}
			cs.getters[name] = decl.field
			cf.getter = name
		}

		if !decl.desc.typ.IsZero() {
			cs.types[decl.field] = decl.desc.typ
		}

		cs.byField[decl.field] = len(cs.fields)
		cs.fields = append(cs.fields, cf)
	}

	observe.LogCompiled(s.logger, s.name, len(cs.fields), len(cs.warnings))
	return cs, nil
}

// MustCompile compiles the schema, panicking on error. Intended for
// package-level schema variables whose declarations are static.
func (s *Schema) MustCompile() *CompiledSchema {
	cs, err := s.Compile()
	if err != nil {
		panic(fmt.Sprintf("props: %v", err))
	}
	return cs
}

// claim validates an accessor name and records which field owns it.
func (cs *CompiledSchema) claim(owner map[string]string, name, field string) error {
	if !isIdentifier(name) {
		return &ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("accessor name %q is not a valid identifier", name),
			Err:    ErrBadAccessorName,
		}
	}
	if prev, taken := owner[name]; taken {
		return &ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("accessor name %q already registered for property %q", name, prev),
			Err:    ErrDuplicateAccessor,
		}
	}
	owner[name] = field
	return nil
}
