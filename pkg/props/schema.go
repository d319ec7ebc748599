package props

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/propkit/pkg/props/observe"
)

// Schema is a mutable builder for property declarations. Use NewSchema
// to create one, chain Add calls to declare properties, then call
// Compile() to produce an immutable CompiledSchema that can construct
// objects.
//
// Schema is NOT thread-safe during building. Declare properties from a
// single goroutine, then share the compiled result freely.
//
// Example:
//
//	schema := props.NewSchema(props.WithName("Account")).
//	    Add("owner", props.Public().Typed(props.String)).
//	    Add("balance", props.ReadOnly().Typed(props.Float).Default(0.0))
//
//	compiled, err := schema.Compile()
type Schema struct {
	name    string
	decls   []declaration
	index   map[string]int
	logger  *slog.Logger
	metrics observe.Recorder
	init    Initializer
}

// declaration pairs a field name with its descriptor, preserving the
// order fields were declared in.
type declaration struct {
	field string
	desc  Descriptor
}

// NewSchema creates an empty schema builder.
func NewSchema(opts ...Option) *Schema {
	s := &Schema{
		name:    "Object",
		index:   make(map[string]int),
		metrics: observe.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add declares a property. Returns the schema for method chaining.
//
// Panics if:
//   - field is empty
//   - field contains whitespace
//   - field was already declared
func (s *Schema) Add(field string, desc Descriptor) *Schema {
	if field == "" {
		panic("props: field name cannot be empty")
	}
	if strings.ContainsAny(field, " \t\n\r") {
		panic("props: field name cannot contain whitespace")
	}
	if _, exists := s.index[field]; exists {
		panic(fmt.Sprintf("props: duplicate field: %s", field))
	}

	s.index[field] = len(s.decls)
	s.decls = append(s.decls, declaration{field: field, desc: desc})
	return s
}

// Len returns the number of declared properties.
func (s *Schema) Len() int {
	return len(s.decls)
}
