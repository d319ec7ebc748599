/*
Package props synthesizes property accessors from declarative
per-property configuration, replacing hand-written getter/setter
boilerplate on value objects.

# Overview

A Schema collects property declarations: whether each property is
readable and/or writable, an optional declared type, an optional default,
and optional accessor-name overrides. Compile() turns the declarations
into an immutable dispatch table mapping derived method names
(get<Field>/set<Field> by convention) to fields. Objects constructed
from the compiled schema route accessor calls by name through that
table, with type enforcement on writes.

# Basic Usage

	schema := props.NewSchema(props.WithName("Greeting")).
	    Add("value", props.Public().Typed(props.String).Default("hi"))

	compiled, err := schema.Compile()
	if err != nil {
	    log.Fatal(err)
	}

	obj, err := compiled.New()
	if err != nil {
	    log.Fatal(err)
	}

	v, _ := obj.Call("getValue")      // "hi"
	_, err = obj.Call("setValue", 42) // InvalidArgumentError: expects string
	obj.MustCall("setValue", "ok")

# Presets

Four presets cover the usual access patterns: Public (getter and
setter), ReadOnly, WriteOnly, and Internal (no accessors at all). A zero
Descriptor is "unconfigured": it synthesizes nothing, applies no
default, and surfaces as a Warning from Compile rather than an error.

# Errors

Compilation problems (bad accessor names, colliding registrations) fail
fast as ConfigurationError values. Dispatch problems surface at the call
site: UndefinedMethodError for a name matching no accessor, and
InvalidArgumentError for a missing setter argument or a value that fails
the declared type. All are checkable with errors.Is against the
package's sentinel errors.

# Related Packages

  - declare: builds schemas from raw descriptor maps, YAML, or JSON
  - bind: builds schemas from tagged Go structs, with a per-type cache
  - inspect: per-property introspection records and debug display
  - observe: structured logging and opt-in dispatch metrics
*/
package props
