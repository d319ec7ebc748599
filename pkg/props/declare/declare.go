// Package declare builds property schemas from raw descriptor mappings,
// the declarative configuration channel: each field name maps to a
// descriptor with the keys readable, writable, default, getter, setter,
// and type. The same shape can be loaded from YAML or JSON documents.
//
// A raw descriptor merges over the "public" preset: explicit keys win,
// everything else defaults to readable and writable. An empty or nil
// descriptor means the field is unconfigured (a compile-time Warning,
// no accessors). Any other value for a field is a ConfigurationError.
//
// Example document:
//
//	value:
//	  type: string
//	  default: hi
//	secret:
//	  readable: false
//	  setter: conceal
package declare

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/propkit/pkg/props"
)

// FromMap builds a Schema from raw per-field descriptors. Fields are
// declared in sorted name order so diagnostics are deterministic.
func FromMap(fields map[string]any, opts ...props.Option) (*props.Schema, error) {
	schema := props.NewSchema(opts...)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		// Documents are data, not code: reject names the builder
		// would panic on.
		if name == "" || strings.ContainsAny(name, " \t\n\r") {
			return nil, &props.ConfigurationError{
				Field:  name,
				Reason: "field name must be non-empty without whitespace",
				Err:    props.ErrBadDescriptor,
			}
		}
		desc, err := parseDescriptor(name, fields[name])
		if err != nil {
			return nil, err
		}
		schema.Add(name, desc)
	}
	return schema, nil
}

// FromYAML parses a YAML document of raw descriptors into a Schema.
func FromYAML(data []byte, opts ...props.Option) (*props.Schema, error) {
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return FromMap(fields, opts...)
}

// FromJSON parses a JSON document of raw descriptors into a Schema.
func FromJSON(data []byte, opts ...props.Option) (*props.Schema, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return FromMap(fields, opts...)
}

// FromFile loads raw descriptors from a file, auto-detecting format by
// extension. Supported extensions: .yaml, .yml, .json
func FromFile(path string, opts ...props.Option) (*props.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data, opts...)
	case ".json":
		return FromJSON(data, opts...)
	default:
		return nil, fmt.Errorf("unsupported schema file extension: %s", ext)
	}
}

// parseDescriptor interprets one field's raw descriptor value.
func parseDescriptor(field string, raw any) (props.Descriptor, error) {
	if raw == nil {
		return props.Descriptor{}, nil
	}

	m, ok := normalizeMap(raw)
	if !ok {
		return props.Descriptor{}, &props.ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("descriptor must be a mapping, got %T", raw),
			Err:    props.ErrBadDescriptor,
		}
	}
	if len(m) == 0 {
		return props.Descriptor{}, nil
	}

	readable, err := boolKey(field, m, "readable", true)
	if err != nil {
		return props.Descriptor{}, err
	}
	writable, err := boolKey(field, m, "writable", true)
	if err != nil {
		return props.Descriptor{}, err
	}

	var desc props.Descriptor
	switch {
	case readable && writable:
		desc = props.Public()
	case readable:
		desc = props.ReadOnly()
	case writable:
		desc = props.WriteOnly()
	default:
		desc = props.Internal()
	}

	if name, err := stringKey(field, m, "getter"); err != nil {
		return props.Descriptor{}, err
	} else if name != "" {
		desc = desc.Getter(name)
	}
	if name, err := stringKey(field, m, "setter"); err != nil {
		return props.Descriptor{}, err
	} else if name != "" {
		desc = desc.Setter(name)
	}

	typeName, err := stringKey(field, m, "type")
	if err != nil {
		return props.Descriptor{}, err
	}
	if typeName != "" {
		t, err := props.ParseKind(typeName)
		if err != nil {
			return props.Descriptor{}, &props.ConfigurationError{
				Field:  field,
				Reason: fmt.Sprintf("unknown type name %q", typeName),
				Err:    props.ErrUnknownTypeName,
			}
		}
		desc = desc.Typed(t)
	}

	if def, present := m["default"]; present {
		desc = desc.Default(coerceDefault(typeName, def))
	}

	return desc, nil
}

// coerceDefault undoes decoder-specific number representation: JSON
// decodes every number as float64, so an integral default declared as
// int is converted back before it travels the checked setter path.
func coerceDefault(typeName string, def any) any {
	switch typeName {
	case "int", "integer":
		if f, ok := def.(float64); ok && f == float64(int(f)) {
			return int(f)
		}
	case "float", "double":
		switch n := def.(type) {
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return def
}

// normalizeMap accepts the map shapes the YAML and JSON decoders produce.
func normalizeMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, val := range v {
			s, ok := key.(string)
			if !ok {
				return nil, false
			}
			m[s] = val
		}
		return m, true
	default:
		return nil, false
	}
}

func boolKey(field string, m map[string]any, key string, def bool) (bool, error) {
	v, ok := m[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &props.ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("key %q must be a bool, got %T", key, v),
			Err:    props.ErrBadDescriptor,
		}
	}
	return b, nil
}

func stringKey(field string, m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &props.ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("key %q must be a string, got %T", key, v),
			Err:    props.ErrBadDescriptor,
		}
	}
	return s, nil
}
