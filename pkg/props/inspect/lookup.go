package inspect

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/randalmurphal/propkit/pkg/props"
)

// ErrPathNotFound is returned when a lookup path names a missing
// property, key, or index.
var ErrPathNotFound = errors.New("path not found")

// ErrBadPath is returned when a lookup path is malformed.
var ErrBadPath = errors.New("malformed path")

// Lookup resolves a dotted path against an object for debug display:
// "addr.city" descends through nested objects and maps, "tags[0]"
// indexes into slices and arrays. Property values are read through
// Peek, so write-only and internal fields are reachable too.
func Lookup(obj *props.Object, path string) (any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}

	var current any = obj
	for _, segment := range strings.Split(path, ".") {
		name, indexes, err := parseSegment(segment)
		if err != nil {
			return nil, err
		}
		if name != "" {
			current, err = member(current, name)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		for _, idx := range indexes {
			current, err = element(current, idx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	return current, nil
}

// parseSegment splits "tags[0][1]" into the name and its indexes.
func parseSegment(segment string) (string, []int, error) {
	if segment == "" {
		return "", nil, fmt.Errorf("%w: empty segment", ErrBadPath)
	}

	name := segment
	var indexes []int
	for {
		open := strings.IndexByte(name, '[')
		if open < 0 {
			break
		}
		rest := name[open:]
		name = name[:open]
		for rest != "" {
			if rest[0] != '[' {
				return "", nil, fmt.Errorf("%w: %q", ErrBadPath, segment)
			}
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", nil, fmt.Errorf("%w: unclosed index in %q", ErrBadPath, segment)
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return "", nil, fmt.Errorf("%w: bad index in %q", ErrBadPath, segment)
			}
			indexes = append(indexes, idx)
			rest = rest[end+1:]
		}
	}
	return name, indexes, nil
}

// member resolves a named member of an object or map.
func member(v any, name string) (any, error) {
	switch val := v.(type) {
	case *props.Object:
		if !val.Schema().Has(name) {
			return nil, fmt.Errorf("%w: no property %q", ErrPathNotFound, name)
		}
		out, _ := val.Peek(name)
		return out, nil
	case map[string]any:
		out, ok := val[name]
		if !ok {
			return nil, fmt.Errorf("%w: no key %q", ErrPathNotFound, name)
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := rv.MapIndex(reflect.ValueOf(name))
		if !out.IsValid() {
			return nil, fmt.Errorf("%w: no key %q", ErrPathNotFound, name)
		}
		return out.Interface(), nil
	}
	return nil, fmt.Errorf("%w: cannot descend into %T with %q", ErrPathNotFound, v, name)
}

// element resolves an index into a slice or array.
func element(v any, idx int) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: cannot index into %T", ErrPathNotFound, v)
	}
	if idx < 0 || idx >= rv.Len() {
		return nil, fmt.Errorf("%w: index %d out of range", ErrPathNotFound, idx)
	}
	return rv.Index(idx).Interface(), nil
}
