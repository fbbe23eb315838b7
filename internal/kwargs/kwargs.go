// Package kwargs decodes the generic argument maps the builder hands to
// constructors into concrete Go values, with errors that name the offending
// argument.
package kwargs

import "fmt"

// Map is the argument mapping a constructor receives from the builder.
type Map map[string]any

// As returns the required argument under key as type T.
func As[T any](m Map, key string) (T, error) {
	var zero T
	raw, ok := m[key]
	if !ok {
		return zero, fmt.Errorf("missing required argument %q", key)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("argument %q: expected %T, got %T", key, zero, raw)
	}
	return v, nil
}

// AsOr returns the argument under key as type T, or the default when the
// argument is absent or null.
func AsOr[T any](m Map, key string, def T) (T, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return def, nil
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("argument %q: expected %T, got %T", key, zero, raw)
	}
	return v, nil
}

// Strings returns the required argument under key as a string slice. Lists
// arrive from the builder as []any.
func Strings(m Map, key string) ([]string, error) {
	raw, err := As[[]any](m, key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("argument %q[%d]: expected string, got %T", key, i, item)
		}
		out[i] = s
	}
	return out, nil
}

// Int returns the required argument under key as an int. Numbers arrive from
// the builder as float64.
func Int(m Map, key string) (int, error) {
	f, err := As[float64](m, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// IntOr is Int with a default for absent arguments.
func IntOr(m Map, key string, def int) (int, error) {
	f, err := AsOr(m, key, float64(def))
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
