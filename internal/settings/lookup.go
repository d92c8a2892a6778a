package settings

import "fmt"

// Lookup returns group.key as a T. A value of another type fails with
// KindValidation. Integers are accepted for float64, and lists of strings
// for []string.
func Lookup[T any](r *Registry, group, key string) (T, error) {
	var zero T
	v, err := r.GetValue(group, key)
	if err != nil {
		return zero, err
	}
	if t, ok := v.(T); ok {
		return t, nil
	}

	switch p := any(&zero).(type) {
	case *float64:
		if n, ok := v.(int); ok {
			*p = float64(n)
			return zero, nil
		}
	case *[]string:
		if items, ok := v.([]any); ok {
			out := make([]string, 0, len(items))
			for _, item := range items {
				s, ok := item.(string)
				if !ok {
					return zero, invalid(group, key, v, fmt.Sprintf("expected a list of strings, found %T", item))
				}
				out = append(out, s)
			}
			*p = out
			return zero, nil
		}
	}
	return zero, invalid(group, key, v, fmt.Sprintf("expected %T, got %T", zero, v))
}
