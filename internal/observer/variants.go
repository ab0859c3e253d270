package observer

import (
	"fmt"
	"strings"
)

// Variants maps variant names to values. Names are matched against scenario
// tokens with spaces removed, so the token "Not Null" resolves the name
// "NotNull".
type Variants[V comparable] map[string]V

// VariantsOf builds a table keyed by each variant's String form.
func VariantsOf[V interface {
	comparable
	fmt.Stringer
}](vs ...V) Variants[V] {
	t := make(Variants[V], len(vs))
	for _, v := range vs {
		t[v.String()] = v
	}
	return t
}

// Resolve returns the variant named by token.
func (t Variants[V]) Resolve(token string) (V, bool) {
	v, ok := t[strings.ReplaceAll(token, " ", "")]
	return v, ok
}

// Name returns the name v is registered under.
func (t Variants[V]) Name(v V) (string, bool) {
	for name, candidate := range t {
		if candidate == v {
			return name, true
		}
	}
	return "", false
}

// TransientStore is a map-backed TransientSetter.
type TransientStore map[string]any

// SetTransientValue implements TransientSetter.
func (s TransientStore) SetTransientValue(key string, value any) {
	s[key] = value
}
