// Package scope implements the OAuth scope set carried by tokens.
package scope

import (
	"sort"
	"strings"
)

// Set is an unordered collection of scope values. The zero value is an
// empty set ready to use.
type Set struct {
	values map[string]struct{}
}

// New returns a set holding the given scopes. Blank entries are ignored.
func New(scopes ...string) Set {
	s := Set{}
	for _, v := range scopes {
		s.Add(v)
	}
	return s
}

// FromString parses a whitespace separated scope string.
func FromString(raw string) Set {
	return New(strings.Fields(raw)...)
}

// Add inserts a scope into the set.
func (s *Set) Add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if s.values == nil {
		s.values = make(map[string]struct{})
	}
	s.values[value] = struct{}{}
}

// Contains reports whether the set holds value.
func (s Set) Contains(value string) bool {
	_, ok := s.values[value]
	return ok
}

// Len returns the number of scopes in the set.
func (s Set) Len() int {
	return len(s.values)
}

// Values returns the scopes in lexical order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// String renders the set as a single space separated string.
func (s Set) String() string {
	return strings.Join(s.Values(), " ")
}

// Equal reports whether both sets hold the same scopes.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for v := range s.values {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}
