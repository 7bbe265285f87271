// internal/models/tagset.go
package models

import "encoding/json"

// Set is an insertion-ordered set. The zero value is empty and ready to use.
type Set[T ~string] struct {
	items []T
}

// TagSet holds style or taste tags.
type TagSet = Set[string]

// TempSet holds temperature keys.
type TempSet = Set[TempKey]

// NewSet builds a set from values, dropping duplicates and empty values.
func NewSet[T ~string](values ...T) Set[T] {
	var s Set[T]
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s *Set[T]) index(v T) int {
	for i, it := range s.items {
		if it == v {
			return i
		}
	}
	return -1
}

// Add inserts v and reports whether it was absent. Empty values are ignored.
func (s *Set[T]) Add(v T) bool {
	if v == "" || s.index(v) >= 0 {
		return false
	}
	s.items = append(s.items, v)
	return true
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	i := s.index(v)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true
}

// Toggle flips membership of v and reports whether v is now present.
func (s *Set[T]) Toggle(v T) bool {
	if s.Remove(v) {
		return false
	}
	return s.Add(v)
}

// ReplaceWithin removes every member of group, then adds v. Members outside
// group are untouched.
func (s *Set[T]) ReplaceWithin(group []T, v T) {
	for _, g := range group {
		s.Remove(g)
	}
	s.Add(v)
}

// Clear empties the set.
func (s *Set[T]) Clear() {
	s.items = nil
}

func (s Set[T]) Has(v T) bool {
	return s.index(v) >= 0
}

func (s Set[T]) Len() int {
	return len(s.items)
}

// Values returns a copy of the members in insertion order.
func (s Set[T]) Values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s Set[T]) Clone() Set[T] {
	return Set[T]{items: s.Values()}
}

// Union returns members of s followed by members of other not in s.
func (s Set[T]) Union(other Set[T]) Set[T] {
	out := s.Clone()
	for _, v := range other.items {
		out.Add(v)
	}
	return out
}

// Intersect returns the members of s found in values, in s order.
func (s Set[T]) Intersect(values []T) []T {
	var out []T
	for _, v := range s.items {
		for _, o := range values {
			if o == v {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

func (s Set[T]) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	s.Clear()
	for _, v := range values {
		s.Add(v)
	}
	return nil
}
