package memory

import "encoding/json"

// StringSet is an ordered set of strings. Insertion order is preserved and
// duplicates are rejected, so profiles serialize deterministically. The zero
// value is an empty set ready for use.
type StringSet struct {
	values []string
	index  map[string]struct{}
}

// NewStringSet returns a set containing the given values, deduplicated.
func NewStringSet(values ...string) StringSet {
	var s StringSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s *StringSet) Add(v string) bool {
	if s.Contains(v) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// Contains reports whether v is in the set.
func (s StringSet) Contains(v string) bool {
	if s.index == nil {
		return false
	}
	_, ok := s.index[v]
	return ok
}

// Union adds every value of other to s, preserving s's existing order.
func (s *StringSet) Union(other StringSet) {
	for _, v := range other.values {
		s.Add(v)
	}
}

// AddAll adds every value in the slice.
func (s *StringSet) AddAll(values []string) {
	for _, v := range values {
		s.Add(v)
	}
}

// Values returns the members in insertion order. The returned slice is a copy.
func (s StringSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of members.
func (s StringSet) Len() int { return len(s.values) }

// MarshalJSON serializes the set as a JSON list, empty sets as [].
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.values)
}

// UnmarshalJSON restores the set from a JSON list, deduplicating in order.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	s.values = nil
	s.index = nil
	for _, v := range values {
		s.Add(v)
	}
	return nil
}
