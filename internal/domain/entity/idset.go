package entity

import "slices"

// IDSet is a set of entity identifiers that remembers insertion order.
// The zero value is an empty set ready to use.
//
// Add and Remove never write into a backing array another IDSet can see, so
// a plain assignment yields an independent set.
type IDSet struct {
	ids []int64
}

// NewIDSet builds a set from ids, dropping duplicates.
func NewIDSet(ids ...int64) IDSet {
	if len(ids) == 0 {
		return IDSet{}
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return IDSet{ids: out}
}

// Add inserts id and reports whether the set changed.
func (s *IDSet) Add(id int64) bool {
	if s.Contains(id) {
		return false
	}
	s.ids = append(slices.Clip(s.ids), id)
	return true
}

// Remove deletes id and reports whether the set changed.
func (s *IDSet) Remove(id int64) bool {
	i := slices.Index(s.ids, id)
	if i < 0 {
		return false
	}
	if len(s.ids) == 1 {
		s.ids = nil
		return true
	}
	out := make([]int64, 0, len(s.ids)-1)
	out = append(out, s.ids[:i]...)
	s.ids = append(out, s.ids[i+1:]...)
	return true
}

// Contains reports whether id is a member.
func (s IDSet) Contains(id int64) bool {
	return slices.Contains(s.ids, id)
}

// Len returns the number of members.
func (s IDSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in insertion order. The slice is a copy.
func (s IDSet) IDs() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// Clone returns an independent copy. Empty sets clone to the zero value.
func (s IDSet) Clone() IDSet {
	if len(s.ids) == 0 {
		return IDSet{}
	}
	return IDSet{ids: s.IDs()}
}

// Equal reports whether both sets hold the same members, ignoring order.
func (s IDSet) Equal(o IDSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, id := range s.ids {
		if !o.Contains(id) {
			return false
		}
	}
	return true
}
