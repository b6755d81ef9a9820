package entity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestIDSet_ZeroValue(t *testing.T) {
	var s IDSet
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(1))
	assert.False(t, s.Remove(1))
	assert.Empty(t, s.IDs())
}

func TestIDSet_AddRemove(t *testing.T) {
	var s IDSet
	assert.True(t, s.Add(3))
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(3), "duplicate add must not change the set")
	assert.True(t, s.Add(2))
	assert.Equal(t, []int64{3, 1, 2}, s.IDs())

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	assert.Equal(t, []int64{3, 2}, s.IDs())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(1))
}

func TestIDSet_CloneIsIndependent(t *testing.T) {
	s := NewIDSet(1, 2)
	c := s.Clone()
	c.Add(3)
	s.Remove(1)

	assert.Equal(t, []int64{2}, s.IDs())
	assert.Equal(t, []int64{1, 2, 3}, c.IDs())
}

func TestIDSet_AssignmentIsIndependent(t *testing.T) {
	orig := NewIDSet(1, 2)
	cp := orig
	cp.Add(3)

	assert.False(t, orig.Contains(3))
	assert.Equal(t, 2, orig.Len())
	assert.Equal(t, []int64{1, 2}, orig.IDs())

	cp.Remove(1)
	orig.Add(4)
	assert.Equal(t, []int64{1, 2, 4}, orig.IDs())
	assert.Equal(t, []int64{2, 3}, cp.IDs())
}

func TestIDSet_IDsReturnsCopy(t *testing.T) {
	s := NewIDSet(1, 2)
	ids := s.IDs()
	ids[0] = 99
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(99))
}

func TestIDSet_EqualIgnoresOrder(t *testing.T) {
	assert.True(t, NewIDSet(1, 2, 3).Equal(NewIDSet(3, 1, 2)))
	assert.False(t, NewIDSet(1, 2).Equal(NewIDSet(1, 2, 3)))
	assert.False(t, NewIDSet(1, 2).Equal(NewIDSet(1, 4)))
	assert.True(t, IDSet{}.Equal(NewIDSet()))

	// go-cmp picks up the Equal method, so entities compare by membership.
	a := &User{ID: 1, Subscribers: NewIDSet(2, 3)}
	b := &User{ID: 1, Subscribers: NewIDSet(3, 2)}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
