package fieldset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAndContains(t *testing.T) {
	s := New[uint8]()
	assert.True(t, s.Insert(5))
	assert.True(t, s.Insert(1))
	assert.True(t, s.Insert(3))
	assert.False(t, s.Insert(3), "duplicate insert must report false")

	assert.Equal(t, []uint8{1, 3, 5}, s.Elements())
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(2))
	assert.Equal(t, 3, s.Len())
}

func TestRemove(t *testing.T) {
	s := New[uint8]()
	s.Insert(1)
	s.Insert(2)
	s.Remove(1)
	assert.False(t, s.Contains(1))
	assert.Equal(t, []uint8{2}, s.Elements())

	s.Remove(99) // no-op
	assert.Equal(t, 1, s.Len())
}

func TestIsAscending(t *testing.T) {
	assert.True(t, IsAscending([]uint8{}))
	assert.True(t, IsAscending([]uint8{1}))
	assert.True(t, IsAscending([]uint8{1, 1, 2, 5}))
	assert.False(t, IsAscending([]uint8{2, 1}))
}
