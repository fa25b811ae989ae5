package aoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDListInsert(t *testing.T) {
	l := newIDList(2)
	for _, id := range []ID{10, 3, 100, 6, 5, 1000, 11, 6, 3, 1000} {
		l.insert(id)
	}
	assert.Equal(t, []ID{3, 5, 6, 10, 11, 100, 1000}, l.ids)
	assert.Equal(t, 7, l.len())
	// doubled from 2 to 4 to 8
	assert.Equal(t, 8, cap(l.ids))
}

func TestIDListContains(t *testing.T) {
	l := newIDList(0)
	assert.Equal(t, DefaultListSize, cap(l.ids))
	assert.False(t, l.contains(1))

	for _, id := range []ID{4, 2, 8} {
		l.insert(id)
	}
	assert.True(t, l.contains(2))
	assert.True(t, l.contains(8))
	assert.False(t, l.contains(3))
	assert.False(t, l.contains(9))
	assert.False(t, l.contains(1))
}

func TestIDListReset(t *testing.T) {
	l := newIDList(4)
	l.insert(1)
	l.insert(2)
	l.reset()
	assert.Equal(t, 0, l.len())
	assert.Equal(t, 4, cap(l.ids))

	l = &idList{}
	l.insert(7)
	assert.Equal(t, []ID{7}, l.ids)
	assert.Equal(t, DefaultListSize, cap(l.ids))
}
