package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpansionSet_CopyOnWrite(t *testing.T) {
	var empty ExpansionSet
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Has("1"))

	one := empty.With("1")
	two := one.With("2")
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, []string{"1"}, one.IDs())
	assert.Equal(t, []string{"1", "2"}, two.IDs())

	back := two.Without("1")
	assert.Equal(t, []string{"2"}, back.IDs())
	assert.True(t, two.Has("1"))

	toggled := back.Toggle("2").Toggle("3")
	assert.Equal(t, []string{"3"}, toggled.IDs())
	assert.Equal(t, []string{"2"}, back.IDs())
}

func TestExpansionSet_IgnoresEmptyIDs(t *testing.T) {
	s := NewExpansionSet("", "b", "a", "b")
	assert.Equal(t, []string{"a", "b"}, s.IDs())
	assert.Equal(t, 2, s.With("").Len())
	assert.Equal(t, 2, s.Without("zzz").Len())
}
