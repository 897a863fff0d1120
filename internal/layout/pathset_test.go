package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathSet(t *testing.T) {
	s := NewPathSet("b", "a", "b")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))

	other := NewPathSet("c", "a")
	s.Union(other)
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())
}

func TestPathSet_EmptySortedIsNotNil(t *testing.T) {
	s := NewPathSet()
	assert.NotNil(t, s.Sorted())
	assert.Empty(t, s.Sorted())
}
