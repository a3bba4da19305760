package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewYearSet(t *testing.T) {
	set, err := NewYearSet(5, 4, 4)
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Equal(t, []int{4, 5}, set.Sorted())

	_, err = NewYearSet()
	assert.Error(t, err)

	_, err = NewYearSet(0)
	assert.Error(t, err)

	_, err = NewYearSet(1, 6)
	assert.Error(t, err)
}

func TestParseYearSet(t *testing.T) {
	set, err := ParseYearSet(" 3, 2,4 ")
	require.NoError(t, err)
	assert.Equal(t, "2,3,4", set.String())

	_, err = ParseYearSet("1,x")
	assert.Error(t, err)

	_, err = ParseYearSet("")
	assert.Error(t, err)
}

func TestYearSet_Equal(t *testing.T) {
	set, _ := NewYearSet(3, 4, 5)

	assert.True(t, set.Equal(5, 4, 3))
	assert.True(t, set.Equal(3, 4, 5, 5))
	assert.False(t, set.Equal(4, 5))
	assert.False(t, set.Equal(2, 3, 4, 5))
	assert.False(t, set.Equal(2, 4, 5))
}

func TestAllYears(t *testing.T) {
	all := AllYears()
	assert.True(t, all.Equal(1, 2, 3, 4, 5))
	for y := MinYear; y <= MaxYear; y++ {
		assert.True(t, all.Contains(y))
	}
	assert.False(t, all.Contains(6))
}
