package slice_test

import (
	"strconv"
	"testing"

	"github.com/devcompass/compass-cli/slice"
	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Nil(t, slice.Map([]int{}, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := func(i int) bool { return i%2 == 0 }
	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
}

func TestHas(t *testing.T) {
	assert.True(t, slice.Has([]string{".md", ".txt"}, ".txt"))
	assert.False(t, slice.Has([]string{".md"}, ".go"))
}
