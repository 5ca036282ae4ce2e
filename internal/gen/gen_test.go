//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetSubtraction(t *testing.T) {
	aa := []string{"a", "b", "c", "d", "g", "h"}
	bb := []string{"a", "b", "e", "f", "g"}
	assert.Equal(t, []string{"c", "d", "h"}, SetSubtraction(aa, bb))
}

func TestUniqueKeepsFirstPosition(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"z": 1, "a": 2, "m": 3}
	assert.Equal(t, []string{"a", "m", "z"}, SortedKeys(m))
}

func TestChunkSlice(t *testing.T) {
	ch := ChunkSlice([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, ch)
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 2, ArgMax([]float64{0.1, 0.3, 0.9, 0.2}))
	assert.Equal(t, -1, ArgMax([]int{}))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitCSV("a, b,,c "))
}
