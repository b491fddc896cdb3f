package compute

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
)

func deref[T common.Element](t *testing.T, c *chunk.Container[T], perm *chunk.Container[int64]) []T {
	ret := make([]T, 0, perm.Len())
	for _, idx := range perm.All() {
		v, err := c.Get(idx)
		require.NoError(t, err)
		ret = append(ret, v)
	}
	return ret
}

func TestSortTieBreak(t *testing.T) {
	// chunks [5,1,5] [2,5,0] [5,3]
	c := chunk.NewContainerFromSlice([]int32{5, 1, 5, 2, 5, 0, 5, 3}, chunk.WithMaxCapacity(3))
	require.Equal(t, 3, c.ChunkCount())
	perm, err := SortOrder(c, OT_ASC)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 1, 3, 7, 0, 4, 6, 2}, values(t, perm))
	assert.Equal(t, []int32{0, 1, 2, 3, 5, 5, 5, 5}, deref(t, c, perm))
}

func TestSortTwoChunks(t *testing.T) {
	c := chunk.NewContainerFromSlice([]int32{5, 1, 5, 2, 5, 0}, chunk.WithMaxCapacity(3))
	perm, err := SortOrder(c, OT_ASC)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 1, 3, 0, 4, 2}, values(t, perm))
}

func TestSortDescending(t *testing.T) {
	c := chunk.NewContainerFromSlice([]int64{5, 1, 5, 2, 5, 0}, chunk.WithMaxCapacity(3))
	perm, err := SortOrder(c, OT_DESC)
	require.NoError(t, err)
	// ties keep the ascending tie-break, output is not reversed
	assert.Equal(t, []int64{0, 4, 2, 3, 1, 5}, values(t, perm))
	assert.Equal(t, []int64{5, 5, 5, 2, 1, 0}, deref(t, c, perm))
}

func TestSortIdempotent(t *testing.T) {
	vals := make([]uint16, 50)
	for i := range vals {
		vals[i] = uint16(i * 2)
	}
	c := chunk.NewContainerFromSlice(vals, chunk.WithMaxCapacity(7))
	perm, err := SortOrder(c, OT_ASC)
	require.NoError(t, err)
	for i, idx := range values(t, perm) {
		require.Equal(t, int64(i), idx)
	}

	dups := chunk.NewContainerFromSlice([]uint16{1, 1, 2, 2, 2, 3, 3}, chunk.WithMaxCapacity(3))
	perm, err = SortOrder(dups, OT_ASC)
	require.NoError(t, err)
	// chunk 1 queues its 2 before chunk 0 reaches its own 2
	assert.Equal(t, []int64{0, 1, 3, 2, 4, 6, 5}, values(t, perm))
	assert.Equal(t, []uint16{1, 1, 2, 2, 2, 3, 3}, deref(t, dups, perm))
}

func TestSortRandom(t *testing.T) {
	old := GExecutor
	defer func() { GExecutor = old }()
	SetParallelism(3)

	r := rand.New(rand.NewSource(42))
	vals := make([]int8, 500)
	for i := range vals {
		vals[i] = int8(r.Intn(20) - 10)
	}
	c := chunk.NewContainerFromSlice(vals, chunk.WithMaxCapacity(33))
	perm, err := SortOrder(c, OT_ASC)
	require.NoError(t, err)
	require.Equal(t, c.Len(), perm.Len())

	got := deref(t, c, perm)
	assert.True(t, slices.IsSorted(got))

	seen := make(map[int64]bool)
	for _, idx := range perm.All() {
		require.False(t, seen[idx])
		seen[idx] = true
	}
}

func TestSortFloatNaN(t *testing.T) {
	nan := math.NaN()
	c := chunk.NewContainerFromSlice([]float64{nan, 2, -1, nan, 0}, chunk.WithMaxCapacity(2))
	perm, err := SortOrder(c, OT_ASC)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 1, 3, 0}, values(t, perm))

	perm, err = SortOrder(c, OT_DESC)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 3, 1, 4, 2}, values(t, perm))
}

func TestSortCustomLess(t *testing.T) {
	c := chunk.NewContainerFromSlice([]bool{true, false, true, false}, chunk.WithMaxCapacity(3))
	perm, err := Sort(c, func(a, b bool) bool {
		return !a && b
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 0, 2}, values(t, perm))

	_, err = Sort[bool](c, nil)
	assert.True(t, errors.Is(err, common.ErrNilArgument))
}

func TestSortEmpty(t *testing.T) {
	perm, err := SortOrder(chunk.NewContainer[float32](), OT_ASC)
	require.NoError(t, err)
	assert.Equal(t, int64(0), perm.Len())
}
