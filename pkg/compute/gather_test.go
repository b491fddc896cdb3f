package compute

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
)

func TestTake(t *testing.T) {
	c := chunk.NewContainerFromSlice([]int16{10, 20, 30, 40, 50}, chunk.WithMaxCapacity(2))
	idx := chunk.NewContainerFromSlice([]int64{4, 0, 2, 2})
	ret, err := Take(c, idx)
	require.NoError(t, err)
	assert.Equal(t, []int16{50, 10, 30, 30}, values(t, ret))
	assert.Equal(t, 2, ret.MaxCap())

	_, err = Take(c, chunk.NewContainerFromSlice([]int64{5}))
	assert.True(t, errors.Is(err, common.ErrIndexOutOfRange))
}

func TestTakeSortPermutation(t *testing.T) {
	c := chunk.NewContainerFromSlice([]float64{3.5, -1, 2, 0}, chunk.WithMaxCapacity(3))
	perm, err := SortOrder(c, OT_ASC)
	require.NoError(t, err)
	sorted, err := Take(c, perm)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 2, 3.5}, values(t, sorted))
}

func TestSelection(t *testing.T) {
	c := chunk.NewContainerFromSlice([]int32{1, 5, 3, 8, 2}, chunk.WithMaxCapacity(2))
	mask, err := chunk.NewContainerLike[bool](c)
	require.NoError(t, err)
	require.NoError(t, CompareScalar(CO_GT, c, 2, mask))

	sel := Selection(mask)
	assert.Equal(t, uint64(3), sel.GetCardinality())
	assert.Equal(t, []uint64{1, 2, 3}, sel.ToArray())

	ret, err := TakeSelection(c, sel)
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 3, 8}, values(t, ret))

	_, err = TakeSelection(c, roaring64.BitmapOf(9))
	assert.True(t, errors.Is(err, common.ErrIndexOutOfRange))

	empty, err := TakeSelection(c, roaring64.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Len())
}
