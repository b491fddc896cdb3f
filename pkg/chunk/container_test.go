package chunk

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xlab/treeprint"

	"github.com/daviszhen/colstore/pkg/common"
)

func seqInt32(n int) []int32 {
	ret := make([]int32, n)
	for i := range ret {
		ret[i] = int32(i * 3)
	}
	return ret
}

func readAll[T common.Element](t *testing.T, cont *Container[T]) []T {
	ret := make([]T, 0, cont.Len())
	for i := int64(0); i < cont.Len(); i++ {
		v, err := cont.Get(i)
		require.NoError(t, err)
		ret = append(ret, v)
	}
	return ret
}

func TestContainerFromSlice(t *testing.T) {
	const maxCap = 5
	cases := []struct {
		n      int
		chunks int
	}{
		{0, 0},
		{1, 1},
		{maxCap - 1, 1},
		{maxCap, 1},
		{maxCap + 1, 2},
		{2*maxCap - 1, 2},
		{2 * maxCap, 2},
		{2*maxCap + 1, 3},
	}
	for _, c := range cases {
		vals := seqInt32(c.n)
		cont := NewContainerFromSlice(vals, WithMaxCapacity(maxCap))
		assert.Equal(t, int64(c.n), cont.Len(), "n=%d", c.n)
		assert.Equal(t, c.chunks, cont.ChunkCount(), "n=%d", c.n)
		if diff := cmp.Diff(vals, readAll(t, cont)); diff != "" {
			t.Errorf("n=%d mismatch (-want +got):\n%s", c.n, diff)
		}
		all, err := cont.Slice(0, cont.Len())
		require.NoError(t, err)
		assert.Equal(t, vals, all)
	}
}

func TestContainerAppendCrossesChunks(t *testing.T) {
	const maxCap = 7
	cont := NewContainer[int64](WithMaxCapacity(maxCap))
	for i := 0; i < maxCap+1; i++ {
		cont.Append(int64(i))
		v, err := cont.Get(cont.Len() - 1)
		require.NoError(t, err)
		assert.Equal(t, int64(i), v)
	}
	assert.Equal(t, 2, cont.ChunkCount())
	assert.Equal(t, []int{maxCap, 1}, cont.ChunkLens())

	for i := maxCap + 1; i < 5*maxCap; i++ {
		cont.Append(int64(i))
	}
	assert.Equal(t, 5, cont.ChunkCount())
	for i := 0; i < cont.ChunkCount(); i++ {
		assert.LessOrEqual(t, cont.Chunk(i).Cap(), maxCap)
	}
}

func TestContainerMaxCapacityOption(t *testing.T) {
	assert.Equal(t, MaxCapacity[int64](), NewContainer[int64]().MaxCap())
	assert.Equal(t, MaxCapacity[int64](), NewContainer[int64](WithMaxCapacity(-3)).MaxCap())
	assert.Equal(t, MaxCapacity[int64](), NewContainer[int64](WithMaxCapacity(MaxCapacity[int64]()+1)).MaxCap())
	assert.Equal(t, 3, NewContainer[int64](WithMaxCapacity(3)).MaxCap())
}

func TestContainerFromSeq(t *testing.T) {
	cont, err := NewContainerFromSeq(slices.Values([]float32{1, 2, 3, 4, 5}), WithMaxCapacity(2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, cont.ChunkLens())
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, readAll(t, cont))

	_, err = NewContainerFromSeq[float32](nil)
	assert.True(t, errors.Is(err, common.ErrNilArgument))
}

func TestContainerWithLength(t *testing.T) {
	cont, err := NewContainerWithLength[uint16](11, WithMaxCapacity(4))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 3}, cont.ChunkLens())
	for _, v := range cont.All() {
		assert.Equal(t, uint16(0), v)
	}
	cont.Append(9)
	assert.Equal(t, []int{4, 4, 4}, cont.ChunkLens())

	_, err = NewContainerWithLength[uint16](-1)
	assert.Error(t, err)
}

func TestContainerGetSet(t *testing.T) {
	cont := NewContainerFromSlice(seqInt32(10), WithMaxCapacity(3))
	require.NoError(t, cont.Set(4, -1))
	require.NoError(t, cont.Set(9, -2))
	v, err := cont.Get(4)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
	assert.Equal(t, int32(-2), cont.Chunk(3).Values()[0])

	_, err = cont.Get(10)
	assert.True(t, errors.Is(err, common.ErrIndexOutOfRange))
	err = cont.Set(-1, 0)
	assert.True(t, errors.Is(err, common.ErrIndexOutOfRange))
}

func TestContainerClone(t *testing.T) {
	cont := NewContainerFromSlice(seqInt32(8), WithMaxCapacity(3))
	cl := cont.Clone()
	assert.Equal(t, cont.Len(), cl.Len())
	assert.Equal(t, cont.ChunkLens(), cl.ChunkLens())
	assert.True(t, SameLayout(cont, cl))
	assert.Equal(t, readAll(t, cont), readAll(t, cl))

	require.NoError(t, cl.Set(0, 1000))
	cl.Append(77)
	assert.Equal(t, seqInt32(8), readAll(t, cont))

	require.NoError(t, cont.Set(7, -5))
	v, err := cl.Get(7)
	require.NoError(t, err)
	assert.Equal(t, int32(21), v)
}

func TestContainerSlice(t *testing.T) {
	vals := seqInt32(10)
	cont := NewContainerFromSlice(vals, WithMaxCapacity(4))
	got, err := cont.Slice(3, 6)
	require.NoError(t, err)
	assert.Equal(t, vals[3:9], got)

	got, err = cont.Slice(10, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = cont.Slice(8, 3)
	assert.True(t, errors.Is(err, common.ErrIndexOutOfRange))
	_, err = cont.Slice(-1, 1)
	assert.True(t, errors.Is(err, common.ErrIndexOutOfRange))
}

func TestContainerLike(t *testing.T) {
	src := NewContainerFromSlice(seqInt32(9), WithMaxCapacity(4))
	res, err := NewContainerLike[bool](src)
	require.NoError(t, err)
	assert.True(t, SameLayout(src, res))
	assert.Equal(t, []int{4, 4, 1}, res.ChunkLens())

	perm, err := NewContainerLike[int64](src)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 1}, perm.ChunkLens())

	_, err = NewContainerLike[bool, int32](nil)
	assert.True(t, errors.Is(err, common.ErrNilArgument))
}

func TestSameLayout(t *testing.T) {
	a := NewContainerFromSlice(seqInt32(6), WithMaxCapacity(3))
	b := NewContainerFromSlice(seqInt32(6), WithMaxCapacity(4))
	assert.False(t, SameLayout(a, b))
	assert.True(t, SameLayout(a, a.Clone()))
}

func TestCursor(t *testing.T) {
	cont := NewContainerFromSlice(seqInt32(7), WithMaxCapacity(3))
	got := make([]int32, 0)
	for cur := cont.Cursor(); cur.Valid(); cur.Next() {
		got = append(got, *cur.Ptr())
	}
	assert.Equal(t, seqInt32(7), got)

	empty := NewContainer[int32]()
	assert.False(t, empty.Cursor().Valid())
}

func TestContainerAll(t *testing.T) {
	cont := NewContainerFromSlice(seqInt32(5), WithMaxCapacity(2))
	idxs := make([]int64, 0)
	for i, v := range cont.All() {
		idxs = append(idxs, i)
		if v == 6 {
			break
		}
	}
	assert.Equal(t, []int64{0, 1, 2}, idxs)
}

func TestContainerPrint(t *testing.T) {
	cont := NewContainerFromSlice(seqInt32(5), WithMaxCapacity(2))
	tree := treeprint.New()
	cont.Print(tree)
	out := tree.String()
	assert.Contains(t, out, "INT32 length=5 chunks=3")
	assert.Contains(t, out, "chunk 2: rows [4, 5)")
}
