package column

import (
	"fmt"
	"math"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cockroachdb/errors"
	"github.com/xlab/treeprint"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/compute"
)

// stringChunk keeps the bytes of its strings back to back. String i is
// data[offsets[i]:offsets[i+1]].
type stringChunk struct {
	data    []byte
	offsets []uint32
}

func newStringChunk() *stringChunk {
	return &stringChunk{
		offsets: []uint32{0},
	}
}

func (sc *stringChunk) len() int {
	return len(sc.offsets) - 1
}

func (sc *stringChunk) get(i int) string {
	return string(sc.data[sc.offsets[i]:sc.offsets[i+1]])
}

func (sc *stringChunk) fits(s string) bool {
	return len(sc.data)+len(s) <= math.MaxInt32
}

func (sc *stringChunk) append(s string) {
	sc.data = append(sc.data, s...)
	sc.offsets = append(sc.offsets, uint32(len(sc.data)))
}

func (sc *stringChunk) set(i int, s string) {
	start, end := sc.offsets[i], sc.offsets[i+1]
	delta := len(s) - int(end-start)
	data := make([]byte, 0, len(sc.data)+delta)
	data = append(data, sc.data[:start]...)
	data = append(data, s...)
	data = append(data, sc.data[end:]...)
	sc.data = data
	for j := i + 1; j < len(sc.offsets); j++ {
		sc.offsets[j] = uint32(int(sc.offsets[j]) + delta)
	}
}

// StringColumn stores variable-length strings in chunks. A chunk holds at
// most maxRows strings and at most math.MaxInt32 bytes.
type StringColumn struct {
	name    string
	chunks  []*stringChunk
	length  int64
	maxRows int
	opts    []chunk.Option
}

func NewStringColumn(name string, opts ...chunk.Option) *StringColumn {
	return &StringColumn{
		name:    name,
		maxRows: chunk.ResolveMaxCap[uint32](opts...),
		opts:    opts,
	}
}

func NewStringColumnFromSlice(name string, vals []string, opts ...chunk.Option) (*StringColumn, error) {
	col := NewStringColumn(name, opts...)
	for _, s := range vals {
		if err := col.Append(s); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func (col *StringColumn) Name() string {
	return col.name
}

func (col *StringColumn) SetName(name string) {
	col.name = name
}

func (col *StringColumn) Len() int64 {
	return col.length
}

func (col *StringColumn) Typ() common.PhyType {
	return common.VARCHAR
}

func (col *StringColumn) NullCount() int64 {
	return 0
}

func (col *StringColumn) ChunkCount() int {
	return len(col.chunks)
}

func (col *StringColumn) locate(idx int64) (*stringChunk, int, error) {
	if idx < 0 || idx >= col.length {
		return nil, 0, common.IndexOutOfRange(idx, col.length)
	}
	for _, sc := range col.chunks {
		if idx < int64(sc.len()) {
			return sc, int(idx), nil
		}
		idx -= int64(sc.len())
	}
	panic("usp")
}

func (col *StringColumn) Get(idx int64) (string, error) {
	sc, off, err := col.locate(idx)
	if err != nil {
		return "", err
	}
	return sc.get(off), nil
}

func (col *StringColumn) Set(idx int64, s string) error {
	sc, off, err := col.locate(idx)
	if err != nil {
		return err
	}
	old := sc.offsets[off+1] - sc.offsets[off]
	if len(sc.data)-int(old)+len(s) > math.MaxInt32 {
		return errors.Wrapf(common.ErrCapacityExceeded, "string of %d bytes at row %d", len(s), idx)
	}
	sc.set(off, s)
	return nil
}

func (col *StringColumn) Append(s string) error {
	if len(s) > math.MaxInt32 {
		return errors.Wrapf(common.ErrCapacityExceeded, "string of %d bytes", len(s))
	}
	var last *stringChunk
	if len(col.chunks) != 0 {
		last = col.chunks[len(col.chunks)-1]
	}
	if last == nil || last.len() >= col.maxRows || !last.fits(s) {
		last = newStringChunk()
		col.chunks = append(col.chunks, last)
	}
	last.append(s)
	col.length++
	return nil
}

func (col *StringColumn) GetValue(idx int64) (*Value, error) {
	s, err := col.Get(idx)
	if err != nil {
		return nil, err
	}
	return StringValue(s), nil
}

func (col *StringColumn) SetValue(idx int64, val *Value) error {
	s, err := StringAs(val)
	if err != nil {
		return err
	}
	return col.Set(idx, s)
}

func (col *StringColumn) AppendValue(val *Value) error {
	s, err := StringAs(val)
	if err != nil {
		return err
	}
	return col.Append(s)
}

func (col *StringColumn) AppendString(s string) error {
	return col.Append(s)
}

func (col *StringColumn) String(idx int64) (string, error) {
	return col.Get(idx)
}

func (col *StringColumn) Clone() Column {
	ret := &StringColumn{
		name:    col.name,
		chunks:  make([]*stringChunk, len(col.chunks)),
		length:  col.length,
		maxRows: col.maxRows,
		opts:    col.opts,
	}
	for i, sc := range col.chunks {
		ret.chunks[i] = &stringChunk{
			data:    append([]byte(nil), sc.data...),
			offsets: append([]uint32(nil), sc.offsets...),
		}
	}
	return ret
}

func (col *StringColumn) Take(indices *chunk.Container[int64]) (Column, error) {
	if indices == nil {
		return nil, common.NilArgument("indices")
	}
	ret := NewStringColumn(col.name, col.opts...)
	for _, idx := range indices.All() {
		s, err := col.Get(idx)
		if err != nil {
			return nil, err
		}
		if err = ret.Append(s); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (col *StringColumn) Filter(sel *roaring64.Bitmap) (Column, error) {
	if sel == nil {
		return nil, common.NilArgument("selection")
	}
	ret := NewStringColumn(col.name, col.opts...)
	it := sel.Iterator()
	for it.HasNext() {
		s, err := col.Get(int64(it.Next()))
		if err != nil {
			return nil, err
		}
		if err = ret.Append(s); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// SortIndices sorts the row ids of the column by their strings. The ids use
// the row limit of the string chunks.
func (col *StringColumn) SortIndices(order compute.OrderType) (*chunk.Container[int64], error) {
	ids := chunk.NewContainer[int64](chunk.WithMaxCapacity(col.maxRows))
	for i := int64(0); i < col.length; i++ {
		ids.Append(i)
	}
	cmp := func(a, b int64) int {
		sa, err := col.Get(a)
		if err != nil {
			panic(err)
		}
		sb, err := col.Get(b)
		if err != nil {
			panic(err)
		}
		return strings.Compare(sa, sb)
	}
	if order == compute.OT_DESC {
		return compute.Sort(ids, func(a, b int64) bool {
			return cmp(a, b) > 0
		})
	}
	return compute.Sort(ids, func(a, b int64) bool {
		return cmp(a, b) < 0
	})
}

func (col *StringColumn) Print(tree treeprint.Tree) {
	branch := tree.AddBranch(fmt.Sprintf("column %s", col.name)).
		AddBranch(fmt.Sprintf("%s length=%d chunks=%d maxCap=%d",
			common.VARCHAR, col.length, len(col.chunks), col.maxRows))
	offset := int64(0)
	for i, sc := range col.chunks {
		branch.AddNode(fmt.Sprintf("chunk %d: rows [%d, %d) bytes=%d",
			i, offset, offset+int64(sc.len()), len(sc.data)))
		offset += int64(sc.len())
	}
}
