package column

import (
	"fmt"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/xlab/treeprint"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/compute"
	"github.com/daviszhen/colstore/pkg/util"
)

type BoolColumn struct {
	name string
	data *chunk.Container[bool]
}

func NewBoolColumn(name string, opts ...chunk.Option) *BoolColumn {
	return &BoolColumn{
		name: name,
		data: chunk.NewContainer[bool](opts...),
	}
}

func NewBoolColumnFromSlice(name string, vals []bool, opts ...chunk.Option) *BoolColumn {
	return &BoolColumn{
		name: name,
		data: chunk.NewContainerFromSlice(vals, opts...),
	}
}

func (col *BoolColumn) Name() string {
	return col.name
}

func (col *BoolColumn) SetName(name string) {
	col.name = name
}

func (col *BoolColumn) Len() int64 {
	return col.data.Len()
}

func (col *BoolColumn) Typ() common.PhyType {
	return common.BOOL
}

func (col *BoolColumn) NullCount() int64 {
	return 0
}

func (col *BoolColumn) Data() *chunk.Container[bool] {
	return col.data
}

func (col *BoolColumn) Get(idx int64) (bool, error) {
	return col.data.Get(idx)
}

func (col *BoolColumn) Set(idx int64, val bool) error {
	return col.data.Set(idx, val)
}

func (col *BoolColumn) Append(val bool) {
	col.data.Append(val)
}

func (col *BoolColumn) GetValue(idx int64) (*Value, error) {
	val, err := col.data.Get(idx)
	if err != nil {
		return nil, err
	}
	return BoolValue(val), nil
}

func (col *BoolColumn) SetValue(idx int64, val *Value) error {
	b, err := BoolAs[bool](val)
	if err != nil {
		return err
	}
	return col.data.Set(idx, b)
}

func (col *BoolColumn) AppendValue(val *Value) error {
	b, err := BoolAs[bool](val)
	if err != nil {
		return err
	}
	col.data.Append(b)
	return nil
}

func (col *BoolColumn) AppendString(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}
	col.data.Append(b)
	return nil
}

func (col *BoolColumn) String(idx int64) (string, error) {
	val, err := col.data.Get(idx)
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(val), nil
}

func (col *BoolColumn) Clone() Column {
	return col.clone()
}

func (col *BoolColumn) clone() *BoolColumn {
	return &BoolColumn{
		name: col.name,
		data: col.data.Clone(),
	}
}

func (col *BoolColumn) target(inPlace bool) *BoolColumn {
	if inPlace {
		return col
	}
	return col.clone()
}

func (col *BoolColumn) Take(indices *chunk.Container[int64]) (Column, error) {
	data, err := compute.Take(col.data, indices)
	if err != nil {
		return nil, err
	}
	return &BoolColumn{name: col.name, data: data}, nil
}

func (col *BoolColumn) Filter(sel *roaring64.Bitmap) (Column, error) {
	data, err := compute.TakeSelection(col.data, sel)
	if err != nil {
		return nil, err
	}
	return &BoolColumn{name: col.name, data: data}, nil
}

// SortIndices puts false before true ascending.
func (col *BoolColumn) SortIndices(order compute.OrderType) (*chunk.Container[int64], error) {
	less := func(a, b bool) bool {
		return !a && b
	}
	if order == compute.OT_DESC {
		return compute.Sort(col.data, func(a, b bool) bool {
			return less(b, a)
		})
	}
	return compute.Sort(col.data, less)
}

func (col *BoolColumn) Print(tree treeprint.Tree) {
	col.data.Print(tree.AddBranch(fmt.Sprintf("column %s", col.name)))
}

// Selection returns the rows holding true.
func (col *BoolColumn) Selection() *roaring64.Bitmap {
	return compute.Selection(col.data)
}

func (col *BoolColumn) CountTrue() int64 {
	return int64(col.Selection().GetCardinality())
}

func (col *BoolColumn) Logical(op compute.LogicalOp, other *BoolColumn, inPlace bool) (*BoolColumn, error) {
	if other == nil {
		return nil, common.NilArgument("other")
	}
	if col.Len() != other.Len() {
		return nil, common.LengthMismatch(col.Len(), other.Len())
	}
	ret := col.target(inPlace)
	_, err := compute.Logical(op, ret.data, other.data)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (col *BoolColumn) LogicalScalar(op compute.LogicalOp, val bool, inPlace bool) (*BoolColumn, error) {
	ret := col.target(inPlace)
	_, err := compute.LogicalScalar(op, ret.data, val)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (col *BoolColumn) And(other *BoolColumn, inPlace bool) (*BoolColumn, error) {
	return col.Logical(compute.LO_AND, other, inPlace)
}

func (col *BoolColumn) Or(other *BoolColumn, inPlace bool) (*BoolColumn, error) {
	return col.Logical(compute.LO_OR, other, inPlace)
}

func (col *BoolColumn) Xor(other *BoolColumn, inPlace bool) (*BoolColumn, error) {
	return col.Logical(compute.LO_XOR, other, inPlace)
}

func (col *BoolColumn) Not(inPlace bool) (*BoolColumn, error) {
	ret := col.target(inPlace)
	_, err := compute.Not(ret.data)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Equals compares two bool columns elementwise.
func (col *BoolColumn) Equals(other *BoolColumn) (*BoolColumn, error) {
	ret, err := col.Xor(other, false)
	if err != nil {
		return nil, err
	}
	_, err = compute.Not(ret.data)
	util.AssertFunc(err == nil)
	return ret, nil
}
