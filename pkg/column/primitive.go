// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package column

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/xlab/treeprint"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/compute"
)

// PrimitiveColumn is a named numeric column. Operations taking inPlace
// mutate the receiver when it is true and work on a clone otherwise.
type PrimitiveColumn[T common.Number] struct {
	name string
	data *chunk.Container[T]
}

func NewPrimitiveColumn[T common.Number](name string, opts ...chunk.Option) *PrimitiveColumn[T] {
	return &PrimitiveColumn[T]{
		name: name,
		data: chunk.NewContainer[T](opts...),
	}
}

func NewPrimitiveColumnFromSlice[T common.Number](name string, vals []T, opts ...chunk.Option) *PrimitiveColumn[T] {
	return &PrimitiveColumn[T]{
		name: name,
		data: chunk.NewContainerFromSlice(vals, opts...),
	}
}

func NewPrimitiveColumnFromContainer[T common.Number](name string, data *chunk.Container[T]) (*PrimitiveColumn[T], error) {
	if data == nil {
		return nil, common.NilArgument("data")
	}
	return &PrimitiveColumn[T]{
		name: name,
		data: data,
	}, nil
}

func (col *PrimitiveColumn[T]) Name() string {
	return col.name
}

func (col *PrimitiveColumn[T]) SetName(name string) {
	col.name = name
}

func (col *PrimitiveColumn[T]) Len() int64 {
	return col.data.Len()
}

func (col *PrimitiveColumn[T]) Typ() common.PhyType {
	return common.PhyTypeOf[T]()
}

func (col *PrimitiveColumn[T]) NullCount() int64 {
	return 0
}

func (col *PrimitiveColumn[T]) Data() *chunk.Container[T] {
	return col.data
}

func (col *PrimitiveColumn[T]) Get(idx int64) (T, error) {
	return col.data.Get(idx)
}

func (col *PrimitiveColumn[T]) Set(idx int64, val T) error {
	return col.data.Set(idx, val)
}

func (col *PrimitiveColumn[T]) Append(val T) {
	col.data.Append(val)
}

func (col *PrimitiveColumn[T]) GetValue(idx int64) (*Value, error) {
	val, err := col.data.Get(idx)
	if err != nil {
		return nil, err
	}
	return NumberValue(val), nil
}

func (col *PrimitiveColumn[T]) SetValue(idx int64, val *Value) error {
	v, err := NumberAs[T](val)
	if err != nil {
		return err
	}
	return col.data.Set(idx, v)
}

func (col *PrimitiveColumn[T]) AppendValue(val *Value) error {
	v, err := NumberAs[T](val)
	if err != nil {
		return err
	}
	col.data.Append(v)
	return nil
}

func (col *PrimitiveColumn[T]) AppendString(s string) error {
	v, err := parseNumber[T](s)
	if err != nil {
		return err
	}
	col.data.Append(v)
	return nil
}

func (col *PrimitiveColumn[T]) String(idx int64) (string, error) {
	val, err := col.GetValue(idx)
	if err != nil {
		return "", err
	}
	return val.String(), nil
}

func (col *PrimitiveColumn[T]) Clone() Column {
	return col.clone()
}

func (col *PrimitiveColumn[T]) clone() *PrimitiveColumn[T] {
	return &PrimitiveColumn[T]{
		name: col.name,
		data: col.data.Clone(),
	}
}

func (col *PrimitiveColumn[T]) target(inPlace bool) *PrimitiveColumn[T] {
	if inPlace {
		return col
	}
	return col.clone()
}

func (col *PrimitiveColumn[T]) Take(indices *chunk.Container[int64]) (Column, error) {
	data, err := compute.Take(col.data, indices)
	if err != nil {
		return nil, err
	}
	return &PrimitiveColumn[T]{name: col.name, data: data}, nil
}

func (col *PrimitiveColumn[T]) Filter(sel *roaring64.Bitmap) (Column, error) {
	data, err := compute.TakeSelection(col.data, sel)
	if err != nil {
		return nil, err
	}
	return &PrimitiveColumn[T]{name: col.name, data: data}, nil
}

func (col *PrimitiveColumn[T]) SortIndices(order compute.OrderType) (*chunk.Container[int64], error) {
	return compute.SortOrder(col.data, order)
}

// Sort returns the permutation that orders the column.
func (col *PrimitiveColumn[T]) Sort(order compute.OrderType) (*PrimitiveColumn[int64], error) {
	perm, err := col.SortIndices(order)
	if err != nil {
		return nil, err
	}
	return &PrimitiveColumn[int64]{name: col.name, data: perm}, nil
}

func (col *PrimitiveColumn[T]) Print(tree treeprint.Tree) {
	col.data.Print(tree.AddBranch(fmt.Sprintf("column %s", col.name)))
}

func (col *PrimitiveColumn[T]) Arith(op compute.ArithOp, other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	if other == nil {
		return nil, common.NilArgument("other")
	}
	if col.Len() != other.Len() {
		return nil, common.LengthMismatch(col.Len(), other.Len())
	}
	ret := col.target(inPlace)
	if _, err := compute.Arith(op, ret.data, other.data); err != nil {
		return nil, err
	}
	return ret, nil
}

func (col *PrimitiveColumn[T]) ArithScalar(op compute.ArithOp, val T, inPlace bool) (*PrimitiveColumn[T], error) {
	ret := col.target(inPlace)
	if _, err := compute.ArithScalar(op, ret.data, val); err != nil {
		return nil, err
	}
	return ret, nil
}

// ArithScalarReversed computes val op col, e.g. 10 - col.
func (col *PrimitiveColumn[T]) ArithScalarReversed(op compute.ArithOp, val T, inPlace bool) (*PrimitiveColumn[T], error) {
	ret := col.target(inPlace)
	if _, err := compute.ArithScalarReversed(op, val, ret.data); err != nil {
		return nil, err
	}
	return ret, nil
}

func (col *PrimitiveColumn[T]) Add(other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	return col.Arith(compute.AO_ADD, other, inPlace)
}

func (col *PrimitiveColumn[T]) Subtract(other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	return col.Arith(compute.AO_SUB, other, inPlace)
}

func (col *PrimitiveColumn[T]) Multiply(other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	return col.Arith(compute.AO_MUL, other, inPlace)
}

func (col *PrimitiveColumn[T]) Divide(other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	return col.Arith(compute.AO_DIV, other, inPlace)
}

func (col *PrimitiveColumn[T]) Modulo(other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	return col.Arith(compute.AO_MOD, other, inPlace)
}

func (col *PrimitiveColumn[T]) AddScalar(val T, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.ArithScalar(compute.AO_ADD, val, inPlace)
}

func (col *PrimitiveColumn[T]) SubtractScalar(val T, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.ArithScalar(compute.AO_SUB, val, inPlace)
}

func (col *PrimitiveColumn[T]) MultiplyScalar(val T, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.ArithScalar(compute.AO_MUL, val, inPlace)
}

func (col *PrimitiveColumn[T]) DivideScalar(val T, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.ArithScalar(compute.AO_DIV, val, inPlace)
}

func (col *PrimitiveColumn[T]) ModuloScalar(val T, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.ArithScalar(compute.AO_MOD, val, inPlace)
}

func (col *PrimitiveColumn[T]) Compare(op compute.CompareOp, other *PrimitiveColumn[T]) (*BoolColumn, error) {
	if other == nil {
		return nil, common.NilArgument("other")
	}
	result, err := chunk.NewContainerLike[bool](col.data)
	if err != nil {
		return nil, err
	}
	if err = compute.Compare(op, col.data, other.data, result); err != nil {
		return nil, err
	}
	return &BoolColumn{name: col.name, data: result}, nil
}

func (col *PrimitiveColumn[T]) CompareScalar(op compute.CompareOp, val T) (*BoolColumn, error) {
	result, err := chunk.NewContainerLike[bool](col.data)
	if err != nil {
		return nil, err
	}
	if err = compute.CompareScalar(op, col.data, val, result); err != nil {
		return nil, err
	}
	return &BoolColumn{name: col.name, data: result}, nil
}

func (col *PrimitiveColumn[T]) Equals(other *PrimitiveColumn[T]) (*BoolColumn, error) {
	return col.Compare(compute.CO_EQ, other)
}

func (col *PrimitiveColumn[T]) NotEquals(other *PrimitiveColumn[T]) (*BoolColumn, error) {
	return col.Compare(compute.CO_NE, other)
}

func (col *PrimitiveColumn[T]) GreaterThan(other *PrimitiveColumn[T]) (*BoolColumn, error) {
	return col.Compare(compute.CO_GT, other)
}

func (col *PrimitiveColumn[T]) GreaterThanOrEqual(other *PrimitiveColumn[T]) (*BoolColumn, error) {
	return col.Compare(compute.CO_GE, other)
}

func (col *PrimitiveColumn[T]) LessThan(other *PrimitiveColumn[T]) (*BoolColumn, error) {
	return col.Compare(compute.CO_LT, other)
}

func (col *PrimitiveColumn[T]) LessThanOrEqual(other *PrimitiveColumn[T]) (*BoolColumn, error) {
	return col.Compare(compute.CO_LE, other)
}

func (col *PrimitiveColumn[T]) EqualsScalar(val T) (*BoolColumn, error) {
	return col.CompareScalar(compute.CO_EQ, val)
}

func (col *PrimitiveColumn[T]) NotEqualsScalar(val T) (*BoolColumn, error) {
	return col.CompareScalar(compute.CO_NE, val)
}

func (col *PrimitiveColumn[T]) GreaterThanScalar(val T) (*BoolColumn, error) {
	return col.CompareScalar(compute.CO_GT, val)
}

func (col *PrimitiveColumn[T]) GreaterThanOrEqualScalar(val T) (*BoolColumn, error) {
	return col.CompareScalar(compute.CO_GE, val)
}

func (col *PrimitiveColumn[T]) LessThanScalar(val T) (*BoolColumn, error) {
	return col.CompareScalar(compute.CO_LT, val)
}

func (col *PrimitiveColumn[T]) LessThanOrEqualScalar(val T) (*BoolColumn, error) {
	return col.CompareScalar(compute.CO_LE, val)
}

func (col *PrimitiveColumn[T]) Max() (T, error) {
	return compute.Max(col.data)
}

func (col *PrimitiveColumn[T]) Min() (T, error) {
	return compute.Min(col.data)
}

func (col *PrimitiveColumn[T]) Sum() (T, error) {
	return compute.Sum(col.data)
}

func (col *PrimitiveColumn[T]) Product() (T, error) {
	return compute.Product(col.data)
}

func (col *PrimitiveColumn[T]) Mean() (float64, error) {
	return compute.Mean(col.data)
}
