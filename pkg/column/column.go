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
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cockroachdb/errors"
	"github.com/xlab/treeprint"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/compute"
)

// Column is the boxed view of one named column. Typed access goes through
// the concrete column types.
type Column interface {
	Name() string
	SetName(name string)
	Len() int64
	Typ() common.PhyType
	// NullCount is always 0. Every stored value is valid.
	NullCount() int64
	GetValue(idx int64) (*Value, error)
	SetValue(idx int64, val *Value) error
	AppendValue(val *Value) error
	// AppendString parses s with the column's type and appends it.
	AppendString(s string) error
	String(idx int64) (string, error)
	Clone() Column
	Take(indices *chunk.Container[int64]) (Column, error)
	Filter(sel *roaring64.Bitmap) (Column, error)
	SortIndices(order compute.OrderType) (*chunk.Container[int64], error)
	Print(tree treeprint.Tree)
}

var (
	_ Column = &PrimitiveColumn[int32]{}
	_ Column = &BoolColumn{}
	_ Column = &StringColumn{}
)

// New creates an empty column of physical type typ.
func New(name string, typ common.PhyType, opts ...chunk.Option) (Column, error) {
	switch typ {
	case common.BOOL:
		return NewBoolColumn(name, opts...), nil
	case common.UINT8:
		return NewPrimitiveColumn[uint8](name, opts...), nil
	case common.INT8:
		return NewPrimitiveColumn[int8](name, opts...), nil
	case common.UINT16:
		return NewPrimitiveColumn[uint16](name, opts...), nil
	case common.INT16:
		return NewPrimitiveColumn[int16](name, opts...), nil
	case common.UINT32:
		return NewPrimitiveColumn[uint32](name, opts...), nil
	case common.INT32:
		return NewPrimitiveColumn[int32](name, opts...), nil
	case common.UINT64:
		return NewPrimitiveColumn[uint64](name, opts...), nil
	case common.INT64:
		return NewPrimitiveColumn[int64](name, opts...), nil
	case common.FLOAT:
		return NewPrimitiveColumn[float32](name, opts...), nil
	case common.DOUBLE:
		return NewPrimitiveColumn[float64](name, opts...), nil
	case common.VARCHAR:
		return NewStringColumn(name, opts...), nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation, "column of type %s", typ)
	}
}
