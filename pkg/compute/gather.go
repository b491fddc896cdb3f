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

package compute

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
)

// Take gathers c[indices[0]], c[indices[1]], ... into a new container with
// the chunk limit of c.
func Take[T common.Element](
	c *chunk.Container[T],
	indices *chunk.Container[int64],
) (*chunk.Container[T], error) {
	if c == nil {
		return nil, common.NilArgument("container")
	}
	if indices == nil {
		return nil, common.NilArgument("indices")
	}
	ret := chunk.NewContainer[T](chunk.WithMaxCapacity(c.MaxCap()))
	for _, idx := range indices.All() {
		val, err := c.Get(idx)
		if err != nil {
			return nil, err
		}
		ret.Append(val)
	}
	return ret, nil
}

// TakeSelection gathers the rows set in sel, in ascending row order.
func TakeSelection[T common.Element](
	c *chunk.Container[T],
	sel *roaring64.Bitmap,
) (*chunk.Container[T], error) {
	if c == nil {
		return nil, common.NilArgument("container")
	}
	if sel == nil {
		return nil, common.NilArgument("selection")
	}
	if !sel.IsEmpty() && sel.Maximum() >= uint64(c.Len()) {
		return nil, common.IndexOutOfRange(int64(sel.Maximum()), c.Len())
	}
	ret := chunk.NewContainer[T](chunk.WithMaxCapacity(c.MaxCap()))
	it := sel.Iterator()
	for it.HasNext() {
		val, err := c.Get(int64(it.Next()))
		if err != nil {
			return nil, err
		}
		ret.Append(val)
	}
	return ret, nil
}

// Selection returns the rows of mask that are true.
func Selection(mask *chunk.Container[bool]) *roaring64.Bitmap {
	sel := roaring64.New()
	if mask == nil {
		return sel
	}
	for idx, val := range mask.All() {
		if val {
			sel.Add(uint64(idx))
		}
	}
	return sel
}
