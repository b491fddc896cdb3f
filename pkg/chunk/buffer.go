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

package chunk

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/huandu/go-clone"

	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/util"
)

// MaxCapacity is the largest number of T one buffer can hold. The byte size
// of a buffer never exceeds a 31-bit range so that index arithmetic on it
// never overflows a signed 32-bit integer.
func MaxCapacity[T common.Element]() int {
	return math.MaxInt32 / elementSize[T]()
}

func elementSize[T common.Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Buffer is a growable block of fixed maximum capacity. Values live in a
// byte region viewed as []T. Valid values are [0, length) without holes.
type Buffer[T common.Element] struct {
	data   []byte
	values []T
	length int
	maxCap int
}

func NewBuffer[T common.Element](capacity int) (*Buffer[T], error) {
	return newBuffer[T](capacity, MaxCapacity[T]())
}

func newBuffer[T common.Element](capacity int, maxCap int) (*Buffer[T], error) {
	util.AssertFunc(maxCap > 0 && maxCap <= MaxCapacity[T]())
	if capacity < 0 || capacity > maxCap {
		return nil, errors.Wrapf(common.ErrCapacityExceeded,
			"requested capacity %d, max capacity %d", capacity, maxCap)
	}
	buf := &Buffer[T]{
		maxCap: maxCap,
	}
	buf.realloc(capacity)
	return buf, nil
}

// realloc moves the valid values into a fresh region of capacity elements.
// The views are swapped only after the copy is complete.
func (buf *Buffer[T]) realloc(capacity int) {
	util.AssertFunc(capacity >= buf.length && capacity <= buf.maxCap)
	size := elementSize[T]()
	data := util.GAlloc.Alloc(capacity * size)
	values := util.ToSlice[T](data, size)
	copy(values, buf.values[:buf.length])
	old := buf.data
	buf.data, buf.values = data, values
	if old != nil {
		util.GAlloc.Free(old)
	}
}

// grow makes room for need values: max(2*cap, need), clamped to max capacity.
func (buf *Buffer[T]) grow(need int) {
	util.AssertFunc(need <= buf.maxCap)
	target := max(int64(buf.Cap())*2, int64(need))
	target = min(target, int64(buf.maxCap))
	buf.realloc(int(target))
}

func (buf *Buffer[T]) Len() int {
	return buf.length
}

func (buf *Buffer[T]) Cap() int {
	return len(buf.values)
}

func (buf *Buffer[T]) MaxCap() int {
	return buf.maxCap
}

// Full reports whether no more values can ever be appended.
func (buf *Buffer[T]) Full() bool {
	return buf.length == buf.maxCap
}

func (buf *Buffer[T]) Free() int {
	return buf.maxCap - buf.length
}

func (buf *Buffer[T]) Append(val T) error {
	if buf.Full() {
		return errors.Wrapf(common.ErrBufferFull, "max capacity %d", buf.maxCap)
	}
	if buf.length == buf.Cap() {
		buf.grow(buf.length + 1)
	}
	buf.values[buf.length] = val
	buf.length++
	return nil
}

// AppendSlice appends all of vals or nothing.
func (buf *Buffer[T]) AppendSlice(vals []T) error {
	if err := buf.EnsureCapacity(len(vals)); err != nil {
		return err
	}
	copy(buf.values[buf.length:], vals)
	buf.length += len(vals)
	return nil
}

// Extend appends n zero values.
func (buf *Buffer[T]) Extend(n int) error {
	if err := buf.EnsureCapacity(n); err != nil {
		return err
	}
	clear(buf.values[buf.length : buf.length+n])
	buf.length += n
	return nil
}

// EnsureCapacity grows the storage ahead of appending additional values.
func (buf *Buffer[T]) EnsureCapacity(additional int) error {
	if additional <= 0 {
		return nil
	}
	total := int64(buf.length) + int64(additional)
	if total > int64(buf.maxCap) {
		return errors.Wrapf(common.ErrCapacityExceeded,
			"length %d + additional %d exceeds max capacity %d", buf.length, additional, buf.maxCap)
	}
	if total > int64(buf.Cap()) {
		buf.grow(int(total))
	}
	return nil
}

func (buf *Buffer[T]) Get(idx int) (T, error) {
	if idx < 0 || idx >= buf.length {
		var zero T
		return zero, common.IndexOutOfRange(int64(idx), int64(buf.length))
	}
	return buf.values[idx], nil
}

func (buf *Buffer[T]) Set(idx int, val T) error {
	if idx < 0 || idx >= buf.length {
		return common.IndexOutOfRange(int64(idx), int64(buf.length))
	}
	buf.values[idx] = val
	return nil
}

// Values is the mutable view of the valid values. It is invalidated by any
// append that grows the buffer.
func (buf *Buffer[T]) Values() []T {
	return buf.values[:buf.length]
}

// Clone copies the valid values into a buffer of tight capacity.
func (buf *Buffer[T]) Clone() *Buffer[T] {
	size := elementSize[T]()
	ret := &Buffer[T]{
		length: buf.length,
		maxCap: buf.maxCap,
	}
	if buf.length == 0 {
		return ret
	}
	ret.data = clone.Clone(buf.data[:buf.length*size]).([]byte)
	ret.values = util.ToSlice[T](ret.data, size)
	return ret
}
