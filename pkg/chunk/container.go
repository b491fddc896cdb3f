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
	"fmt"
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/xlab/treeprint"

	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/util"
)

type options struct {
	maxCap int
}

type Option func(opts *options)

// WithMaxCapacity lowers the per-buffer element limit. Values <= 0 or above
// MaxCapacity of the element type are ignored.
func WithMaxCapacity(maxCap int) Option {
	return func(opts *options) {
		opts.maxCap = maxCap
	}
}

// ResolveMaxCap returns the per-buffer limit opts give for elements of T.
func ResolveMaxCap[T common.Element](opts ...Option) int {
	return resolveMaxCap[T](opts)
}

func resolveMaxCap[T common.Element](opts []Option) int {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	limit := MaxCapacity[T]()
	if o.maxCap <= 0 || o.maxCap > limit {
		return limit
	}
	return o.maxCap
}

// Container is one logical column stored in an ordered list of buffers.
// Appends always go to the last buffer; a new buffer is opened only when the
// last one reached max capacity. Buffers are owned exclusively.
type Container[T common.Element] struct {
	buffers []*Buffer[T]
	length  int64
	maxCap  int
}

func NewContainer[T common.Element](opts ...Option) *Container[T] {
	return &Container[T]{
		maxCap: resolveMaxCap[T](opts),
	}
}

func NewContainerFromSlice[T common.Element](vals []T, opts ...Option) *Container[T] {
	cont := NewContainer[T](opts...)
	cont.AppendSlice(vals)
	return cont
}

func NewContainerFromSeq[T common.Element](seq iter.Seq[T], opts ...Option) (*Container[T], error) {
	if seq == nil {
		return nil, common.NilArgument("seq")
	}
	cont := NewContainer[T](opts...)
	for val := range seq {
		cont.Append(val)
	}
	return cont, nil
}

// NewContainerWithLength creates length zero values.
func NewContainerWithLength[T common.Element](length int64, opts ...Option) (*Container[T], error) {
	if length < 0 {
		return nil, errors.Wrapf(common.ErrCapacityExceeded, "negative length %d", length)
	}
	cont := NewContainer[T](opts...)
	for length > 0 {
		n := int(min(length, int64(cont.maxCap)))
		buf, err := newBuffer[T](n, cont.maxCap)
		if err != nil {
			return nil, err
		}
		util.AssertFunc(buf.Extend(n) == nil)
		cont.buffers = append(cont.buffers, buf)
		cont.length += int64(n)
		length -= int64(n)
	}
	return cont, nil
}

// NewContainerLike creates zero values of R with the same buffer lengths as
// src, so that logical index i lives at the same (buffer, offset) in both.
func NewContainerLike[R common.Element, T common.Element](src *Container[T]) (*Container[R], error) {
	if src == nil {
		return nil, common.NilArgument("src")
	}
	cont := NewContainer[R]()
	for i, sbuf := range src.buffers {
		buf, err := newBuffer[R](sbuf.Len(), cont.maxCap)
		if err != nil {
			return nil, errors.Wrapf(err, "buffer %d", i)
		}
		util.AssertFunc(buf.Extend(sbuf.Len()) == nil)
		cont.buffers = append(cont.buffers, buf)
		cont.length += int64(sbuf.Len())
	}
	return cont, nil
}

func (cont *Container[T]) Len() int64 {
	return cont.length
}

func (cont *Container[T]) MaxCap() int {
	return cont.maxCap
}

func (cont *Container[T]) ChunkCount() int {
	return len(cont.buffers)
}

func (cont *Container[T]) Chunk(i int) *Buffer[T] {
	return cont.buffers[i]
}

func (cont *Container[T]) ChunkLens() []int {
	lens := make([]int, len(cont.buffers))
	for i, buf := range cont.buffers {
		lens[i] = buf.Len()
	}
	return lens
}

// writable returns the last buffer, opening a new one when it is full.
func (cont *Container[T]) writable() *Buffer[T] {
	if len(cont.buffers) == 0 || util.Back(cont.buffers).Full() {
		buf, err := newBuffer[T](0, cont.maxCap)
		util.AssertFunc(err == nil)
		cont.buffers = append(cont.buffers, buf)
	}
	return util.Back(cont.buffers)
}

func (cont *Container[T]) Append(val T) {
	buf := cont.writable()
	util.AssertFunc(buf.Append(val) == nil)
	cont.length++
}

func (cont *Container[T]) AppendSlice(vals []T) {
	for len(vals) > 0 {
		buf := cont.writable()
		n := min(len(vals), buf.Free())
		util.AssertFunc(buf.AppendSlice(vals[:n]) == nil)
		cont.length += int64(n)
		vals = vals[n:]
	}
}

// locate translates a logical index into (buffer index, offset) by walking
// the buffer lengths.
func (cont *Container[T]) locate(idx int64) (int, int, error) {
	if idx < 0 || idx >= cont.length {
		return 0, 0, common.IndexOutOfRange(idx, cont.length)
	}
	for i, buf := range cont.buffers {
		l := int64(buf.Len())
		if idx < l {
			return i, int(idx), nil
		}
		idx -= l
	}
	panic("usp")
}

func (cont *Container[T]) Get(idx int64) (T, error) {
	bi, off, err := cont.locate(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return cont.buffers[bi].values[off], nil
}

func (cont *Container[T]) Set(idx int64, val T) error {
	bi, off, err := cont.locate(idx)
	if err != nil {
		return err
	}
	cont.buffers[bi].values[off] = val
	return nil
}

// Slice copies count values starting at start.
func (cont *Container[T]) Slice(start, count int64) ([]T, error) {
	if start < 0 || count < 0 || start > cont.length || count > cont.length-start {
		return nil, errors.Wrapf(common.ErrIndexOutOfRange,
			"slice [%d, %d+%d) of length %d", start, start, count, cont.length)
	}
	ret := make([]T, 0, count)
	if count == 0 {
		return ret, nil
	}
	bi, off, err := cont.locate(start)
	if err != nil {
		return nil, err
	}
	for ; int64(len(ret)) < count; bi++ {
		vals := cont.buffers[bi].Values()[off:]
		need := int(count - int64(len(ret)))
		ret = append(ret, vals[:min(need, len(vals))]...)
		off = 0
	}
	return ret, nil
}

// Clone deep copies every buffer and keeps the buffer lengths.
func (cont *Container[T]) Clone() *Container[T] {
	ret := &Container[T]{
		buffers: make([]*Buffer[T], len(cont.buffers)),
		length:  cont.length,
		maxCap:  cont.maxCap,
	}
	for i, buf := range cont.buffers {
		ret.buffers[i] = buf.Clone()
	}
	return ret
}

func (cont *Container[T]) All() iter.Seq2[int64, T] {
	return func(yield func(int64, T) bool) {
		idx := int64(0)
		for _, buf := range cont.buffers {
			for _, val := range buf.Values() {
				if !yield(idx, val) {
					return
				}
				idx++
			}
		}
	}
}

func (cont *Container[T]) Print(tree treeprint.Tree) {
	branch := tree.AddBranch(fmt.Sprintf("%s length=%d chunks=%d maxCap=%d",
		common.PhyTypeOf[T](), cont.length, len(cont.buffers), cont.maxCap))
	offset := int64(0)
	for i, buf := range cont.buffers {
		branch.AddNode(fmt.Sprintf("chunk %d: rows [%d, %d) cap=%d",
			i, offset, offset+int64(buf.Len()), buf.Cap()))
		offset += int64(buf.Len())
	}
}

// SameLayout reports whether a and b have the same buffer count and the same
// length in every buffer.
func SameLayout[T common.Element, S common.Element](a *Container[T], b *Container[S]) bool {
	if a.length != b.length || len(a.buffers) != len(b.buffers) {
		return false
	}
	for i := range a.buffers {
		if a.buffers[i].Len() != b.buffers[i].Len() {
			return false
		}
	}
	return true
}
