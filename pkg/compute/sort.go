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
	"slices"

	"github.com/liyue201/gostl/ds/queue"
	"github.com/tidwall/btree"
	"go.uber.org/zap"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/util"
)

// mergeBucket holds the chunks whose current head equals key, in the order
// they were queued.
type mergeBucket[T common.Element] struct {
	key    T
	chunks *queue.Queue[int]
}

// localSort returns the stable permutation of one chunk.
func localSort[T common.Element](vals []T, less func(a, b T) bool) []int32 {
	perm := make([]int32, len(vals))
	for i := range perm {
		perm[i] = int32(i)
	}
	slices.SortStableFunc(perm, func(a, b int32) int {
		if less(vals[a], vals[b]) {
			return -1
		} else if less(vals[b], vals[a]) {
			return 1
		}
		return 0
	})
	return perm
}

// Sort returns the logical indices of c in ascending order under less.
// Each chunk is sorted on its own, then the chunk heads are merged through
// an ordered map of FIFO buckets. Equal values are emitted in the order
// their chunks were queued under the key, chunk 0 first on the first round.
//
// less must be a strict weak order; otherwise the relative placement of
// incomparable values is unspecified.
func Sort[T common.Element](
	c *chunk.Container[T],
	less func(a, b T) bool,
) (*chunk.Container[int64], error) {
	if c == nil {
		return nil, common.NilArgument("container")
	}
	if less == nil {
		return nil, common.NilArgument("less")
	}
	cnt := c.ChunkCount()
	perms := make([][]int32, cnt)
	err := GExecutor.Run(cnt, func(i int) error {
		perms[i] = localSort(c.Chunk(i).Values(), less)
		return nil
	})
	if err != nil {
		return nil, err
	}

	offsets := make([]int64, cnt)
	for i := 1; i < cnt; i++ {
		offsets[i] = offsets[i-1] + int64(c.Chunk(i-1).Len())
	}
	cursors := make([]int, cnt)

	tree := btree.NewBTreeGOptions[*mergeBucket[T]](
		func(a, b *mergeBucket[T]) bool {
			return less(a.key, b.key)
		},
		btree.Options{NoLocks: true},
	)
	head := func(ci int) T {
		return c.Chunk(ci).Values()[perms[ci][cursors[ci]]]
	}
	push := func(ci int) {
		key := head(ci)
		bucket, has := tree.Get(&mergeBucket[T]{key: key})
		if !has {
			bucket = &mergeBucket[T]{
				key:    key,
				chunks: queue.New[int](),
			}
			tree.Set(bucket)
		}
		bucket.chunks.Push(ci)
	}
	for ci := 0; ci < cnt; ci++ {
		if len(perms[ci]) != 0 {
			push(ci)
		}
	}

	ret := chunk.NewContainer[int64]()
	for tree.Len() != 0 {
		bucket, _ := tree.PopMin()
		for !bucket.chunks.Empty() {
			ci := bucket.chunks.Pop()
			ret.Append(offsets[ci] + int64(perms[ci][cursors[ci]]))
			cursors[ci]++
			if cursors[ci] < len(perms[ci]) {
				push(ci)
			}
		}
	}
	util.AssertFunc(ret.Len() == c.Len())
	util.Debug("sort",
		zap.Int("chunks", cnt),
		zap.Int64("rows", c.Len()))
	return ret, nil
}

// SortOrder sorts numbers with util.LessNumber. NaN is placed after every
// number ascending and before every number descending. Descending order
// reverses the comparator, so ties keep the ascending tie-break.
func SortOrder[T common.Number](
	c *chunk.Container[T],
	order OrderType,
) (*chunk.Container[int64], error) {
	less := util.LessNumber[T]
	if order == OT_DESC {
		return Sort(c, func(a, b T) bool {
			return less(b, a)
		})
	}
	return Sort(c, less)
}
