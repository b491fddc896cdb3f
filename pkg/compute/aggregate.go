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
	"github.com/cockroachdb/errors"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/util"
)

// aggrState is the per-chunk partial result of a reduction.
type aggrState[T any] struct {
	value T
	count int
}

func reduce[T common.Number, S any](
	c *chunk.Container[T],
	init S,
	update func(state *S, val T),
	combine func(state *S, other *S),
) (S, int64, error) {
	if c == nil {
		return init, 0, common.NilArgument("container")
	}
	states := make([]aggrState[S], c.ChunkCount())
	err := GExecutor.Run(c.ChunkCount(), func(i int) error {
		st := &states[i]
		st.value = init
		for _, v := range c.Chunk(i).Values() {
			update(&st.value, v)
		}
		st.count = c.Chunk(i).Len()
		return nil
	})
	if err != nil {
		return init, 0, err
	}
	res := init
	cnt := int64(0)
	for i := range states {
		if states[i].count == 0 {
			continue
		}
		combine(&res, &states[i].value)
		cnt += int64(states[i].count)
	}
	return res, cnt, nil
}

type extremeState[T common.Number] struct {
	val T
	set bool
}

func extreme[T common.Number](c *chunk.Container[T], better func(a, b T) bool, name string) (T, error) {
	update := func(state *extremeState[T], val T) {
		if !state.set || better(val, state.val) {
			state.val = val
			state.set = true
		}
	}
	res, _, err := reduce(c, extremeState[T]{},
		update,
		func(state *extremeState[T], other *extremeState[T]) {
			if other.set {
				update(state, other.val)
			}
		})
	if err != nil {
		var zero T
		return zero, err
	}
	if !res.set {
		var zero T
		return zero, errors.Wrapf(common.ErrEmptyContainer, "%s", name)
	}
	return res.val, nil
}

// Max returns the greatest element. NaN is greater than every number.
func Max[T common.Number](c *chunk.Container[T]) (T, error) {
	return extreme(c, func(a, b T) bool {
		return util.LessNumber(b, a)
	}, "max")
}

// Min returns the least element. NaN is only returned when every element is NaN.
func Min[T common.Number](c *chunk.Container[T]) (T, error) {
	return extreme(c, util.LessNumber[T], "min")
}

// Sum wraps on integer overflow. The sum of an empty container is 0.
func Sum[T common.Number](c *chunk.Container[T]) (T, error) {
	res, _, err := reduce(c, T(0),
		func(state *T, val T) {
			*state += val
		},
		func(state *T, other *T) {
			*state += *other
		})
	return res, err
}

// Product of an empty container is 1.
func Product[T common.Number](c *chunk.Container[T]) (T, error) {
	res, _, err := reduce(c, T(1),
		func(state *T, val T) {
			*state *= val
		},
		func(state *T, other *T) {
			*state *= *other
		})
	return res, err
}

func Mean[T common.Number](c *chunk.Container[T]) (float64, error) {
	res, cnt, err := reduce(c, float64(0),
		func(state *float64, val T) {
			*state += float64(val)
		},
		func(state *float64, other *float64) {
			*state += *other
		})
	if err != nil {
		return 0, err
	}
	if cnt == 0 {
		return 0, errors.Wrapf(common.ErrEmptyContainer, "mean")
	}
	return res / float64(cnt), nil
}
