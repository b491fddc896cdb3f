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
	"golang.org/x/sync/errgroup"

	"github.com/daviszhen/colstore/pkg/util"
)

// ChunkExecutor runs one task per chunk. Tasks never share a chunk, so they
// can run on separate goroutines; Run returns after all of them finished.
type ChunkExecutor struct {
	parallelism int
}

func NewChunkExecutor(parallelism int) *ChunkExecutor {
	return &ChunkExecutor{
		parallelism: max(parallelism, 1),
	}
}

func (exec *ChunkExecutor) Parallelism() int {
	return exec.parallelism
}

func (exec *ChunkExecutor) Run(n int, fn func(i int) error) error {
	if exec.parallelism <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(exec.parallelism)
	for i := 0; i < n; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = util.ConvertPanicError(r)
				}
			}()
			return fn(i)
		})
	}
	return g.Wait()
}

// GExecutor is used by the kernels and by the local phase of Sort.
// Configure it with SetParallelism before any container is shared.
var GExecutor = NewChunkExecutor(1)

func SetParallelism(n int) {
	GExecutor = NewChunkExecutor(n)
}
