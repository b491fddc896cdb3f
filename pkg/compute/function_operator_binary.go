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
	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/util"
)

type BinaryOp[T any, S any, R any] func(left *T, right *S, result *R)

type UnaryOp[T any, R any] func(input *T, result *R)

func binaryExecLoop[T any, S any, R any](
	ldata []T, rdata []S,
	resData []R,
	op BinaryOp[T, S, R],
) {
	for i := range resData {
		op(&ldata[i], &rdata[i], &resData[i])
	}
}

func binaryExecScalarLoop[T any, S any, R any](
	ldata []T, scalar *S,
	resData []R,
	op BinaryOp[T, S, R],
) {
	for i := range resData {
		op(&ldata[i], scalar, &resData[i])
	}
}

func binaryExecReversedLoop[T any, S any, R any](
	scalar *T, rdata []S,
	resData []R,
	op BinaryOp[T, S, R],
) {
	for i := range resData {
		op(scalar, &rdata[i], &resData[i])
	}
}

func unaryExecLoop[T any, R any](
	data []T,
	resData []R,
	op UnaryOp[T, R],
) {
	for i := range resData {
		op(&data[i], &resData[i])
	}
}

// binaryExec applies op position by position. result must have the layout of
// left; it may be left itself. Equal layouts are processed chunk by chunk,
// otherwise the containers are walked in logical order.
func binaryExec[T common.Element, S common.Element, R common.Element](
	left *chunk.Container[T],
	right *chunk.Container[S],
	result *chunk.Container[R],
	op BinaryOp[T, S, R],
) error {
	util.AssertFunc(left.Len() == right.Len())
	util.AssertFunc(chunk.SameLayout(left, result))
	if chunk.SameLayout(left, right) {
		return GExecutor.Run(left.ChunkCount(), func(i int) error {
			binaryExecLoop(
				left.Chunk(i).Values(),
				right.Chunk(i).Values(),
				result.Chunk(i).Values(),
				op)
			return nil
		})
	}
	lcur, rcur, ocur := left.Cursor(), right.Cursor(), result.Cursor()
	for lcur.Valid() && rcur.Valid() && ocur.Valid() {
		op(lcur.Ptr(), rcur.Ptr(), ocur.Ptr())
		lcur.Next()
		rcur.Next()
		ocur.Next()
	}
	return nil
}

func binaryExecScalar[T common.Element, S common.Element, R common.Element](
	left *chunk.Container[T],
	scalar S,
	result *chunk.Container[R],
	op BinaryOp[T, S, R],
) error {
	util.AssertFunc(chunk.SameLayout(left, result))
	return GExecutor.Run(left.ChunkCount(), func(i int) error {
		s := scalar
		binaryExecScalarLoop(
			left.Chunk(i).Values(),
			&s,
			result.Chunk(i).Values(),
			op)
		return nil
	})
}

func binaryExecReversed[T common.Element, S common.Element, R common.Element](
	scalar T,
	right *chunk.Container[S],
	result *chunk.Container[R],
	op BinaryOp[T, S, R],
) error {
	util.AssertFunc(chunk.SameLayout(right, result))
	return GExecutor.Run(right.ChunkCount(), func(i int) error {
		s := scalar
		binaryExecReversedLoop(
			&s,
			right.Chunk(i).Values(),
			result.Chunk(i).Values(),
			op)
		return nil
	})
}

func unaryExec[T common.Element, R common.Element](
	input *chunk.Container[T],
	result *chunk.Container[R],
	op UnaryOp[T, R],
) error {
	util.AssertFunc(chunk.SameLayout(input, result))
	return GExecutor.Run(input.ChunkCount(), func(i int) error {
		unaryExecLoop(
			input.Chunk(i).Values(),
			result.Chunk(i).Values(),
			op)
		return nil
	})
}

func checkBinaryArgs[T common.Element, S common.Element](
	left *chunk.Container[T],
	right *chunk.Container[S],
) error {
	if left == nil {
		return common.NilArgument("left")
	}
	if right == nil {
		return common.NilArgument("right")
	}
	if left.Len() != right.Len() {
		return common.LengthMismatch(left.Len(), right.Len())
	}
	return nil
}
