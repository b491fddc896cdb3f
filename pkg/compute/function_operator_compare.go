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
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
)

type CompareOp int

const (
	CO_INVALID CompareOp = iota
	CO_EQ
	CO_NE
	CO_GT
	CO_GE
	CO_LT
	CO_LE
)

func (op CompareOp) String() string {
	switch op {
	case CO_EQ:
		return "="
	case CO_NE:
		return "<>"
	case CO_GT:
		return ">"
	case CO_GE:
		return ">="
	case CO_LT:
		return "<"
	case CO_LE:
		return "<="
	default:
		return fmt.Sprintf("compare(%d)", int(op))
	}
}

func equalOp[T common.Number](left, right *T, result *bool) {
	*result = *left == *right
}

func notEqualOp[T common.Number](left, right *T, result *bool) {
	*result = *left != *right
}

func greaterOp[T common.Number](left, right *T, result *bool) {
	*result = *left > *right
}

func greaterEqualOp[T common.Number](left, right *T, result *bool) {
	*result = *left >= *right
}

func lessOp[T common.Number](left, right *T, result *bool) {
	*result = *left < *right
}

func lessEqualOp[T common.Number](left, right *T, result *bool) {
	*result = *left <= *right
}

func getCompareFunction[T common.Number](op CompareOp) (BinaryOp[T, T, bool], error) {
	switch op {
	case CO_EQ:
		return equalOp[T], nil
	case CO_NE:
		return notEqualOp[T], nil
	case CO_GT:
		return greaterOp[T], nil
	case CO_GE:
		return greaterEqualOp[T], nil
	case CO_LT:
		return lessOp[T], nil
	case CO_LE:
		return lessEqualOp[T], nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation, "%s on %s", op, common.PhyTypeOf[T]())
	}
}

func checkResultLayout[T common.Element](
	left *chunk.Container[T],
	result *chunk.Container[bool],
) error {
	if result == nil {
		return common.NilArgument("result")
	}
	if !chunk.SameLayout(left, result) {
		return errors.Wrapf(common.ErrLayoutMismatch,
			"left chunks %v, result chunks %v", left.ChunkLens(), result.ChunkLens())
	}
	return nil
}

// Compare writes left op right into result, whose chunk layout must equal
// left's. Neither operand is modified.
func Compare[T common.Number](
	op CompareOp,
	left, right *chunk.Container[T],
	result *chunk.Container[bool],
) error {
	if err := checkBinaryArgs(left, right); err != nil {
		return err
	}
	if err := checkResultLayout(left, result); err != nil {
		return err
	}
	fun, err := getCompareFunction[T](op)
	if err != nil {
		return err
	}
	return binaryExec(left, right, result, fun)
}

func CompareScalar[T common.Number](
	op CompareOp,
	left *chunk.Container[T],
	scalar T,
	result *chunk.Container[bool],
) error {
	if left == nil {
		return common.NilArgument("left")
	}
	if err := checkResultLayout(left, result); err != nil {
		return err
	}
	fun, err := getCompareFunction[T](op)
	if err != nil {
		return err
	}
	return binaryExecScalar(left, scalar, result, fun)
}

type LogicalOp int

const (
	LO_INVALID LogicalOp = iota
	LO_AND
	LO_OR
	LO_XOR
)

func (op LogicalOp) String() string {
	switch op {
	case LO_AND:
		return "and"
	case LO_OR:
		return "or"
	case LO_XOR:
		return "xor"
	default:
		return fmt.Sprintf("logical(%d)", int(op))
	}
}

func getLogicalFunction(op LogicalOp) (BinaryOp[bool, bool, bool], error) {
	switch op {
	case LO_AND:
		return func(left, right, result *bool) {
			*result = *left && *right
		}, nil
	case LO_OR:
		return func(left, right, result *bool) {
			*result = *left || *right
		}, nil
	case LO_XOR:
		return func(left, right, result *bool) {
			*result = *left != *right
		}, nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation, "%s on bool", op)
	}
}

// Logical computes left = left op right and returns left.
func Logical(
	op LogicalOp,
	left, right *chunk.Container[bool],
) (*chunk.Container[bool], error) {
	if err := checkBinaryArgs(left, right); err != nil {
		return nil, err
	}
	fun, err := getLogicalFunction(op)
	if err != nil {
		return nil, err
	}
	if err = binaryExec(left, right, left, fun); err != nil {
		return nil, err
	}
	return left, nil
}

func LogicalScalar(
	op LogicalOp,
	left *chunk.Container[bool],
	scalar bool,
) (*chunk.Container[bool], error) {
	if left == nil {
		return nil, common.NilArgument("left")
	}
	fun, err := getLogicalFunction(op)
	if err != nil {
		return nil, err
	}
	if err = binaryExecScalar(left, scalar, left, fun); err != nil {
		return nil, err
	}
	return left, nil
}

func Not(c *chunk.Container[bool]) (*chunk.Container[bool], error) {
	if c == nil {
		return nil, common.NilArgument("container")
	}
	err := unaryExec(c, c, func(input *bool, result *bool) {
		*result = !*input
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
