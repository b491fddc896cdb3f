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
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
)

type BitwiseOp int

const (
	BO_INVALID BitwiseOp = iota
	BO_AND
	BO_OR
	BO_XOR
)

func (op BitwiseOp) String() string {
	switch op {
	case BO_AND:
		return "and"
	case BO_OR:
		return "or"
	case BO_XOR:
		return "xor"
	default:
		return fmt.Sprintf("bitwise(%d)", int(op))
	}
}

type ShiftOp int

const (
	SO_INVALID ShiftOp = iota
	SO_LEFT
	SO_RIGHT
)

func (op ShiftOp) String() string {
	switch op {
	case SO_LEFT:
		return "left shift"
	case SO_RIGHT:
		return "right shift"
	default:
		return fmt.Sprintf("shift(%d)", int(op))
	}
}

func andOp[T common.Integer](left, right, result *T) {
	*result = *left & *right
}

func orOp[T common.Integer](left, right, result *T) {
	*result = *left | *right
}

func xorOp[T common.Integer](left, right, result *T) {
	*result = *left ^ *right
}

func getBitwiseFunction[T common.Integer](op BitwiseOp) (BinaryOp[T, T, T], error) {
	switch op {
	case BO_AND:
		return andOp[T], nil
	case BO_OR:
		return orOp[T], nil
	case BO_XOR:
		return xorOp[T], nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation, "%s on %s", op, common.PhyTypeOf[T]())
	}
}

func Bitwise[T common.Integer](
	op BitwiseOp,
	left, right *chunk.Container[T],
) (*chunk.Container[T], error) {
	if err := checkBinaryArgs(left, right); err != nil {
		return nil, err
	}
	fun, err := getBitwiseFunction[T](op)
	if err != nil {
		return nil, err
	}
	if err = binaryExec(left, right, left, fun); err != nil {
		return nil, err
	}
	return left, nil
}

func BitwiseScalar[T common.Integer](
	op BitwiseOp,
	left *chunk.Container[T],
	scalar T,
) (*chunk.Container[T], error) {
	if left == nil {
		return nil, common.NilArgument("left")
	}
	fun, err := getBitwiseFunction[T](op)
	if err != nil {
		return nil, err
	}
	if err = binaryExecScalar(left, scalar, left, fun); err != nil {
		return nil, err
	}
	return left, nil
}

func BitwiseScalarReversed[T common.Integer](
	op BitwiseOp,
	scalar T,
	right *chunk.Container[T],
) (*chunk.Container[T], error) {
	if right == nil {
		return nil, common.NilArgument("right")
	}
	fun, err := getBitwiseFunction[T](op)
	if err != nil {
		return nil, err
	}
	if err = binaryExecReversed(scalar, right, right, fun); err != nil {
		return nil, err
	}
	return right, nil
}

// ShiftAmount masks amount to the bit width of T, so shifting an int32 by 33
// shifts by 1 and a negative amount wraps to a large in-range one.
func ShiftAmount[T common.Integer](amount int) uint {
	var zero T
	bits := uint(unsafe.Sizeof(zero)) * 8
	return uint(amount) & (bits - 1)
}

// Shift shifts every element of c by amount and returns c. Right shifts
// are arithmetic for signed types.
func Shift[T common.Integer](
	op ShiftOp,
	c *chunk.Container[T],
	amount int,
) (*chunk.Container[T], error) {
	if c == nil {
		return nil, common.NilArgument("container")
	}
	n := ShiftAmount[T](amount)
	var fun UnaryOp[T, T]
	switch op {
	case SO_LEFT:
		fun = func(input *T, result *T) {
			*result = *input << n
		}
	case SO_RIGHT:
		fun = func(input *T, result *T) {
			*result = *input >> n
		}
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation, "%s on %s", op, common.PhyTypeOf[T]())
	}
	if err := unaryExec(c, c, fun); err != nil {
		return nil, err
	}
	return c, nil
}
