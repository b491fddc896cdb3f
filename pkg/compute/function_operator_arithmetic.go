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
	"math"

	"github.com/cockroachdb/errors"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
)

type ArithOp int

const (
	AO_INVALID ArithOp = iota
	AO_ADD
	AO_SUB
	AO_MUL
	AO_DIV
	AO_MOD
)

func (op ArithOp) String() string {
	switch op {
	case AO_ADD:
		return "add"
	case AO_SUB:
		return "subtract"
	case AO_MUL:
		return "multiply"
	case AO_DIV:
		return "divide"
	case AO_MOD:
		return "modulo"
	default:
		return fmt.Sprintf("arith(%d)", int(op))
	}
}

func addOp[T common.Number](left, right, result *T) {
	*result = *left + *right
}

func subOp[T common.Number](left, right, result *T) {
	*result = *left - *right
}

func mulOp[T common.Number](left, right, result *T) {
	*result = *left * *right
}

func divOp[T common.Number](left, right, result *T) {
	*result = *left / *right
}

func modFloat[T common.Number](left, right, result *T) {
	*result = T(math.Mod(float64(*left), float64(*right)))
}

func modSigned[T common.Number](left, right, result *T) {
	*result = T(int64(*left) % int64(*right))
}

func modUnsigned[T common.Number](left, right, result *T) {
	*result = T(uint64(*left) % uint64(*right))
}

func getArithFunction[T common.Number](op ArithOp) (BinaryOp[T, T, T], error) {
	switch op {
	case AO_ADD:
		return addOp[T], nil
	case AO_SUB:
		return subOp[T], nil
	case AO_MUL:
		return mulOp[T], nil
	case AO_DIV:
		return divOp[T], nil
	case AO_MOD:
		if common.IsFloat[T]() {
			return modFloat[T], nil
		} else if common.IsSigned[T]() {
			return modSigned[T], nil
		}
		return modUnsigned[T], nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation, "%s on %s", op, common.PhyTypeOf[T]())
	}
}

func divides(op ArithOp) bool {
	return op == AO_DIV || op == AO_MOD
}

// checkDivisor reports ErrDivisionByZero for integer divisors holding a zero.
// Floating types are never rejected.
func checkDivisor[T common.Number](op ArithOp, divisor *chunk.Container[T]) error {
	if !divides(op) || common.IsFloat[T]() {
		return nil
	}
	for i := 0; i < divisor.ChunkCount(); i++ {
		for j, v := range divisor.Chunk(i).Values() {
			if v == 0 {
				return errors.Wrapf(common.ErrDivisionByZero, "%s: zero divisor in chunk %d at offset %d", op, i, j)
			}
		}
	}
	return nil
}

func checkScalarDivisor[T common.Number](op ArithOp, divisor T) error {
	if divides(op) && !common.IsFloat[T]() && divisor == 0 {
		return errors.Wrapf(common.ErrDivisionByZero, "%s by scalar zero", op)
	}
	return nil
}

// Arith computes left = left op right elementwise and returns left.
// Nothing is written when an error is returned.
func Arith[T common.Number](
	op ArithOp,
	left, right *chunk.Container[T],
) (*chunk.Container[T], error) {
	if err := checkBinaryArgs(left, right); err != nil {
		return nil, err
	}
	fun, err := getArithFunction[T](op)
	if err != nil {
		return nil, err
	}
	if err = checkDivisor(op, right); err != nil {
		return nil, err
	}
	if err = binaryExec(left, right, left, fun); err != nil {
		return nil, err
	}
	return left, nil
}

// ArithScalar computes left = left op scalar and returns left.
func ArithScalar[T common.Number](
	op ArithOp,
	left *chunk.Container[T],
	scalar T,
) (*chunk.Container[T], error) {
	if left == nil {
		return nil, common.NilArgument("left")
	}
	fun, err := getArithFunction[T](op)
	if err != nil {
		return nil, err
	}
	if err = checkScalarDivisor(op, scalar); err != nil {
		return nil, err
	}
	if err = binaryExecScalar(left, scalar, left, fun); err != nil {
		return nil, err
	}
	return left, nil
}

// ArithScalarReversed computes right = scalar op right and returns right.
func ArithScalarReversed[T common.Number](
	op ArithOp,
	scalar T,
	right *chunk.Container[T],
) (*chunk.Container[T], error) {
	if right == nil {
		return nil, common.NilArgument("right")
	}
	fun, err := getArithFunction[T](op)
	if err != nil {
		return nil, err
	}
	if err = checkDivisor(op, right); err != nil {
		return nil, err
	}
	if err = binaryExecReversed(scalar, right, right, fun); err != nil {
		return nil, err
	}
	return right, nil
}
