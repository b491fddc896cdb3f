package column

import (
	"github.com/cockroachdb/errors"

	"github.com/daviszhen/colstore/pkg/chunk"
	"github.com/daviszhen/colstore/pkg/common"
	"github.com/daviszhen/colstore/pkg/compute"
)

// The bitwise kernels are only instantiated for integer types, so numeric
// columns reach them through a switch on the concrete container type.

type integerKernel interface {
	bitwise(op compute.BitwiseOp, left, right any) error
	bitwiseScalar(op compute.BitwiseOp, left any, val any) error
	shift(op compute.ShiftOp, c any, amount int) error
}

type integerOps[I common.Integer] struct{}

func (integerOps[I]) bitwise(op compute.BitwiseOp, left, right any) error {
	_, err := compute.Bitwise(op, left.(*chunk.Container[I]), right.(*chunk.Container[I]))
	return err
}

func (integerOps[I]) bitwiseScalar(op compute.BitwiseOp, left any, val any) error {
	_, err := compute.BitwiseScalar(op, left.(*chunk.Container[I]), val.(I))
	return err
}

func (integerOps[I]) shift(op compute.ShiftOp, c any, amount int) error {
	_, err := compute.Shift(op, c.(*chunk.Container[I]), amount)
	return err
}

func getIntegerKernel[T common.Number]() (integerKernel, error) {
	var zero T
	switch any(zero).(type) {
	case int8:
		return integerOps[int8]{}, nil
	case int16:
		return integerOps[int16]{}, nil
	case int32:
		return integerOps[int32]{}, nil
	case int64:
		return integerOps[int64]{}, nil
	case int:
		return integerOps[int]{}, nil
	case uint8:
		return integerOps[uint8]{}, nil
	case uint16:
		return integerOps[uint16]{}, nil
	case uint32:
		return integerOps[uint32]{}, nil
	case uint64:
		return integerOps[uint64]{}, nil
	case uint:
		return integerOps[uint]{}, nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation,
			"bitwise operation on %s column", common.PhyTypeOf[T]())
	}
}

func (col *PrimitiveColumn[T]) Bitwise(op compute.BitwiseOp, other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	kern, err := getIntegerKernel[T]()
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, common.NilArgument("other")
	}
	if col.Len() != other.Len() {
		return nil, common.LengthMismatch(col.Len(), other.Len())
	}
	ret := col.target(inPlace)
	if err = kern.bitwise(op, ret.data, other.data); err != nil {
		return nil, err
	}
	return ret, nil
}

func (col *PrimitiveColumn[T]) BitwiseScalar(op compute.BitwiseOp, val T, inPlace bool) (*PrimitiveColumn[T], error) {
	kern, err := getIntegerKernel[T]()
	if err != nil {
		return nil, err
	}
	ret := col.target(inPlace)
	if err = kern.bitwiseScalar(op, ret.data, val); err != nil {
		return nil, err
	}
	return ret, nil
}

func (col *PrimitiveColumn[T]) And(other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	return col.Bitwise(compute.BO_AND, other, inPlace)
}

func (col *PrimitiveColumn[T]) Or(other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	return col.Bitwise(compute.BO_OR, other, inPlace)
}

func (col *PrimitiveColumn[T]) Xor(other *PrimitiveColumn[T], inPlace bool) (*PrimitiveColumn[T], error) {
	return col.Bitwise(compute.BO_XOR, other, inPlace)
}

func (col *PrimitiveColumn[T]) AndScalar(val T, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.BitwiseScalar(compute.BO_AND, val, inPlace)
}

func (col *PrimitiveColumn[T]) OrScalar(val T, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.BitwiseScalar(compute.BO_OR, val, inPlace)
}

func (col *PrimitiveColumn[T]) XorScalar(val T, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.BitwiseScalar(compute.BO_XOR, val, inPlace)
}

func (col *PrimitiveColumn[T]) shift(op compute.ShiftOp, amount int, inPlace bool) (*PrimitiveColumn[T], error) {
	kern, err := getIntegerKernel[T]()
	if err != nil {
		return nil, err
	}
	ret := col.target(inPlace)
	if err = kern.shift(op, ret.data, amount); err != nil {
		return nil, err
	}
	return ret, nil
}

// LeftShift masks amount to the bit width of the element type.
func (col *PrimitiveColumn[T]) LeftShift(amount int, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.shift(compute.SO_LEFT, amount, inPlace)
}

func (col *PrimitiveColumn[T]) RightShift(amount int, inPlace bool) (*PrimitiveColumn[T], error) {
	return col.shift(compute.SO_RIGHT, amount, inPlace)
}
