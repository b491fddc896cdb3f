package column

import (
	"math"
	"strconv"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/govalues/decimal"

	"github.com/daviszhen/colstore/pkg/common"
)

// Value is one boxed cell. Only the field matching Typ is meaningful.
type Value struct {
	Typ common.PhyType
	//value
	Bool bool
	I64  int64
	U64  uint64
	F64  float64
	Str  string
}

// FloatScale is the number of fraction digits kept when a float is printed.
var FloatScale = 6

func (val Value) String() string {
	switch {
	case val.Typ == common.BOOL:
		return strconv.FormatBool(val.Bool)
	case val.Typ.IsInteger() && val.Typ.IsSigned():
		return strconv.FormatInt(val.I64, 10)
	case val.Typ.IsInteger():
		return strconv.FormatUint(val.U64, 10)
	case val.Typ.IsFloat():
		return formatFloat(val.F64, FloatScale)
	case val.Typ == common.VARCHAR:
		return val.Str
	default:
		return "NA"
	}
}

// formatFloat rounds f to scale fraction digits and drops trailing zeros.
// Values out of decimal range keep the shortest float formatting.
func formatFloat(f float64, scale int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	d, err := decimal.NewFromFloat64(f)
	if err != nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return d.Round(scale).Trim(0).String()
}

func BoolValue(b bool) *Value {
	return &Value{
		Typ:  common.BOOL,
		Bool: b,
	}
}

func StringValue(s string) *Value {
	return &Value{
		Typ: common.VARCHAR,
		Str: s,
	}
}

func NumberValue[T common.Number](v T) *Value {
	ret := &Value{
		Typ: common.PhyTypeOf[T](),
	}
	switch {
	case common.IsFloat[T]():
		ret.F64 = float64(v)
	case common.IsSigned[T]():
		ret.I64 = int64(v)
	default:
		ret.U64 = uint64(v)
	}
	return ret
}

// NumberAs converts a numeric value to T with Go conversion semantics.
func NumberAs[T common.Number](val *Value) (T, error) {
	if val == nil {
		return 0, common.NilArgument("value")
	}
	switch {
	case val.Typ.IsFloat():
		return T(val.F64), nil
	case val.Typ.IsInteger() && val.Typ.IsSigned():
		return T(val.I64), nil
	case val.Typ.IsInteger():
		return T(val.U64), nil
	default:
		return 0, errors.Wrapf(common.ErrTypeMismatch, "%s value into %s column", val.Typ, common.PhyTypeOf[T]())
	}
}

func BoolAs[T ~bool](val *Value) (T, error) {
	if val == nil {
		return false, common.NilArgument("value")
	}
	if val.Typ != common.BOOL {
		return false, errors.Wrapf(common.ErrTypeMismatch, "%s value into bool column", val.Typ)
	}
	return *(*T)(unsafe.Pointer(&val.Bool)), nil
}

func StringAs(val *Value) (string, error) {
	if val == nil {
		return "", common.NilArgument("value")
	}
	if val.Typ != common.VARCHAR {
		return val.String(), nil
	}
	return val.Str, nil
}

func parseNumber[T common.Number](s string) (T, error) {
	var (
		ret T
		err error
	)
	bits := common.PhyTypeOf[T]().Size() * 8
	switch {
	case common.IsFloat[T]():
		var f float64
		f, err = strconv.ParseFloat(s, bits)
		ret = T(f)
	case common.IsSigned[T]():
		var i int64
		i, err = strconv.ParseInt(s, 10, bits)
		ret = T(i)
	default:
		var u uint64
		u, err = strconv.ParseUint(s, 10, bits)
		ret = T(u)
	}
	if err != nil {
		return 0, errors.Wrapf(common.ErrParse, "%q as %s: %v", s, common.PhyTypeOf[T](), err)
	}
	return ret, nil
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Wrapf(common.ErrParse, "%q as bool: %v", s, err)
	}
	return b, nil
}

// ParseValue parses s as a value of physical type typ.
func ParseValue(typ common.PhyType, s string) (*Value, error) {
	switch typ {
	case common.BOOL:
		b, err := parseBool(s)
		if err != nil {
			return nil, err
		}
		return BoolValue(b), nil
	case common.UINT8:
		return parseNumberValue[uint8](s)
	case common.INT8:
		return parseNumberValue[int8](s)
	case common.UINT16:
		return parseNumberValue[uint16](s)
	case common.INT16:
		return parseNumberValue[int16](s)
	case common.UINT32:
		return parseNumberValue[uint32](s)
	case common.INT32:
		return parseNumberValue[int32](s)
	case common.UINT64:
		return parseNumberValue[uint64](s)
	case common.INT64:
		return parseNumberValue[int64](s)
	case common.FLOAT:
		return parseNumberValue[float32](s)
	case common.DOUBLE:
		return parseNumberValue[float64](s)
	case common.VARCHAR:
		return StringValue(s), nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedOperation, "parse %s", typ)
	}
}

func parseNumberValue[T common.Number](s string) (*Value, error) {
	v, err := parseNumber[T](s)
	if err != nil {
		return nil, err
	}
	return NumberValue(v), nil
}

// ZeroValue is the value stored for a missing cell of type typ.
func ZeroValue(typ common.PhyType) *Value {
	return &Value{Typ: typ}
}
