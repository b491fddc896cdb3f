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

package common

import (
	"fmt"
	"reflect"
	"strings"
)

type PhyType int

const (
	NA      PhyType = 0
	BOOL    PhyType = 1
	UINT8   PhyType = 2
	INT8    PhyType = 3
	UINT16  PhyType = 4
	INT16   PhyType = 5
	UINT32  PhyType = 6
	INT32   PhyType = 7
	UINT64  PhyType = 8
	INT64   PhyType = 9
	FLOAT   PhyType = 11
	DOUBLE  PhyType = 12
	VARCHAR PhyType = 200

	INVALID PhyType = 255
)

var pTypeToStr = map[PhyType]string{
	NA:      "NA",
	BOOL:    "BOOL",
	UINT8:   "UINT8",
	INT8:    "INT8",
	UINT16:  "UINT16",
	INT16:   "INT16",
	UINT32:  "UINT32",
	INT32:   "INT32",
	UINT64:  "UINT64",
	INT64:   "INT64",
	FLOAT:   "FLOAT",
	DOUBLE:  "DOUBLE",
	VARCHAR: "VARCHAR",
	INVALID: "INVALID",
}

func (pt PhyType) String() string {
	if s, has := pTypeToStr[pt]; has {
		return s
	}
	panic(fmt.Sprintf("usp %d", pt))
}

// ParsePhyType accepts the names printed by String, case insensitive.
func ParsePhyType(s string) (PhyType, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for pt, name := range pTypeToStr {
		if name == up && pt != NA && pt != INVALID {
			return pt, nil
		}
	}
	return INVALID, fmt.Errorf("unknown physical type %q", s)
}

func (pt PhyType) Size() int {
	switch pt {
	case BOOL, UINT8, INT8:
		return 1
	case UINT16, INT16:
		return 2
	case UINT32, INT32, FLOAT:
		return 4
	case UINT64, INT64, DOUBLE:
		return 8
	case VARCHAR:
		return 0
	default:
		panic("usp")
	}
}

func (pt PhyType) IsInteger() bool {
	return pt >= UINT8 && pt <= INT64
}

func (pt PhyType) IsSigned() bool {
	switch pt {
	case INT8, INT16, INT32, INT64, FLOAT, DOUBLE:
		return true
	default:
		return false
	}
}

func (pt PhyType) IsFloat() bool {
	return pt == FLOAT || pt == DOUBLE
}

func (pt PhyType) IsNumeric() bool {
	return pt.IsInteger() || pt.IsFloat()
}

func (pt PhyType) IsVarchar() bool {
	return pt == VARCHAR
}

// PhyTypeOf maps a fixed-size element type (named types included) onto
// its physical type.
func PhyTypeOf[T Element]() PhyType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Bool:
		return BOOL
	case reflect.Uint8:
		return UINT8
	case reflect.Int8:
		return INT8
	case reflect.Uint16:
		return UINT16
	case reflect.Int16:
		return INT16
	case reflect.Uint32:
		return UINT32
	case reflect.Int32:
		return INT32
	case reflect.Uint64:
		return UINT64
	case reflect.Int64:
		return INT64
	case reflect.Float32:
		return FLOAT
	case reflect.Float64:
		return DOUBLE
	default:
		//int, uint, uintptr have platform width
		switch reflect.TypeFor[T]().Size() {
		case 4:
			if IsSigned[T]() {
				return INT32
			}
			return UINT32
		default:
			if IsSigned[T]() {
				return INT64
			}
			return UINT64
		}
	}
}

func IsSigned[T Element]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func IsFloat[T Element]() bool {
	return PhyTypeOf[T]().IsFloat()
}
