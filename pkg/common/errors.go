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
	"github.com/cockroachdb/errors"
)

// Usage errors. They are never retried and are wrapped with details at the
// call site, so test them with errors.Is.
var (
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrBufferFull           = errors.New("buffer full")
	ErrLengthMismatch       = errors.New("length mismatch")
	ErrLayoutMismatch       = errors.New("chunk layout mismatch")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrNilArgument          = errors.New("nil argument")
	ErrEmptyContainer       = errors.New("empty container")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrDuplicateColumn      = errors.New("duplicate column")
	ErrRowCountMismatch     = errors.New("row count mismatch")
	ErrColumnNotFound       = errors.New("column not found")
	ErrParse                = errors.New("parse failed")
)

func IndexOutOfRange(idx, length int64) error {
	return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", idx, length)
}

func LengthMismatch(left, right int64) error {
	return errors.Wrapf(ErrLengthMismatch, "left length %d, right length %d", left, right)
}

func NilArgument(name string) error {
	return errors.Wrapf(ErrNilArgument, "%s", name)
}
