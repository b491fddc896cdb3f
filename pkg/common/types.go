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
	"golang.org/x/exp/constraints"
)

type Integer interface {
	constraints.Integer
}

type Float interface {
	constraints.Float
}

// Number is the element set the arithmetic and comparison kernels run on.
type Number interface {
	Integer | Float
}

// Element is every fixed-size type a chunk can hold.
type Element interface {
	Number | ~bool
}
