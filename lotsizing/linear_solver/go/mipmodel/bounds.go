// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mipmodel

import (
	"fmt"
	"math"
)

// Bounds stores the closed interval `[Lower,Upper]` of a variable or of a linear constraint.
// Either side may be infinite. If `Lower` is greater than `Upper`, the bounds are considered
// empty.
type Bounds struct {
	Lower float64
	Upper float64
}

// NewBounds creates the bounds `[lb,ub]`.
func NewBounds(lb, ub float64) Bounds {
	return Bounds{Lower: lb, Upper: ub}
}

// NewFixedBounds creates the singleton bounds `[val,val]`.
func NewFixedBounds(val float64) Bounds {
	return Bounds{Lower: val, Upper: val}
}

// AllReals returns `(-inf,+inf)`.
func AllReals() Bounds {
	return Bounds{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// AtMost returns `(-inf,ub]`.
func AtMost(ub float64) Bounds {
	return Bounds{Lower: math.Inf(-1), Upper: ub}
}

// AtLeast returns `[lb,+inf)`.
func AtLeast(lb float64) Bounds {
	return Bounds{Lower: lb, Upper: math.Inf(1)}
}

// Offset adds `delta` to both `Lower` and `Upper`. Infinite sides are left unchanged since they
// represent an unbounded side.
func (b Bounds) Offset(delta float64) Bounds {
	return Bounds{Lower: b.Lower + delta, Upper: b.Upper + delta}
}

// IsEmpty returns true if no value satisfies the bounds. NaN bounds are empty.
func (b Bounds) IsEmpty() bool {
	return math.IsNaN(b.Lower) || math.IsNaN(b.Upper) || b.Lower > b.Upper
}

// IsFixed returns true if the bounds contain exactly one value.
func (b Bounds) IsFixed() bool {
	return b.Lower == b.Upper
}

// Contains returns true if `v` lies within the bounds widened by `tol` on both sides.
func (b Bounds) Contains(v, tol float64) bool {
	if b.IsEmpty() || math.IsNaN(v) {
		return false
	}
	return v >= b.Lower-tol && v <= b.Upper+tol
}

// String returns the bounds in interval notation, e.g. `[0,+inf)`.
func (b Bounds) String() string {
	left, right := "[", "]"
	lo, hi := fmt.Sprint(b.Lower), fmt.Sprint(b.Upper)
	if math.IsInf(b.Lower, -1) {
		left, lo = "(", "-inf"
	}
	if math.IsInf(b.Upper, 1) {
		right, hi = ")", "+inf"
	}
	return left + lo + "," + hi + right
}
