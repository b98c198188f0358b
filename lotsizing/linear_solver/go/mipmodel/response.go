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
	"time"
)

// Status is the outcome of a solve.
type Status int32

const (
	// Unknown means the solver stopped, e.g. on its time limit, without a feasible solution.
	Unknown Status = iota
	// ModelInvalid means the model was rejected before the search started.
	ModelInvalid
	// Feasible means a solution was found but not proven optimal, e.g. the time limit was
	// reached with an incumbent.
	Feasible
	// Infeasible means the model was proven to have no solution.
	Infeasible
	// Unbounded means the objective can be improved without limit.
	Unbounded
	// Optimal means the solution was proven optimal within the configured gap.
	Optimal
)

var statusNames = map[Status]string{
	Unknown:      "UNKNOWN",
	ModelInvalid: "MODEL_INVALID",
	Feasible:     "FEASIBLE",
	Infeasible:   "INFEASIBLE",
	Unbounded:    "UNBOUNDED",
	Optimal:      "OPTIMAL",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// HasSolution returns true if the response carries variable values that satisfy the model.
func (s Status) HasSolution() bool {
	return s == Optimal || s == Feasible
}

// Response is the result of solving a Model.
type Response struct {
	Status         Status
	ObjectiveValue float64
	// BestObjectiveBound is the dual bound proven by the search. It equals ObjectiveValue on
	// an optimal MIP solve.
	BestObjectiveBound float64
	// RelativeGap is |ObjectiveValue - BestObjectiveBound| / |ObjectiveValue| as reported by
	// the solver.
	RelativeGap float64
	// Solution holds one value per model variable, in index order. It is empty when
	// Status.HasSolution() is false.
	Solution  []float64
	NodeCount int64
	WallTime  time.Duration
}

// SolutionValue returns the value of LinearArgument `la` in the response.
func SolutionValue(r *Response, la LinearArgument) float64 {
	return la.evaluateSolutionValue(r)
}

// SolutionBooleanValue returns the value of BoolVar `bv` in the response, rounded to the
// nearest integer since solvers return values within their integrality tolerance.
func SolutionBooleanValue(r *Response, bv BoolVar) bool {
	return math.Round(bv.evaluateSolutionValue(r)) != 0
}

// SolutionIntegerValue returns the value of `la` in the response rounded to the nearest integer.
func SolutionIntegerValue(r *Response, la LinearArgument) int64 {
	return int64(math.Round(la.evaluateSolutionValue(r)))
}
