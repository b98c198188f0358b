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

package lsp

import (
	"errors"
	"fmt"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

var (
	// ErrInvalidInstance is returned, wrapped, when the input data is rejected before a model is
	// built.
	ErrInvalidInstance = errors.New("invalid lot-sizing instance")
	// ErrInfeasible is returned, wrapped, when the constraints admit no production plan.
	ErrInfeasible = errors.New("no feasible production plan")
	// ErrUnbounded is returned, wrapped, when the objective can be lowered without limit.
	ErrUnbounded = errors.New("production plan cost is unbounded")
	// ErrNoSolution is returned, wrapped, when the time limit elapsed before any plan was found.
	ErrNoSolution = errors.New("no solution found within the time limit")
	// ErrModelInvalid is returned, wrapped, when the solver rejected the assembled model.
	ErrModelInvalid = errors.New("solver rejected the model")
)

// SolveError reports a solve that ended without a usable solution.
type SolveError struct {
	Model  string
	Status mipmodel.Status
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%s: solver returned %v: %v", e.Model, e.Status, e.Unwrap())
}

// Unwrap maps the solver status to one of the package sentinel errors.
func (e *SolveError) Unwrap() error {
	switch e.Status {
	case mipmodel.Infeasible:
		return ErrInfeasible
	case mipmodel.Unbounded:
		return ErrUnbounded
	case mipmodel.ModelInvalid:
		return ErrModelInvalid
	default:
		return ErrNoSolution
	}
}

func invalidf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInstance, fmt.Sprintf(format, a...))
}
