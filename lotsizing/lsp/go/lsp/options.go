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
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/linearsolver"
	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

// DefaultRelativeGap is tight enough that the reported plan is optimal for instances whose
// costs differ by more than a millionth of the objective.
const DefaultRelativeGap = 1e-6

type options struct {
	solver      linearsolver.Solver
	timeLimit   time.Duration
	relativeGap float64
	output      bool
}

// Option configures a solve.
type Option func(*options)

// WithTimeLimit sets the wall-clock budget of the solver. The default is
// linearsolver.DefaultTimeLimit.
func WithTimeLimit(d time.Duration) Option {
	return func(o *options) {
		o.timeLimit = d
	}
}

// WithSolver replaces the MIP solver, which defaults to linearsolver.HighsSolver.
func WithSolver(s linearsolver.Solver) Option {
	return func(o *options) {
		o.solver = s
	}
}

// WithSolverOutput enables or disables the solver's own log.
func WithSolverOutput(enabled bool) Option {
	return func(o *options) {
		o.output = enabled
	}
}

// WithRelativeGap sets the relative optimality gap at which the search stops.
func WithRelativeGap(gap float64) Option {
	return func(o *options) {
		o.relativeGap = gap
	}
}

func newOptions(opts []Option) options {
	o := options{
		solver:      linearsolver.HighsSolver{},
		timeLimit:   linearsolver.DefaultTimeLimit,
		relativeGap: DefaultRelativeGap,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) parameters() *mipmodel.Parameters {
	p := &mipmodel.Parameters{
		RelativeGap:       proto.Float64(o.relativeGap),
		LogSearchProgress: proto.Bool(o.output),
	}
	if o.timeLimit > 0 {
		p.MaxTimeInSeconds = proto.Float64(o.timeLimit.Seconds())
	}
	return p
}
