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
	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

// BuildLSP1 assembles the time-varying production cost model:
//
//	min  sum_t K z_t + h I_t + P_t y_t
//	s.t. I_t = I_{t-1} + y_t - R_t
//	     y_t <= M_t z_t
//	     y_t, I_t >= 0, z_t in {0,1}
func BuildLSP1(in LSP1Instance) (*Formulation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	mb := mipmodel.NewMipModelBuilder().SetName(LabelLSP1)
	prod := addProduct(mb, "", in.InitialInventory, in.Requirements)

	obj := mipmodel.NewLinearExpr()
	prod.addCosts(obj, in.HoldingCost, in.SetupCost, in.ProductionCosts)
	mb.Minimize(obj)

	return newFormulation(LabelLSP1, mb, []product{prod})
}

// SolveLSP1 returns a cost-minimal plan for in.
func SolveLSP1(in LSP1Instance, opts ...Option) (*Solution, error) {
	f, err := BuildLSP1(in)
	if err != nil {
		return nil, err
	}
	return f.Solve(opts...)
}
