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
	"fmt"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

// BuildLSP3 assembles the two-product model on a machine that can be set up for at most one
// product per period:
//
//	min  sum_p sum_t K z_tp + h I_tp
//	s.t. I_tp = I_{t-1,p} + y_tp - R_tp
//	     y_tp <= M_tp z_tp
//	     z_t1 + z_t2 <= 1
//	     y_tp, I_tp >= 0, z_tp in {0,1}
func BuildLSP3(in LSP3Instance) (*Formulation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	mb := mipmodel.NewMipModelBuilder().SetName(LabelLSP3)
	products := make([]product, NumProducts)
	obj := mipmodel.NewLinearExpr()
	for p := range products {
		products[p] = addProduct(mb, fmt.Sprintf("_p%d", p+1), in.InitialInventory[p], in.Requirements[p])
		products[p].addCosts(obj, in.HoldingCost, in.SetupCost, nil)
	}
	for t := 0; t < in.Periods(); t++ {
		setups := make([]mipmodel.BoolVar, NumProducts)
		for p := range products {
			setups[p] = products[p].setup[t]
		}
		mb.AddAtMostOne(setups...).WithName(fmt.Sprintf("one_product_%d", t+1))
	}
	mb.Minimize(obj)

	return newFormulation(LabelLSP3, mb, products)
}

// SolveLSP3 returns a cost-minimal plan for in. Solution.Setups holds 1 or 2 in the periods
// where that product is set up.
func SolveLSP3(in LSP3Instance, opts ...Option) (*Solution, error) {
	f, err := BuildLSP3(in)
	if err != nil {
		return nil, err
	}
	return f.Solve(opts...)
}
