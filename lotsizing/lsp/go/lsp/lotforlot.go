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
	"math"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

// LotForLot1 is the plan that sets up in every period with a net requirement and produces
// exactly that requirement.
func LotForLot1(in LSP1Instance) (*Solution, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	production := make([]float64, in.Periods())
	stock := in.InitialInventory
	for t, r := range in.Requirements {
		production[t] = math.Max(0, r-stock)
		stock += production[t] - r
	}
	ev, err := EvaluateLSP1(in, production)
	if err != nil {
		return nil, err
	}
	return baseline(ev, [][]float64{production}), nil
}

// LotForLot2 is the plan that may set up in odd periods only (1, 3, ...) and then produces
// the net requirement of that period and the next one. It never sets up twice in a row.
func LotForLot2(in LSP2Instance) (*Solution, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	production := make([]float64, in.Periods())
	stock := in.InitialInventory
	for t, r := range in.Requirements {
		if t%2 == 0 {
			production[t] = math.Max(0, coverage(in.Requirements, t)-stock)
		}
		stock += production[t] - r
	}
	ev, err := EvaluateLSP2(in, production)
	if err != nil {
		return nil, err
	}
	return baseline(ev, [][]float64{production}), nil
}

// LotForLot3 is the plan that offers the machine to the products in turn, starting with
// product 1. The product whose turn it is produces its net requirement of that period and
// the next one. Depending on the initial inventories the plan can run short, in which case
// the error wraps ErrInfeasible.
func LotForLot3(in LSP3Instance) (*Solution, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	production := make([][]float64, NumProducts)
	stock := make([]float64, NumProducts)
	for p := range production {
		production[p] = make([]float64, in.Periods())
		stock[p] = in.InitialInventory[p]
	}
	for t := 0; t < in.Periods(); t++ {
		p := t % NumProducts
		production[p][t] = math.Max(0, coverage(in.Requirements[p], t)-stock[p])
		for q := range stock {
			stock[q] += production[q][t] - in.Requirements[q][t]
		}
	}
	ev, err := EvaluateLSP3(in, production)
	if err != nil {
		return nil, err
	}
	return baseline(ev, production), nil
}

// coverage is the demand of period t and, if there is one, period t+1.
func coverage(req []float64, t int) float64 {
	if t+1 < len(req) {
		return req[t] + req[t+1]
	}
	return req[t]
}

func baseline(ev *Evaluation, production [][]float64) *Solution {
	return &Solution{
		Objective:  ev.Cost,
		Setups:     ev.Setups,
		Production: production,
		Inventory:  ev.Inventory,
		Status:     mipmodel.Feasible,
	}
}
