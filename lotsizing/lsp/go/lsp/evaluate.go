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
	"math"
)

// FeasibilityTolerance is the largest stock shortfall Evaluate functions accept as zero.
const FeasibilityTolerance = 1e-6

// Evaluation is the cost of a production plan recomputed from the instance data.
type Evaluation struct {
	Cost float64
	// Setups has one entry per period: 0 when nothing is produced, otherwise the 1-based
	// product with positive production.
	Setups []int
	// Inventory[p][t] is the stock of product p+1 at the end of period t+1.
	Inventory [][]float64
}

// EvaluateLSP1 returns the cost of producing production[t] in each period. A period is
// charged a setup when its production exceeds FeasibilityTolerance.
func EvaluateLSP1(in LSP1Instance, production []float64) (*Evaluation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ev, err := evaluate(in.HoldingCost, in.SetupCost, []float64{in.InitialInventory},
		[][]float64{in.Requirements}, [][]float64{production})
	if err != nil {
		return nil, err
	}
	for t, y := range production {
		ev.Cost += in.ProductionCosts[t] * y
	}
	return ev, nil
}

// EvaluateLSP2 returns the cost of producing production[t] in each period. Producing in two
// consecutive periods is rejected with ErrInfeasible.
func EvaluateLSP2(in LSP2Instance, production []float64) (*Evaluation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ev, err := evaluate(in.HoldingCost, in.SetupCost, []float64{in.InitialInventory},
		[][]float64{in.Requirements}, [][]float64{production})
	if err != nil {
		return nil, err
	}
	for t := 1; t < len(ev.Setups); t++ {
		if ev.Setups[t-1] != 0 && ev.Setups[t] != 0 {
			return nil, fmt.Errorf("%s: production in periods %d and %d: %w", LabelLSP2, t, t+1, ErrInfeasible)
		}
	}
	return ev, nil
}

// EvaluateLSP3 returns the cost of producing production[p][t] of each product in each
// period. Producing both products in one period is rejected with ErrInfeasible.
func EvaluateLSP3(in LSP3Instance, production [][]float64) (*Evaluation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return evaluate(in.HoldingCost, in.SetupCost, in.InitialInventory, in.Requirements, production)
}

func evaluate(holding, setup float64, initInv []float64, req, production [][]float64) (*Evaluation, error) {
	if len(production) != len(req) {
		return nil, invalidf("production given for %d products, want %d", len(production), len(req))
	}
	periods := len(req[0])
	ev := &Evaluation{
		Setups:    make([]int, periods),
		Inventory: make([][]float64, len(req)),
	}
	for p := range req {
		if len(production[p]) != periods {
			return nil, invalidf("%sproduction has %d periods, want %d", planName(p, len(req)), len(production[p]), periods)
		}
		ev.Inventory[p] = make([]float64, periods)
		stock := initInv[p]
		for t := 0; t < periods; t++ {
			y := production[p][t]
			if !isFinite(y) || y < -FeasibilityTolerance {
				return nil, invalidf("%sproduction of period %d is %v", planName(p, len(req)), t+1, y)
			}
			if y > FeasibilityTolerance {
				if ev.Setups[t] != 0 {
					return nil, fmt.Errorf("products %d and %d both produced in period %d: %w", ev.Setups[t], p+1, t+1, ErrInfeasible)
				}
				ev.Setups[t] = p + 1
				ev.Cost += setup
			}
			stock += y - req[p][t]
			if stock < -FeasibilityTolerance {
				return nil, fmt.Errorf("%sstock of period %d is %v: %w", planName(p, len(req)), t+1, stock, ErrInfeasible)
			}
			stock = math.Max(stock, 0)
			ev.Inventory[p][t] = stock
			ev.Cost += holding * stock
		}
	}
	return ev, nil
}

func planName(p, products int) string {
	if products == 1 {
		return ""
	}
	return productName(p)
}
