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

package lsp_test

import (
	"fmt"

	"github.com/fom-or/lotsizing/lotsizing/lsp/go/lsp"
)

func ExampleSolveLSP1() {
	sol, err := lsp.SolveLSP1(lsp.LSP1Instance{
		HoldingCost:      2,
		SetupCost:        50,
		ProductionCosts:  []float64{1, 2, 2, 1.5, 1, 0.5, 1},
		InitialInventory: 25,
		Requirements:     []float64{20, 25, 14, 20, 15, 5.5, 2.5},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("costs=%.2f, setups %v\n", sol.Objective, sol.Setups)
	// Output: costs=330.00, setups [0 1 0 1 1 0 0]
}

func ExampleSolveLSP3() {
	sol, err := lsp.SolveLSP3(lsp.LSP3Instance{
		HoldingCost:      2,
		SetupCost:        50,
		InitialInventory: []float64{25, 25},
		Requirements: [][]float64{
			{20, 25, 14, 20, 15, 5.5, 2.5},
			{5, 10, 21, 20, 7.5, 11, 13},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("costs=%.2f, setups %v\n", sol.Objective, sol.Setups)
	// Output: costs=461.00, setups [0 1 2 1 0 2 0]
}
