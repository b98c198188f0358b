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

// Labels used when reporting the three variants.
const (
	LabelLSP1 = "ULSP_TVP"
	LabelLSP2 = "ULSP_NCS"
	LabelLSP3 = "UMLSP"
)

// NumProducts is the number of products sharing the machine in LSP3.
const NumProducts = 2

// LSP1Instance is the single-product problem with period-dependent production costs.
type LSP1Instance struct {
	HoldingCost      float64   `yaml:"holding_cost"`
	SetupCost        float64   `yaml:"setup_cost"`
	ProductionCosts  []float64 `yaml:"production_costs"`
	InitialInventory float64   `yaml:"initial_inventory"`
	Requirements     []float64 `yaml:"requirements"`
}

// LSP2Instance is the single-product problem forbidding setups in consecutive periods.
type LSP2Instance struct {
	HoldingCost      float64   `yaml:"holding_cost"`
	SetupCost        float64   `yaml:"setup_cost"`
	InitialInventory float64   `yaml:"initial_inventory"`
	Requirements     []float64 `yaml:"requirements"`
}

// LSP3Instance is the two-product problem on a shared machine. Holding and setup costs are
// shared by both products. InitialInventory and Requirements are indexed by product first:
// Requirements[p][t] is the demand of product p+1 in period t+1.
type LSP3Instance struct {
	HoldingCost      float64     `yaml:"holding_cost"`
	SetupCost        float64     `yaml:"setup_cost"`
	InitialInventory []float64   `yaml:"initial_inventory"`
	Requirements     [][]float64 `yaml:"requirements"`
}

// Periods returns the planning horizon T.
func (in LSP1Instance) Periods() int { return len(in.Requirements) }

// Periods returns the planning horizon T.
func (in LSP2Instance) Periods() int { return len(in.Requirements) }

// Periods returns the planning horizon T.
func (in LSP3Instance) Periods() int {
	if len(in.Requirements) == 0 {
		return 0
	}
	return len(in.Requirements[0])
}

// Validate returns an error wrapping ErrInvalidInstance if the data cannot be modelled.
func (in LSP1Instance) Validate() error {
	if err := validateCosts(in.HoldingCost, in.SetupCost); err != nil {
		return err
	}
	if err := validateProduct("", in.InitialInventory, in.Requirements); err != nil {
		return err
	}
	if len(in.ProductionCosts) != len(in.Requirements) {
		return invalidf("%d production costs for %d periods", len(in.ProductionCosts), len(in.Requirements))
	}
	periods := len(in.ProductionCosts)
	for t, p := range in.ProductionCosts {
		if !isFinite(p) {
			return invalidf("production cost of period %d is %v", t+1, p)
		}
		// A unit made now and held to the horizon costs p plus h for every remaining period.
		// If that is negative, producing without limit always pays off.
		if held := p + in.HoldingCost*float64(periods-t); held < 0 {
			return invalidf("production cost of period %d is %v: a unit held to the horizon earns %v, the plan is unbounded", t+1, p, -held)
		}
	}
	return nil
}

// Validate returns an error wrapping ErrInvalidInstance if the data cannot be modelled.
func (in LSP2Instance) Validate() error {
	if err := validateCosts(in.HoldingCost, in.SetupCost); err != nil {
		return err
	}
	return validateProduct("", in.InitialInventory, in.Requirements)
}

// Validate returns an error wrapping ErrInvalidInstance if the data cannot be modelled.
func (in LSP3Instance) Validate() error {
	if err := validateCosts(in.HoldingCost, in.SetupCost); err != nil {
		return err
	}
	if len(in.Requirements) != NumProducts {
		return invalidf("requirements given for %d products, want %d", len(in.Requirements), NumProducts)
	}
	if len(in.InitialInventory) != NumProducts {
		return invalidf("initial inventory given for %d products, want %d", len(in.InitialInventory), NumProducts)
	}
	periods := in.Periods()
	for p := range in.Requirements {
		if len(in.Requirements[p]) != periods {
			return invalidf("product %d has %d periods, product 1 has %d", p+1, len(in.Requirements[p]), periods)
		}
		if err := validateProduct(productName(p), in.InitialInventory[p], in.Requirements[p]); err != nil {
			return err
		}
	}
	return nil
}

func validateCosts(holding, setup float64) error {
	if !isFinite(holding) || holding < 0 {
		return invalidf("holding cost is %v, want a finite value >= 0", holding)
	}
	if !isFinite(setup) || setup < 0 {
		return invalidf("setup cost is %v, want a finite value >= 0", setup)
	}
	return nil
}

func validateProduct(name string, initInv float64, req []float64) error {
	if len(req) == 0 {
		return invalidf("%srequirements are empty", name)
	}
	if !isFinite(initInv) || initInv < 0 {
		return invalidf("%sinitial inventory is %v, want a finite value >= 0", name, initInv)
	}
	for t, r := range req {
		if !isFinite(r) || r < 0 {
			return invalidf("%srequirement of period %d is %v, want a finite value >= 0", name, t+1, r)
		}
	}
	return nil
}

func productName(p int) string {
	return fmt.Sprintf("product %d ", p+1)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
