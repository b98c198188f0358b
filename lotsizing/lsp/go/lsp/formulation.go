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
	"time"

	log "github.com/golang/glog"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

// Values whose magnitude is below this are reported as exactly zero.
const zeroTolerance = 1e-9

// Solution is a production plan returned by one of the solve functions.
type Solution struct {
	// Objective is the total setup, holding and production cost.
	Objective float64
	// Setups has one entry per period: 0 when idle, otherwise the 1-based product produced.
	Setups []int
	// Production[p][t] is the quantity of product p+1 produced in period t+1.
	Production [][]float64
	// Inventory[p][t] is the stock of product p+1 at the end of period t+1.
	Inventory [][]float64
	// Status is OPTIMAL, or FEASIBLE when the time limit stopped the search with a plan.
	Status      mipmodel.Status
	RelativeGap float64
	WallTime    time.Duration
}

// product holds the decision variables of one product.
type product struct {
	produce   []mipmodel.Var
	setup     []mipmodel.BoolVar
	inventory []mipmodel.Var
}

// addProduct adds the variables of one product together with its inventory balance rows
// I_t - I_{t-1} - y_t = -R_t (I_0 = initInv) and its linking rows y_t - M_t z_t <= 0.
func addProduct(mb *mipmodel.Builder, tag string, initInv float64, req []float64) product {
	periods := len(req)
	bigM := RemainingDemand(req)
	p := product{
		produce:   make([]mipmodel.Var, periods),
		setup:     make([]mipmodel.BoolVar, periods),
		inventory: make([]mipmodel.Var, periods),
	}
	for t := 0; t < periods; t++ {
		p.produce[t] = mb.NewVar(0, math.Inf(1)).WithName(fmt.Sprintf("y%s_%d", tag, t+1))
		p.setup[t] = mb.NewBoolVar().WithName(fmt.Sprintf("z%s_%d", tag, t+1))
		p.inventory[t] = mb.NewVar(0, math.Inf(1)).WithName(fmt.Sprintf("I%s_%d", tag, t+1))
	}
	for t := 0; t < periods; t++ {
		inflow := mipmodel.NewLinearExpr().Add(p.produce[t]).AddConstant(-req[t])
		if t == 0 {
			inflow.AddConstant(initInv)
		} else {
			inflow.Add(p.inventory[t-1])
		}
		mb.AddEquality(p.inventory[t], inflow).WithName(fmt.Sprintf("balance%s_%d", tag, t+1))
		mb.AddLessOrEqual(p.produce[t], mipmodel.NewLinearExpr().AddTerm(p.setup[t], bigM[t])).
			WithName(fmt.Sprintf("link%s_%d", tag, t+1))
	}
	return p
}

// addCosts adds K z_t + h I_t (+ unit_t y_t when unit is not nil) for every period to obj.
func (p product) addCosts(obj *mipmodel.LinearExpr, holding, setup float64, unit []float64) {
	for t := range p.setup {
		obj.AddTerm(p.setup[t], setup).AddTerm(p.inventory[t], holding)
		if unit != nil {
			obj.AddTerm(p.produce[t], unit[t])
		}
	}
}

// Formulation is an assembled lot-sizing model ready to be solved.
type Formulation struct {
	// Name is the variant label, e.g. ULSP_TVP.
	Name     string
	Model    *mipmodel.Model
	products []product
}

// Periods returns the planning horizon.
func (f *Formulation) Periods() int {
	return len(f.products[0].setup)
}

// Products returns the number of products in the model.
func (f *Formulation) Products() int {
	return len(f.products)
}

// SetupVar returns z_{t,p} for 0-based product p and period t.
func (f *Formulation) SetupVar(p, t int) mipmodel.BoolVar {
	return f.products[p].setup[t]
}

// ProductionVar returns y_{t,p} for 0-based product p and period t.
func (f *Formulation) ProductionVar(p, t int) mipmodel.Var {
	return f.products[p].produce[t]
}

// InventoryVar returns I_{t,p} for 0-based product p and period t.
func (f *Formulation) InventoryVar(p, t int) mipmodel.Var {
	return f.products[p].inventory[t]
}

func newFormulation(name string, mb *mipmodel.Builder, products []product) (*Formulation, error) {
	m, err := mb.Model()
	if err != nil {
		return nil, fmt.Errorf("%s: building model: %w", name, err)
	}
	return &Formulation{Name: name, Model: m, products: products}, nil
}

// Solve hands the model to the solver and reads the plan back. It fails with a *SolveError
// when the solver ends without a feasible plan.
func (f *Formulation) Solve(opts ...Option) (*Solution, error) {
	o := newOptions(opts)
	log.V(1).Infof("%s: %d periods, %d products, %d variables, %d constraints",
		f.Name, f.Periods(), f.Products(), len(f.Model.Variables), len(f.Model.Constraints))

	res, err := o.solver.Solve(f.Model, o.parameters())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	if !res.Status.HasSolution() {
		return nil, &SolveError{Model: f.Name, Status: res.Status}
	}
	if len(res.Solution) != len(f.Model.Variables) {
		return nil, fmt.Errorf("%s: solver returned %d values for %d variables", f.Name, len(res.Solution), len(f.Model.Variables))
	}
	if res.Status == mipmodel.Feasible {
		log.Warningf("%s: time limit reached, reporting the best plan found (relative gap %.3g)", f.Name, res.RelativeGap)
	}
	return f.extract(res), nil
}

func (f *Formulation) extract(res *mipmodel.Response) *Solution {
	periods := f.Periods()
	sol := &Solution{
		Objective:   res.ObjectiveValue,
		Setups:      make([]int, periods),
		Production:  make([][]float64, len(f.products)),
		Inventory:   make([][]float64, len(f.products)),
		Status:      res.Status,
		RelativeGap: res.RelativeGap,
		WallTime:    res.WallTime,
	}
	for p, prod := range f.products {
		sol.Production[p] = make([]float64, periods)
		sol.Inventory[p] = make([]float64, periods)
		for t := 0; t < periods; t++ {
			sol.Production[p][t] = clean(mipmodel.SolutionValue(res, prod.produce[t]))
			sol.Inventory[p][t] = clean(mipmodel.SolutionValue(res, prod.inventory[t]))
			if sol.Setups[t] == 0 && mipmodel.SolutionBooleanValue(res, prod.setup[t]) {
				sol.Setups[t] = p + 1
			}
		}
	}
	return sol
}

func clean(v float64) float64 {
	if math.Abs(v) < zeroTolerance {
		return 0
	}
	return v
}
