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

// [START program]
// The simple_mip_program command is an example of a small mixed-integer program solved with an
// explicit solver instance.
package main

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
	"google.golang.org/protobuf/proto"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/linearsolver"
	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

func simpleMipProgram() error {
	model := mipmodel.NewMipModelBuilder().SetName("simple_mip_program")

	x := model.NewIntVar(0, math.Inf(1)).WithName("x")
	y := model.NewIntVar(0, math.Inf(1)).WithName("y")

	// x + 7y <= 17.5
	model.AddLinearConstraint(mipmodel.NewLinearExpr().Add(x).AddTerm(y, 7), math.Inf(-1), 17.5).WithName("c0")
	// x <= 3.5
	model.AddLessOrEqual(x, mipmodel.NewConstant(3.5)).WithName("c1")

	// Maximize x + 10y.
	model.Maximize(mipmodel.NewLinearExpr().Add(x).AddTerm(y, 10))

	m, err := model.Model()
	if err != nil {
		return fmt.Errorf("failed to instantiate the MIP model: %w", err)
	}

	solver, err := linearsolver.New("simple_mip_program")
	if err != nil {
		return fmt.Errorf("failed to create the solver: %w", err)
	}
	defer linearsolver.Delete(solver)

	if err := solver.SetParameters(&mipmodel.Parameters{MaxTimeInSeconds: proto.Float64(10.0)}); err != nil {
		return fmt.Errorf("failed to set parameters: %w", err)
	}
	if err := solver.LoadModel(m); err != nil {
		return fmt.Errorf("failed to load the model: %w", err)
	}
	response, err := solver.Solve()
	if err != nil {
		return fmt.Errorf("failed to solve the model: %w", err)
	}

	// This should print out:
	// Status: OPTIMAL
	// Objective value = 23
	// x = 3
	// y = 2
	fmt.Printf("Status: %v\n", response.Status)
	if !response.Status.HasSolution() {
		fmt.Println("No solution found.")
		return nil
	}
	fmt.Printf("Objective value = %v\n", math.Round(response.ObjectiveValue))
	fmt.Printf("x = %d\n", mipmodel.SolutionIntegerValue(response, x))
	fmt.Printf("y = %d\n", mipmodel.SolutionIntegerValue(response, y))
	fmt.Printf("Problem solved in %v, %d branch-and-bound nodes\n", response.WallTime, response.NodeCount)

	return nil
}

func main() {
	if err := simpleMipProgram(); err != nil {
		log.Exitf("simpleMipProgram returned with error: %v", err)
	}
}

// [END program]
