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

// Package instance reads lot-sizing problem data and solver settings from YAML files.
//
// A file holds any of the three variants plus an optional solver section:
//
//	lsp1:
//	  holding_cost: 2
//	  setup_cost: 50
//	  production_costs: [1, 2, 2, 1.5, 1, 0.5, 1]
//	  initial_inventory: 25
//	  requirements: [20, 25, 14, 20, 15, 5.5, 2.5]
//	lsp3:
//	  holding_cost: 2
//	  setup_cost: 50
//	  initial_inventory: [25, 25]
//	  requirements:
//	    - [20, 25, 14, 20, 15, 5.5, 2.5]
//	    - [5, 10, 21, 20, 7.5, 11, 13]
//	solver:
//	  time_limit: 10s
//	  relative_gap: 1e-6
package instance

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/linearsolver"
	"github.com/fom-or/lotsizing/lotsizing/lsp/go/lsp"
)

// Solver holds the solver settings of a file. Zero values select the lsp defaults.
type Solver struct {
	TimeLimit   time.Duration `yaml:"time_limit"`
	RelativeGap *float64      `yaml:"relative_gap"`
	Output      bool          `yaml:"output"`
}

// File is the decoded content of an instance file. Absent variants are nil.
type File struct {
	LSP1   *lsp.LSP1Instance `yaml:"lsp1"`
	LSP2   *lsp.LSP2Instance `yaml:"lsp2"`
	LSP3   *lsp.LSP3Instance `yaml:"lsp3"`
	Solver Solver            `yaml:"solver"`
}

// Options converts the solver section to solve options.
func (f *File) Options() []lsp.Option {
	opts := []lsp.Option{lsp.WithSolverOutput(f.Solver.Output)}
	if f.Solver.TimeLimit > 0 {
		opts = append(opts, lsp.WithTimeLimit(f.Solver.TimeLimit))
	}
	if f.Solver.RelativeGap != nil {
		opts = append(opts, lsp.WithRelativeGap(*f.Solver.RelativeGap))
	}
	return opts
}

// Validate checks every variant present in the file and the solver section.
func (f *File) Validate() error {
	if f.LSP1 == nil && f.LSP2 == nil && f.LSP3 == nil {
		return errors.New("instance: no lsp1, lsp2 or lsp3 section")
	}
	if f.LSP1 != nil {
		if err := f.LSP1.Validate(); err != nil {
			return fmt.Errorf("instance: lsp1: %w", err)
		}
	}
	if f.LSP2 != nil {
		if err := f.LSP2.Validate(); err != nil {
			return fmt.Errorf("instance: lsp2: %w", err)
		}
	}
	if f.LSP3 != nil {
		if err := f.LSP3.Validate(); err != nil {
			return fmt.Errorf("instance: lsp3: %w", err)
		}
	}
	if f.Solver.TimeLimit < 0 {
		return fmt.Errorf("instance: solver: negative time_limit %v", f.Solver.TimeLimit)
	}
	if g := f.Solver.RelativeGap; g != nil && (math.IsNaN(*g) || *g < 0 || *g >= 1) {
		return fmt.Errorf("instance: solver: relative_gap %v outside [0, 1)", *g)
	}
	return nil
}

// Parse decodes and validates an instance payload. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("instance: payload is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("instance: decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the instance file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Demo returns the three classroom instances used when no file is given.
func Demo() *File {
	req := []float64{20, 25, 14, 20, 15, 5.5, 2.5}
	return &File{
		LSP1: &lsp.LSP1Instance{
			HoldingCost:      2,
			SetupCost:        50,
			ProductionCosts:  []float64{1, 2, 2, 1.5, 1, 0.5, 1},
			InitialInventory: 25,
			Requirements:     req,
		},
		LSP2: &lsp.LSP2Instance{
			HoldingCost:      2,
			SetupCost:        50,
			InitialInventory: 25,
			Requirements:     req,
		},
		LSP3: &lsp.LSP3Instance{
			HoldingCost:      2,
			SetupCost:        50,
			InitialInventory: []float64{25, 25},
			Requirements: [][]float64{
				req,
				{5, 10, 21, 20, 7.5, 11, 13},
			},
		},
		Solver: Solver{TimeLimit: linearsolver.DefaultTimeLimit},
	}
}
