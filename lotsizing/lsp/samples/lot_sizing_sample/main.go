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

// The lot_sizing_sample command solves the three uncapacitated lot-sizing variants of an
// instance file (or of the built-in demo) and prints one line per variant.
//
// Usage:
//
//	lot_sizing_sample [-instance=demo.yaml] [-time_limit=10s] [-format=text|json|table]
//	                  [-baseline] [-export_dir=DIR] [-export_format=lp|mps]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/golang/glog"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/linearsolver"
	"github.com/fom-or/lotsizing/lotsizing/lsp/go/instance"
	"github.com/fom-or/lotsizing/lotsizing/lsp/go/lsp"
	"github.com/fom-or/lotsizing/lotsizing/lsp/go/report"
)

var (
	instancePath = flag.String("instance", "", "YAML instance file; the built-in demo when empty")
	timeLimit    = flag.Duration("time_limit", 0, "solver wall-clock limit per variant; overrides the instance file")
	format       = flag.String("format", "text", "output format: text, json or table")
	baseline     = flag.Bool("baseline", false, "also print the lot-for-lot plan of every variant")
	exportDir    = flag.String("export_dir", "", "if set, write every model to this directory before solving")
	exportFormat = flag.String("export_format", "lp", "model file format for -export_dir: lp or mps")
)

// variant binds one formulation of the instance file to its label.
type variant struct {
	label    string
	build    func() (*lsp.Formulation, error)
	baseline func() (*lsp.Solution, error)
}

func variants(f *instance.File) []variant {
	var vs []variant
	if in := f.LSP1; in != nil {
		vs = append(vs, variant{
			label:    lsp.LabelLSP1,
			build:    func() (*lsp.Formulation, error) { return lsp.BuildLSP1(*in) },
			baseline: func() (*lsp.Solution, error) { return lsp.LotForLot1(*in) },
		})
	}
	if in := f.LSP2; in != nil {
		vs = append(vs, variant{
			label:    lsp.LabelLSP2,
			build:    func() (*lsp.Formulation, error) { return lsp.BuildLSP2(*in) },
			baseline: func() (*lsp.Solution, error) { return lsp.LotForLot2(*in) },
		})
	}
	if in := f.LSP3; in != nil {
		vs = append(vs, variant{
			label:    lsp.LabelLSP3,
			build:    func() (*lsp.Formulation, error) { return lsp.BuildLSP3(*in) },
			baseline: func() (*lsp.Solution, error) { return lsp.LotForLot3(*in) },
		})
	}
	return vs
}

func export(f *lsp.Formulation) error {
	var (
		path string
		err  error
	)
	switch *exportFormat {
	case "lp":
		path, err = linearsolver.ExportModelAsLpFormat(f.Model, *exportDir)
	case "mps":
		path, err = linearsolver.ExportModelAsMpsFormat(f.Model, *exportDir)
	default:
		return fmt.Errorf("unknown -export_format %q", *exportFormat)
	}
	if err != nil {
		return err
	}
	log.Infof("%s: model written to %s", f.Name, path)
	return nil
}

func render(label string, sol *lsp.Solution) (string, error) {
	switch *format {
	case "text":
		return report.Line(label, sol), nil
	case "table":
		return report.Table(label, sol), nil
	case "json":
		b, err := report.JSON(label, sol)
		return string(b), err
	default:
		return "", fmt.Errorf("unknown -format %q", *format)
	}
}

// solveVariant writes the optimal plan of v to w, and its baseline when requested. It
// returns false if the variant could not be solved.
func solveVariant(w io.Writer, v variant, opts []lsp.Option) (bool, error) {
	f, err := v.build()
	if err == nil && *exportDir != "" {
		if err := export(f); err != nil {
			return false, err
		}
	}
	var sol *lsp.Solution
	if err == nil {
		sol, err = f.Solve(opts...)
	}
	ok := err == nil
	if ok {
		out, err := render(v.label, sol)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(w, out)
	} else {
		log.Errorf("%s: %v", v.label, err)
		fmt.Fprintln(w, report.Failure(v.label, err))
	}

	if !*baseline {
		return ok, nil
	}
	label := v.label + " lot-for-lot"
	base, err := v.baseline()
	if err != nil {
		fmt.Fprintln(w, report.Failure(label, err))
		return ok, nil
	}
	out, err := render(label, base)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(w, out)
	return ok, nil
}

// solveVariants solves every variant in turn. A variant that cannot be solved does not stop
// the others, but makes the run fail.
func solveVariants(w io.Writer, vs []variant, opts []lsp.Option) error {
	start := time.Now()
	failed := 0
	for _, v := range vs {
		ok, err := solveVariant(w, v, opts)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}
	log.V(1).Infof("solved %d variants in %v", len(vs), time.Since(start))
	if failed > 0 {
		return fmt.Errorf("%d of %d variants failed", failed, len(vs))
	}
	return nil
}

func lotSizingSample() error {
	f := instance.Demo()
	if *instancePath != "" {
		var err error
		if f, err = instance.Load(*instancePath); err != nil {
			return err
		}
	}
	opts := f.Options()
	if *timeLimit > 0 {
		opts = append(opts, lsp.WithTimeLimit(*timeLimit))
	}
	if *exportDir != "" {
		if err := os.MkdirAll(*exportDir, 0o755); err != nil {
			return err
		}
	}
	return solveVariants(os.Stdout, variants(f), opts)
}

func main() {
	flag.Parse()
	defer log.Flush()
	if err := lotSizingSample(); err != nil {
		log.Exitf("lotSizingSample returned with error: %v", err)
	}
}
