// Package linearsolver solves mipmodel models with the HiGHS mixed-integer solver.
package linearsolver

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/bartolsthoorn/gohighs/highs"
	log "github.com/golang/glog"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

// DefaultTimeLimit is the wall-clock budget used when the caller does not set one.
const DefaultTimeLimit = 10 * time.Second

// HiGHS reports kHighsSolutionStatusFeasible for the primal solution when an incumbent exists.
const primalSolutionFeasible = 2

// LinearSolver wraps a HiGHS instance loaded with one model.
type LinearSolver struct {
	*highs.Solver // anonymous field
	name          string
	numCol        int
	isMIP         bool
}

// New initializes a new linear solver with the given name.
//
// Note that Go will not track memory allocated on the C++ heap. The caller must
// call Delete() on the returned solver when it is done to free memory.
func New(name string) (*LinearSolver, error) {
	s, err := highs.NewSolver()
	if err != nil {
		return nil, fmt.Errorf("creating HiGHS solver %q failed: %w", name, err)
	}
	return &LinearSolver{Solver: s, name: name}, nil
}

// Delete destroys the underlying HiGHS instance. The solver cannot be used after this call.
func Delete(ls *LinearSolver) {
	ls.Solver.Close()
}

// Name returns the name given at creation.
func (ls *LinearSolver) Name() string {
	return ls.name
}

// SetParameters applies `p` to the solver. A nil `p` only silences the solver log.
func (ls *LinearSolver) SetParameters(p *mipmodel.Parameters) error {
	if err := ls.SetBoolOption("output_flag", p.GetLogSearchProgress()); err != nil {
		return err
	}
	if t := p.GetMaxTimeInSeconds(); t > 0 {
		if err := ls.SetFloatOption("time_limit", t); err != nil {
			return err
		}
	}
	if p != nil && p.RelativeGap != nil {
		if err := ls.SetFloatOption("mip_rel_gap", *p.RelativeGap); err != nil {
			return err
		}
	}
	if n := p.GetNumWorkers(); n > 0 {
		if err := ls.SetIntOption("threads", int(n)); err != nil {
			return err
		}
	}
	return nil
}

// LoadModel passes `m` to the solver, replacing any previously loaded model.
func (ls *LinearSolver) LoadModel(m *mipmodel.Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	numCol := len(m.Variables)
	colCost := make([]float64, numCol)
	colLower := make([]float64, numCol)
	colUpper := make([]float64, numCol)
	integrality := make([]highs.VariableType, numCol)
	for i, v := range m.Variables {
		colCost[i] = v.ObjectiveCoefficient
		colLower[i] = v.Lower
		colUpper[i] = v.Upper
		if v.Integer {
			integrality[i] = highs.Integer
		} else {
			integrality[i] = highs.Continuous
		}
	}
	rowLower, rowUpper, aStart, aIndex, aValue := rowwise(m)
	if err := ls.PassModel(
		numCol, len(m.Constraints),
		colCost, colLower, colUpper,
		rowLower, rowUpper,
		aStart, aIndex, aValue,
		integrality,
		m.Maximize,
		m.ObjectiveOffset,
	); err != nil {
		return fmt.Errorf("loading model %q failed: %w", m.Name, err)
	}
	ls.numCol = numCol
	ls.isMIP = m.NumIntegerVariables() > 0
	return nil
}

// rowwise converts the constraints of `m` to the compressed row format HiGHS expects.
func rowwise(m *mipmodel.Model) (rowLower, rowUpper []float64, aStart, aIndex []int, aValue []float64) {
	numRow := len(m.Constraints)
	rowLower = make([]float64, numRow)
	rowUpper = make([]float64, numRow)
	aStart = make([]int, numRow)
	for r, ct := range m.Constraints {
		rowLower[r] = ct.Lower
		rowUpper[r] = ct.Upper
		aStart[r] = len(aIndex)
		for j, ind := range ct.VarIndex {
			aIndex = append(aIndex, int(ind))
			aValue = append(aValue, ct.Coefficient[j])
		}
	}
	return rowLower, rowUpper, aStart, aIndex, aValue
}

// Solve runs the solver on the loaded model and returns its response.
func (ls *LinearSolver) Solve() (*mipmodel.Response, error) {
	start := time.Now()
	sol, err := ls.Run()
	if err != nil {
		return nil, fmt.Errorf("solving model %q failed: %w", ls.name, err)
	}
	res := &mipmodel.Response{WallTime: time.Since(start)}

	primal, err := ls.GetIntInfo("primal_solution_status")
	if err != nil {
		log.V(2).Infof("%s: primal_solution_status unavailable: %v", ls.name, err)
	}
	res.Status = statusFromHighs(sol.Status, primal == primalSolutionFeasible && len(sol.ColValues) == ls.numCol)
	if !res.Status.HasSolution() {
		return res, nil
	}
	res.ObjectiveValue = sol.Objective
	res.Solution = sol.ColValues
	res.BestObjectiveBound = sol.Objective
	if !ls.isMIP {
		return res, nil
	}
	if gap, err := ls.GetFloatInfo("mip_gap"); err == nil && !math.IsInf(gap, 0) && gap >= 0 {
		res.RelativeGap = gap
	}
	if bound, err := ls.GetFloatInfo("mip_dual_bound"); err == nil && !math.IsInf(bound, 0) {
		res.BestObjectiveBound = bound
	}
	if nodes, err := ls.GetInt64Info("mip_node_count"); err == nil && nodes > 0 {
		res.NodeCount = nodes
	}
	return res, nil
}

// statusFromHighs maps the HiGHS model status to a mipmodel.Status. `hasIncumbent` tells
// whether HiGHS holds a feasible primal solution.
func statusFromHighs(s highs.ModelStatus, hasIncumbent bool) mipmodel.Status {
	switch s {
	case highs.ModelStatusOptimal:
		return mipmodel.Optimal
	case highs.ModelStatusTimeLimit, highs.ModelStatusIterationLimit,
		highs.ModelStatusObjectiveBound, highs.ModelStatusObjectiveTarget:
		if hasIncumbent {
			return mipmodel.Feasible
		}
		return mipmodel.Unknown
	case highs.ModelStatusInfeasible, highs.ModelStatusUnboundedOrInfeasible:
		return mipmodel.Infeasible
	case highs.ModelStatusUnbounded:
		return mipmodel.Unbounded
	case highs.ModelStatusLoadError, highs.ModelStatusModelError, highs.ModelStatusModelEmpty:
		return mipmodel.ModelInvalid
	default:
		return mipmodel.Unknown
	}
}

// SolveMipModel solves a model with the default parameters and returns a Response.
func SolveMipModel(m *mipmodel.Model) (*mipmodel.Response, error) {
	return SolveMipModelWithParameters(m, nil)
}

// SolveMipModelWithParameters solves a model with the given parameters and returns a
// Response. An invalid model yields a MODEL_INVALID response rather than an error; errors
// are reserved for failures of the solver itself.
func SolveMipModelWithParameters(m *mipmodel.Model, params *mipmodel.Parameters) (*mipmodel.Response, error) {
	if err := m.Validate(); err != nil {
		log.Errorf("model rejected before solve: %v", err)
		return &mipmodel.Response{Status: mipmodel.ModelInvalid}, nil
	}
	if len(m.Variables) == 0 {
		for _, ct := range m.Constraints {
			if !mipmodel.NewBounds(ct.Lower, ct.Upper).Contains(0, 0) {
				return &mipmodel.Response{Status: mipmodel.Infeasible}, nil
			}
		}
		return &mipmodel.Response{
			Status:             mipmodel.Optimal,
			ObjectiveValue:     m.ObjectiveOffset,
			BestObjectiveBound: m.ObjectiveOffset,
		}, nil
	}

	ls, err := New(m.Name)
	if err != nil {
		return nil, err
	}
	defer Delete(ls)
	if err := ls.SetParameters(params); err != nil {
		return nil, fmt.Errorf("setting parameters failed: %w", err)
	}
	if err := ls.LoadModel(m); err != nil {
		return nil, err
	}
	log.V(1).Infof("%s: solving %d variables (%d integer), %d constraints, time limit %v",
		m.Name, len(m.Variables), m.NumIntegerVariables(), len(m.Constraints), params.TimeLimit())
	res, err := ls.Solve()
	if err != nil {
		return nil, err
	}
	log.V(1).Infof("%s: status %v, objective %v, %d nodes in %v",
		m.Name, res.Status, res.ObjectiveValue, res.NodeCount, res.WallTime)
	return res, nil
}

// Solver is the collaborator that turns a model into a response.
type Solver interface {
	Solve(m *mipmodel.Model, params *mipmodel.Parameters) (*mipmodel.Response, error)
}

// HighsSolver is the Solver backed by HiGHS.
type HighsSolver struct{}

// Solve implements Solver.
func (HighsSolver) Solve(m *mipmodel.Model, params *mipmodel.Parameters) (*mipmodel.Response, error) {
	return SolveMipModelWithParameters(m, params)
}

// ErrUnsupportedFormat is returned when exporting to a file extension HiGHS cannot write.
var ErrUnsupportedFormat = errors.New("unsupported model file format")

// ExportModel writes `m` to `path`. The format follows the file extension: ".lp" or ".mps".
func ExportModel(m *mipmodel.Model, path string) error {
	switch ext := filepath.Ext(path); ext {
	case ".lp", ".mps":
	default:
		return fmt.Errorf("exporting %s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	ls, err := New(m.Name)
	if err != nil {
		return err
	}
	defer Delete(ls)
	if err := ls.SetParameters(nil); err != nil {
		return err
	}
	if err := ls.LoadModel(m); err != nil {
		return err
	}
	if err := ls.WriteModel(path); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return nil
}

// ExportModelAsLpFormat writes `m` to `dir/<m.Name>.lp` and returns the file path.
func ExportModelAsLpFormat(m *mipmodel.Model, dir string) (string, error) {
	path := filepath.Join(dir, m.Name+".lp")
	return path, ExportModel(m, path)
}

// ExportModelAsMpsFormat writes `m` to `dir/<m.Name>.mps` and returns the file path.
func ExportModelAsMpsFormat(m *mipmodel.Model, dir string) (string, error) {
	path := filepath.Join(dir, m.Name+".mps")
	return path, ExportModel(m, path)
}
