package linearsolver

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bartolsthoorn/gohighs/highs"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"google.golang.org/protobuf/proto"

	"github.com/fom-or/lotsizing/lotsizing/linear_solver/go/mipmodel"
)

func approxEq(x, y float64) bool {
	return math.Abs(x-y) < 1e-6
}

func TestSolveEmpty(t *testing.T) {
	res, err := SolveMipModel(&mipmodel.Model{ObjectiveOffset: 2.5})
	if err != nil {
		t.Fatalf("SolveMipModel(empty) err = %v, want nil", err)
	}
	want := &mipmodel.Response{Status: mipmodel.Optimal, ObjectiveValue: 2.5, BestObjectiveBound: 2.5}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("SolveMipModel(empty) returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestSolveEmptyInfeasible(t *testing.T) {
	m := &mipmodel.Model{Constraints: []*mipmodel.LinearConstraint{{Lower: 1, Upper: 2}}}
	res, err := SolveMipModel(m)
	if err != nil {
		t.Fatalf("SolveMipModel() err = %v, want nil", err)
	}
	if res.Status != mipmodel.Infeasible {
		t.Errorf("SolveMipModel() status = %v, want INFEASIBLE", res.Status)
	}
}

// TestSolveLP solves the linear program
//
//	min  f = x_0 + x_1 + 3
//	s.t. x_1 <= 7
//	     5 <= x_0 + 2x_1 <= 15
//	     6 <= 3x_0 + 2x_1
//	     0 <= x_0 <= 4; 1 <= x_1
func TestSolveLP(t *testing.T) {
	model := mipmodel.NewMipModelBuilder().SetName("lp")

	x0 := model.NewVar(0, 4)
	x1 := model.NewVar(1, math.Inf(1))

	model.AddLinearConstraint(x1, math.Inf(-1), 7)
	model.AddLinearConstraint(mipmodel.NewLinearExpr().AddTerm(x0, 1).AddTerm(x1, 2), 5, 15)
	model.AddLinearConstraint(mipmodel.NewLinearExpr().AddTerm(x0, 3).AddTerm(x1, 2), 6, math.Inf(1))
	model.Minimize(mipmodel.NewLinearExpr().AddSum(x0, x1).AddConstant(3))

	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}
	res, err := SolveMipModel(m)
	if err != nil {
		t.Fatalf("SolveMipModel returned with unexpected err: %v", err)
	}
	if res.Status != mipmodel.Optimal {
		t.Fatalf("SolveMipModel() returned status = %v, want OPTIMAL", res.Status)
	}
	if !approxEq(res.ObjectiveValue, 5.75) {
		t.Errorf("SolveMipModel() returned objective = %v, want 5.75", res.ObjectiveValue)
	}
	gotX0 := mipmodel.SolutionValue(res, x0)
	gotX1 := mipmodel.SolutionValue(res, x1)
	if !approxEq(gotX0, 0.5) || !approxEq(gotX1, 2.25) {
		t.Errorf("SolutionValue() returned (x0, x1) = (%v, %v), want (0.5, 2.25)", gotX0, gotX1)
	}
}

func TestSolveMIP(t *testing.T) {
	model := mipmodel.NewMipModelBuilder().SetName("mip")

	x := model.NewIntVar(1, 10)
	y := model.NewIntVar(1, 10)

	model.AddEquality(mipmodel.NewLinearExpr().AddSum(x, y), mipmodel.NewConstant(15))
	model.Maximize(mipmodel.NewLinearExpr().AddTerm(x, 7).AddTerm(y, 1))

	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}
	params := &mipmodel.Parameters{
		MaxTimeInSeconds: proto.Float64(DefaultTimeLimit.Seconds()),
		RelativeGap:      proto.Float64(0),
		NumWorkers:       proto.Int32(1),
	}
	res, err := SolveMipModelWithParameters(m, params)
	if err != nil {
		t.Fatalf("SolveMipModelWithParameters returned with unexpected err: %v", err)
	}
	if res.Status != mipmodel.Optimal {
		t.Fatalf("SolveMipModelWithParameters() returned status = %v, want OPTIMAL", res.Status)
	}
	if !approxEq(res.ObjectiveValue, 75) {
		t.Errorf("SolveMipModelWithParameters() returned objective = %v, want 75", res.ObjectiveValue)
	}
	gotX := mipmodel.SolutionIntegerValue(res, x)
	gotY := mipmodel.SolutionIntegerValue(res, y)
	if gotX != 10 || gotY != 5 {
		t.Errorf("SolutionIntegerValue() returned (x, y) = (%v, %v), want (10, 5)", gotX, gotY)
	}
}

func TestSolveBoolVar(t *testing.T) {
	model := mipmodel.NewMipModelBuilder().SetName("bool")

	x := model.NewBoolVar()
	y := model.NewBoolVar()

	model.AddAtMostOne(x, y)
	model.AddGreaterOrEqual(mipmodel.NewLinearExpr().AddSum(x, y), mipmodel.NewConstant(1))
	model.Minimize(mipmodel.NewLinearExpr().AddTerm(x, 3).AddTerm(y, 2))

	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}
	res, err := SolveMipModel(m)
	if err != nil {
		t.Fatalf("SolveMipModel returned with unexpected err: %v", err)
	}
	if res.Status != mipmodel.Optimal {
		t.Fatalf("SolveMipModel() returned status = %v, want OPTIMAL", res.Status)
	}
	gotX := mipmodel.SolutionBooleanValue(res, x)
	gotY := mipmodel.SolutionBooleanValue(res, y)
	if gotX || !gotY {
		t.Errorf("SolutionBooleanValue() returned (x, y) = (%v, %v), want (false, true)", gotX, gotY)
	}
}

func TestSolveInfeasible(t *testing.T) {
	model := mipmodel.NewMipModelBuilder().SetName("infeasible")

	x := model.NewVar(0, 1)
	b := model.NewBoolVar()
	model.AddGreaterOrEqual(mipmodel.NewLinearExpr().AddSum(x, b), mipmodel.NewConstant(3))
	model.Minimize(x)

	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}
	res, err := SolveMipModel(m)
	if err != nil {
		t.Fatalf("SolveMipModel returned with unexpected err: %v", err)
	}
	if res.Status != mipmodel.Infeasible {
		t.Errorf("SolveMipModel() returned status = %v, want INFEASIBLE", res.Status)
	}
	if len(res.Solution) != 0 {
		t.Errorf("SolveMipModel() returned solution %v, want none", res.Solution)
	}
}

func TestSolveUnbounded(t *testing.T) {
	model := mipmodel.NewMipModelBuilder().SetName("unbounded")

	x := model.NewVar(0, math.Inf(1))
	model.Maximize(x)

	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}
	res, err := SolveMipModel(m)
	if err != nil {
		t.Fatalf("SolveMipModel returned with unexpected err: %v", err)
	}
	// HiGHS presolve may not distinguish unbounded from infeasible.
	if res.Status != mipmodel.Unbounded && res.Status != mipmodel.Infeasible {
		t.Errorf("SolveMipModel() returned status = %v, want UNBOUNDED or INFEASIBLE", res.Status)
	}
}

func TestSolveInvalidModel(t *testing.T) {
	m := &mipmodel.Model{
		Variables: []*mipmodel.Variable{{Lower: 0, Upper: -1}},
	}
	res, err := SolveMipModel(m)
	if err != nil {
		t.Fatalf("SolveMipModel returned with unexpected err: %v", err)
	}
	if res.Status != mipmodel.ModelInvalid {
		t.Errorf("SolveMipModel() returned status = %v, want MODEL_INVALID", res.Status)
	}
}

func TestHighsSolverImplementsSolver(t *testing.T) {
	var s Solver = HighsSolver{}
	res, err := s.Solve(&mipmodel.Model{}, nil)
	if err != nil {
		t.Fatalf("Solve() err = %v, want nil", err)
	}
	if res.Status != mipmodel.Optimal {
		t.Errorf("Solve() status = %v, want OPTIMAL", res.Status)
	}
}

func TestStatusFromHighs(t *testing.T) {
	testCases := []struct {
		status       highs.ModelStatus
		hasIncumbent bool
		want         mipmodel.Status
	}{
		{status: highs.ModelStatusOptimal, want: mipmodel.Optimal},
		{status: highs.ModelStatusTimeLimit, hasIncumbent: true, want: mipmodel.Feasible},
		{status: highs.ModelStatusTimeLimit, want: mipmodel.Unknown},
		{status: highs.ModelStatusIterationLimit, hasIncumbent: true, want: mipmodel.Feasible},
		{status: highs.ModelStatusInfeasible, want: mipmodel.Infeasible},
		{status: highs.ModelStatusUnboundedOrInfeasible, want: mipmodel.Infeasible},
		{status: highs.ModelStatusUnbounded, want: mipmodel.Unbounded},
		{status: highs.ModelStatusModelError, want: mipmodel.ModelInvalid},
		{status: highs.ModelStatusSolveError, want: mipmodel.Unknown},
	}

	for _, test := range testCases {
		if got := statusFromHighs(test.status, test.hasIncumbent); got != test.want {
			t.Errorf("statusFromHighs(%v, %v) = %v, want %v", test.status, test.hasIncumbent, got, test.want)
		}
	}
}

func TestRowwise(t *testing.T) {
	m := &mipmodel.Model{
		Variables: []*mipmodel.Variable{{Upper: 1}, {Upper: 1}, {Upper: 1}},
		Constraints: []*mipmodel.LinearConstraint{
			{Lower: 0, Upper: 0, VarIndex: []int32{0, 2}, Coefficient: []float64{1, -1}},
			{Lower: math.Inf(-1), Upper: 1, VarIndex: []int32{1}, Coefficient: []float64{4}},
		},
	}
	rowLower, rowUpper, aStart, aIndex, aValue := rowwise(m)

	if diff := cmp.Diff([]float64{0, math.Inf(-1)}, rowLower); diff != "" {
		t.Errorf("rowLower returned with unexpected diff (-want+got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 1}, rowUpper); diff != "" {
		t.Errorf("rowUpper returned with unexpected diff (-want+got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2}, aStart); diff != "" {
		t.Errorf("aStart returned with unexpected diff (-want+got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2, 1}, aIndex); diff != "" {
		t.Errorf("aIndex returned with unexpected diff (-want+got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, -1, 4}, aValue, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("aValue returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestExportModel(t *testing.T) {
	model := mipmodel.NewMipModelBuilder().SetName("export")

	x := model.NewVar(0, 10).WithName("x")
	b := model.NewBoolVar().WithName("b")
	model.AddLessOrEqual(x, mipmodel.NewLinearExpr().AddTerm(b, 10)).WithName("link")
	model.Minimize(mipmodel.NewLinearExpr().AddTerm(b, 50).AddTerm(x, -1))

	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}
	dir := t.TempDir()

	for _, export := range []func(*mipmodel.Model, string) (string, error){ExportModelAsLpFormat, ExportModelAsMpsFormat} {
		path, err := export(m, dir)
		if err != nil {
			t.Fatalf("export(%q) err = %v, want nil", dir, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat(%q) err = %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("exported file %q is empty", path)
		}
	}

	err = ExportModel(m, filepath.Join(dir, "export.txt"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ExportModel(.txt) err = %v, want %v", err, ErrUnsupportedFormat)
	}
	if err != nil && !strings.Contains(err.Error(), ".txt") {
		t.Errorf("ExportModel(.txt) err = %v, want the extension in the message", err)
	}
}
