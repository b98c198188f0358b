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

// Package mipmodel offers a user-friendly API to build mixed-integer linear programs.
//
// The `Builder` struct wraps a `Model` and provides helper methods for adding variables,
// linear constraints and a linear objective to it.
// The `Var` and `BoolVar` structs are references to specific variables in the model and
// provide helpful methods for interacting with those variables.
// The `LinearExpr` struct provides helper methods for creating constraints and the
// objective from expressions with many variables and coefficients.
//
// The built `Model` is plain data. It is solved by the linearsolver package, and values are
// read back from the returned `Response` with `SolutionValue` and `SolutionBooleanValue`.
package mipmodel

import (
	"errors"
	"fmt"
	"math"

	log "github.com/golang/glog"
)

var (
	// ErrMixedModels holds the error when elements added to a model are different.
	ErrMixedModels = errors.New("elements are not part of the same model")
	// ErrEmptyBounds holds the error when a variable or constraint is created with empty bounds.
	ErrEmptyBounds = errors.New("empty bounds")
)

type (
	// VarIndex is the index of a variable in the model.
	VarIndex int32
	// ConstrIndex is the index of a linear constraint in the model.
	ConstrIndex int32
)

// LinearArgument provides an interface for Var, BoolVar, and LinearExpr.
type LinearArgument interface {
	addToLinearExpr(e *LinearExpr, c float64)
	evaluateSolutionValue(r *Response) float64
}

// LinearExpr is a container for a linear expression.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    float64
	// mb is the builder of the first variable added to the expression.
	mb    *Builder
	mixed bool
}

type varCoeff struct {
	ind   VarIndex
	coeff float64
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// NewConstant creates and returns a LinearExpr containing the constant `c`.
func NewConstant(c float64) *LinearExpr {
	return &LinearExpr{offset: c}
}

// Add adds the linear argument term to the LinearExpr and returns itself.
func (l *LinearExpr) Add(la LinearArgument) *LinearExpr {
	l.AddTerm(la, 1)
	return l
}

// AddConstant adds the constant to the LinearExpr and returns itself.
func (l *LinearExpr) AddConstant(c float64) *LinearExpr {
	l.offset += c
	return l
}

// AddTerm adds the linear argument term with the given coefficient to the LinearExpr and returns itself.
func (l *LinearExpr) AddTerm(la LinearArgument, coeff float64) *LinearExpr {
	la.addToLinearExpr(l, coeff)
	return l
}

// AddSum adds the sum of the linear arguments to the LinearExpr and returns itself.
func (l *LinearExpr) AddSum(las ...LinearArgument) *LinearExpr {
	for _, la := range las {
		l.Add(la)
	}
	return l
}

// AddWeightedSum adds the linear arguments with the corresponding coefficients to the LinearExpr
// and returns itself.
func (l *LinearExpr) AddWeightedSum(las []LinearArgument, coeffs []float64) *LinearExpr {
	if len(coeffs) != len(las) {
		log.Fatalf("las and coeffs must be the same length: %v != %v", len(las), len(coeffs))
	}
	for i, la := range las {
		l.AddTerm(la, coeffs[i])
	}
	return l
}

// Offset returns the constant term of the expression.
func (l *LinearExpr) Offset() float64 {
	return l.offset
}

func (l *LinearExpr) track(mb *Builder) {
	if l.mb == nil {
		l.mb = mb
	} else if l.mb != mb {
		l.mixed = true
	}
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c float64) {
	for _, vc := range l.varCoeffs {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: vc.ind, coeff: vc.coeff * c})
	}
	e.offset += l.offset * c
	if l.mb != nil {
		e.track(l.mb)
	}
	e.mixed = e.mixed || l.mixed
}

func (l *LinearExpr) evaluateSolutionValue(r *Response) float64 {
	result := l.offset

	for _, vc := range l.varCoeffs {
		result += r.Solution[vc.ind] * vc.coeff
	}

	return result
}

// merged returns the variable terms with duplicate indices summed and zero terms dropped,
// in order of first appearance.
func (l *LinearExpr) merged() ([]int32, []float64) {
	pos := make(map[VarIndex]int, len(l.varCoeffs))
	var inds []int32
	var coeffs []float64
	for _, vc := range l.varCoeffs {
		if p, ok := pos[vc.ind]; ok {
			coeffs[p] += vc.coeff
			continue
		}
		pos[vc.ind] = len(inds)
		inds = append(inds, int32(vc.ind))
		coeffs = append(coeffs, vc.coeff)
	}
	n := 0
	for i := range inds {
		if coeffs[i] == 0 {
			continue
		}
		inds[n], coeffs[n] = inds[i], coeffs[i]
		n++
	}
	return inds[:n], coeffs[:n]
}

// Var is a reference to a continuous or integer variable in the model.
type Var struct {
	ind VarIndex
	mb  *Builder
}

// Name returns the name of the variable.
func (v Var) Name() string {
	return v.mb.model.Variables[v.ind].Name
}

// Bounds returns the bounds of the variable.
func (v Var) Bounds() Bounds {
	pv := v.mb.model.Variables[v.ind]
	return NewBounds(pv.Lower, pv.Upper)
}

// IsInteger returns true if the variable is restricted to integer values.
func (v Var) IsInteger() bool {
	return v.mb.model.Variables[v.ind].Integer
}

// Index returns the index of the variable.
func (v Var) Index() VarIndex {
	return v.ind
}

// WithName sets the name of the variable.
func (v Var) WithName(s string) Var {
	v.mb.model.Variables[v.ind].Name = s
	return v
}

func (v Var) addToLinearExpr(e *LinearExpr, c float64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: v.ind, coeff: c})
	e.track(v.mb)
}

func (v Var) evaluateSolutionValue(r *Response) float64 {
	return r.Solution[v.ind]
}

// BoolVar is a reference to a binary variable in the model.
type BoolVar struct {
	ind VarIndex
	mb  *Builder
}

// Name returns the name of the variable.
func (b BoolVar) Name() string {
	return b.mb.model.Variables[b.ind].Name
}

// Index returns the index of the variable.
func (b BoolVar) Index() VarIndex {
	return b.ind
}

// WithName sets the name of the variable.
func (b BoolVar) WithName(s string) BoolVar {
	b.mb.model.Variables[b.ind].Name = s
	return b
}

func (b BoolVar) addToLinearExpr(e *LinearExpr, c float64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: b.ind, coeff: c})
	e.track(b.mb)
}

func (b BoolVar) evaluateSolutionValue(r *Response) float64 {
	return r.Solution[b.ind]
}

// Constraint is a reference to a linear constraint in the model.
type Constraint struct {
	ind ConstrIndex
	mb  *Builder
}

// WithName sets the name of the constraint.
func (c Constraint) WithName(s string) Constraint {
	c.mb.model.Constraints[c.ind].Name = s
	return c
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.mb.model.Constraints[c.ind].Name
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// Bounds returns the row bounds of the constraint, i.e. after the expression offset has been
// moved to the right-hand side.
func (c Constraint) Bounds() Bounds {
	ct := c.mb.model.Constraints[c.ind]
	return NewBounds(ct.Lower, ct.Upper)
}

// setErrorf records the first error reported on the builder.
func (mb *Builder) setErrorf(format string, a ...any) {
	err := fmt.Errorf(format, a...)
	log.Errorf("%v; use `-log_backtrace_at` flag to get the error stack", err)
	if mb.err == nil {
		mb.err = err
	}
}

// checkSameModelAndSetErrorf returns true if `le` only references variables of `mb`.
// If false, an error with the error message `format` is set on `mb` if `mb.err`
// is nil.
func (mb *Builder) checkSameModelAndSetErrorf(le *LinearExpr, format string, a ...any) bool {
	if !le.mixed && (le.mb == nil || le.mb == mb) {
		return true
	}
	args := make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = ErrMixedModels
	mb.setErrorf(format+": %w", args...)
	return false
}

// Builder provides a wrapper for the Model builder.
type Builder struct {
	model *Model
	// The first and only the first error is reported in Model.
	err error
}

// NewMipModelBuilder creates and returns a new MIP model Builder.
func NewMipModelBuilder() *Builder {
	return &Builder{model: &Model{}}
}

// SetName sets the name of the model.
func (mb *Builder) SetName(name string) *Builder {
	mb.model.Name = name
	return mb
}

// NumVariables returns the number of variables created so far.
func (mb *Builder) NumVariables() int {
	return len(mb.model.Variables)
}

// NumConstraints returns the number of linear constraints added so far.
func (mb *Builder) NumConstraints() int {
	return len(mb.model.Constraints)
}

func (mb *Builder) newVar(lb, ub float64, integer bool) VarIndex {
	ind := VarIndex(len(mb.model.Variables))
	if b := NewBounds(lb, ub); b.IsEmpty() {
		mb.setErrorf("variable %v created with bounds %v: %w", ind, b, ErrEmptyBounds)
	}
	mb.model.Variables = append(mb.model.Variables, &Variable{Lower: lb, Upper: ub, Integer: integer})
	return ind
}

// NewVar creates a new continuous variable with bounds `[lb,ub]`. Use math.Inf for an
// unbounded side.
func (mb *Builder) NewVar(lb, ub float64) Var {
	return Var{ind: mb.newVar(lb, ub, false), mb: mb}
}

// NewIntVar creates a new integer variable with bounds `[lb,ub]`.
func (mb *Builder) NewIntVar(lb, ub float64) Var {
	return Var{ind: mb.newVar(lb, ub, true), mb: mb}
}

// NewBoolVar creates a new binary variable.
func (mb *Builder) NewBoolVar() BoolVar {
	return BoolVar{ind: mb.newVar(0, 1, true), mb: mb}
}

// NewConstant creates a continuous variable fixed to `v`.
func (mb *Builder) NewConstant(v float64) Var {
	return mb.NewVar(v, v)
}

// addLinearConstraint adds a linear constraint that enforces the value of `le` to be in
// `bounds`. The constant offset of `le` is subtracted from the bounds.
func (mb *Builder) addLinearConstraint(le *LinearExpr, bounds Bounds) Constraint {
	ind := ConstrIndex(len(mb.model.Constraints))
	mb.checkSameModelAndSetErrorf(le, "invalid expression added to constraint %v", ind)
	rhs := bounds.Offset(-le.offset)
	if rhs.IsEmpty() {
		mb.setErrorf("constraint %v created with bounds %v: %w", ind, rhs, ErrEmptyBounds)
	}
	vars, coeffs := le.merged()
	mb.model.Constraints = append(mb.model.Constraints, &LinearConstraint{
		Lower:       rhs.Lower,
		Upper:       rhs.Upper,
		VarIndex:    vars,
		Coefficient: coeffs,
	})
	return Constraint{ind: ind, mb: mb}
}

// AddLinearConstraint adds the linear constraint `lb <= expr <= ub`.
func (mb *Builder) AddLinearConstraint(expr LinearArgument, lb, ub float64) Constraint {
	return mb.addLinearConstraint(NewLinearExpr().Add(expr), NewBounds(lb, ub))
}

// AddEquality adds the linear constraint `lhs == rhs`.
func (mb *Builder) AddEquality(lhs LinearArgument, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)

	return mb.addLinearConstraint(diff, NewFixedBounds(0))
}

// AddLessOrEqual adds the linear constraint `lhs <= rhs`.
func (mb *Builder) AddLessOrEqual(lhs LinearArgument, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)

	return mb.addLinearConstraint(diff, AtMost(0))
}

// AddGreaterOrEqual adds the linear constraint `lhs >= rhs`.
func (mb *Builder) AddGreaterOrEqual(lhs LinearArgument, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)

	return mb.addLinearConstraint(diff, AtLeast(0))
}

// AddAtMostOne adds the constraint that at most one of the binary variables is set.
func (mb *Builder) AddAtMostOne(bvs ...BoolVar) Constraint {
	sum := NewLinearExpr()
	for _, bv := range bvs {
		sum.Add(bv)
	}
	return mb.addLinearConstraint(sum, AtMost(1))
}

func (mb *Builder) setObjective(obj LinearArgument, maximize bool) {
	o := NewLinearExpr().Add(obj)
	if !mb.checkSameModelAndSetErrorf(o, "invalid expression set as objective") {
		return
	}
	for _, v := range mb.model.Variables {
		v.ObjectiveCoefficient = 0
	}
	vars, coeffs := o.merged()
	for i, ind := range vars {
		mb.model.Variables[ind].ObjectiveCoefficient = coeffs[i]
	}
	mb.model.ObjectiveOffset = o.offset
	mb.model.Maximize = maximize
}

// Minimize sets a linear minimization objective, replacing any previous objective.
func (mb *Builder) Minimize(obj LinearArgument) {
	mb.setObjective(obj, false)
}

// Maximize sets a linear maximization objective, replacing any previous objective.
func (mb *Builder) Maximize(obj LinearArgument) {
	mb.setObjective(obj, true)
}

// Model returns the built model. The model returned is a pointer to the model in Builder,
// and if modified, future calls to the Builder API can result in an invalid model.
//
// Model returns an error when invalid parameters have been used during model building (e.g.
// passing variables from other builders, or empty bounds).
func (mb *Builder) Model() (*Model, error) {
	if mb.err != nil {
		return nil, mb.err
	}
	return mb.model, nil
}

// Variable is the description of one column of the model.
type Variable struct {
	Name                 string
	Lower                float64
	Upper                float64
	Integer              bool
	ObjectiveCoefficient float64
}

// LinearConstraint is the description of one row `Lower <= sum(Coefficient[i]*x[VarIndex[i]]) <= Upper`.
type LinearConstraint struct {
	Name        string
	Lower       float64
	Upper       float64
	VarIndex    []int32
	Coefficient []float64
}

// Model is a mixed-integer linear program.
type Model struct {
	Name            string
	Maximize        bool
	ObjectiveOffset float64
	Variables       []*Variable
	Constraints     []*LinearConstraint
}

// NumIntegerVariables returns the number of integer (including binary) variables.
func (m *Model) NumIntegerVariables() int {
	n := 0
	for _, v := range m.Variables {
		if v.Integer {
			n++
		}
	}
	return n
}

// Validate returns an error describing the first structural problem of the model, or nil.
func (m *Model) Validate() error {
	if m == nil {
		return errors.New("nil model")
	}
	if math.IsNaN(m.ObjectiveOffset) || math.IsInf(m.ObjectiveOffset, 0) {
		return fmt.Errorf("objective offset %v is not finite", m.ObjectiveOffset)
	}
	for i, v := range m.Variables {
		if b := NewBounds(v.Lower, v.Upper); b.IsEmpty() {
			return fmt.Errorf("variable %d (%q) has bounds %v: %w", i, v.Name, b, ErrEmptyBounds)
		}
		if math.IsNaN(v.ObjectiveCoefficient) || math.IsInf(v.ObjectiveCoefficient, 0) {
			return fmt.Errorf("variable %d (%q) has objective coefficient %v", i, v.Name, v.ObjectiveCoefficient)
		}
	}
	for i, ct := range m.Constraints {
		if b := NewBounds(ct.Lower, ct.Upper); b.IsEmpty() {
			return fmt.Errorf("constraint %d (%q) has bounds %v: %w", i, ct.Name, b, ErrEmptyBounds)
		}
		if len(ct.VarIndex) != len(ct.Coefficient) {
			return fmt.Errorf("constraint %d (%q) has %d indices and %d coefficients", i, ct.Name, len(ct.VarIndex), len(ct.Coefficient))
		}
		for j, ind := range ct.VarIndex {
			if ind < 0 || int(ind) >= len(m.Variables) {
				return fmt.Errorf("constraint %d (%q) references variable %d out of %d", i, ct.Name, ind, len(m.Variables))
			}
			if c := ct.Coefficient[j]; math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("constraint %d (%q) has coefficient %v", i, ct.Name, c)
			}
		}
	}
	return nil
}
