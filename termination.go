// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

// Status indicates the reason a solve terminated.
type Status int

const (
	// Success indicates that an optimum satisfying all constraints was found.
	Success Status = iota
	// InconsistentInput indicates that the problem data are not consistent
	// with one another, for example inverted bounds.
	InconsistentInput
	// NonPosDefHessian indicates that the quadratic matrix of the problem
	// is not (numerically) positive definite.
	NonPosDefHessian
	// Infeasible indicates that no point satisfies all the constraints.
	Infeasible
	// MaxIterReached indicates that the iteration budget was exhausted
	// before an optimum was found. See SolverOptions.MaxIter.
	MaxIterReached
	// LinearDependency indicates that the solver attempted to activate a
	// constraint whose normal is linearly dependent on the normals of the
	// currently active constraints.
	LinearDependency
	// Overconstrained indicates that more than n equality constraints and
	// fixed variables were requested for an n-variable problem.
	Overconstrained
	// StatusUnknown is reserved for states the solver cannot classify.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case InconsistentInput:
		return "inconsistent input"
	case NonPosDefHessian:
		return "non positive definite Hessian"
	case Infeasible:
		return "infeasible problem"
	case MaxIterReached:
		return "maximum number of iterations reached"
	case LinearDependency:
		return "linearly dependent constraint activation"
	case Overconstrained:
		return "overconstrained problem"
	default:
		return "unknown status"
	}
}
