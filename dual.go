// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// dualEngine is the set of primitives a concrete engine provides to the
// generic dual active-set loop. The driver owns the iteration structure;
// the engine owns the factorizations and the numerical step computations.
type dualEngine interface {
	// initialize produces the initial primal-dual point, the objective
	// value and the initial factorization, including the initial active
	// set.
	initialize() Status

	// selectViolated returns the constraint with the most negative signed
	// slack at x, or a selectedConstraint with status Inactive if x is
	// feasible.
	selectViolated(x []float64) selectedConstraint

	// computeStep fills z with the primal step direction and r with the
	// dual step direction for the candidate constraint sc. r has length
	// equal to the current number of active constraints.
	computeStep(z, r []float64, sc selectedConstraint)

	// stepLength returns the dual blocking step t1 with its argmin l, and
	// the primal full step t2.
	stepLength(sc selectedConstraint, x, u, z, r []float64) (t1, t2 float64, l int)

	// addConstraint updates the factorization for the constraint that was
	// just activated. It reports whether the new constraint normal is
	// linearly independent from the active ones.
	addConstraint(sc selectedConstraint) bool

	// removeConstraint updates the factorization after the l-th active
	// constraint was deactivated.
	removeConstraint(l int)

	// normalDot returns n⁺ᵀ v for the candidate constraint, with the sign
	// convention folding the active side into the normal.
	normalDot(sc selectedConstraint, v []float64) float64
}

// dualState is the engine-independent part of a dual active-set solver:
// problem-size bookkeeping, the active set, the primal-dual iterates and
// the generic iteration loop.
type dualState struct {
	opts SolverOptions
	log  Logger

	n int
	a activeSet

	x, z []float64 // length n
	u, r []float64 // capacity m + number of bounds
	f    float64
	it   int

	needExpandMultipliers bool
}

// resizeDriver reallocates the driver-owned buffers for a problem with n
// variables, m general constraints and nBnd bounds. Buffers are reused
// when their dimensions are unchanged.
func (s *dualState) resizeDriver(n, m, nBnd int) {
	if n != s.n {
		s.x = make([]float64, n)
		s.z = make([]float64, n)
		s.n = n
	}
	// u doubles as storage for the expanded multipliers, so it must hold
	// one value per constraint and bound, not only per active constraint.
	if m+nBnd != len(s.u) {
		s.u = make([]float64, m+nBnd)
		s.r = make([]float64, m+nBnd)
	}
	if m != s.a.nCstr || nBnd != s.a.nBnd {
		s.a.resize(m, nBnd)
	}
}

// runDual is the classical dual active-set loop of Goldfarb and Idnani,
// generic over the engine primitives.
func (s *dualState) runDual(e dualEngine) Status {
	s.needExpandMultipliers = true
	if !s.opts.WarmStart {
		s.a.reset()
	}
	s.it = 0
	if st := e.initialize(); st != Success {
		return s.terminate(st)
	}

	skipStep1 := false
	var sc selectedConstraint
	x := s.x[:s.n]
	z := s.z[:s.n]
	u := s.u[:s.a.nActive()]
	r := s.r[:0]

	for ; s.it < s.opts.MaxIter; s.it++ {
		s.log.StartIter(s.it)
		if s.log.enabled(LogActiveSetDetails) {
			s.log.Log(LogActiveSetDetails, "activeSet", s.a.active, "status", s.a.status)
		}
		q := s.a.nActive()
		if s.log.enabled(LogIterationBasic) {
			s.log.Log(LogIterationBasic, "x", x, "u", u, "f", s.f)
		}

		// Step 1: pick the most violated constraint, or stop.
		if !skipStep1 {
			sc = e.selectViolated(x)
			if sc.status == Inactive {
				return s.terminate(Success)
			}
			if s.log.enabled(LogActiveSet) {
				s.log.Log(LogActiveSet, "selected", sc.index, "side", int(sc.status))
			}
			r = s.r[:q]
			u = s.u[:q+1]
			u[q] = 0
		}

		// Step 2: step directions and step lengths.
		e.computeStep(z, r, sc)
		t1, t2, l := e.stepLength(sc, x, u[:q], z, r)
		t := math.Min(t1, t2)
		if s.log.enabled(LogIterationBasic) {
			s.log.Log(LogIterationBasic, "z", z, "r", r, "t", t, "t1", t1, "t2", t2)
		}

		if t >= s.opts.BigBnd {
			return s.terminate(Infeasible)
		}

		if t2 >= s.opts.BigBnd {
			// No primal progress is possible; take the dual step and drop
			// the blocking constraint, keeping the same candidate.
			floats.AddScaled(u[:q], -t, r)
			u[q] += t
			if s.log.enabled(LogActiveSet) {
				s.log.Log(LogActiveSet, "drop", s.a.index(l))
			}
			s.deactivateConstraint(e, l)
			r = s.r[:q-1]
			u = s.u[:q]
			skipStep1 = true
			continue
		}

		floats.AddScaled(x, t, z)
		s.f += t * e.normalDot(sc, z) * (0.5*t + u[q])
		floats.AddScaled(u[:q], -t, r)
		u[q] += t
		if t == t2 {
			// Full step: the candidate becomes active.
			s.a.activate(sc.index, sc.status)
			if !e.addConstraint(sc) {
				return s.terminate(LinearDependency)
			}
			if s.log.enabled(LogActiveSet) {
				s.log.Log(LogActiveSet, "add", sc.index)
			}
			skipStep1 = false
		} else {
			// Partial step: drop the blocking constraint and retry the
			// same candidate.
			if s.log.enabled(LogActiveSet) {
				s.log.Log(LogActiveSet, "drop", s.a.index(l))
			}
			s.deactivateConstraint(e, l)
			r = s.r[:q-1]
			u = s.u[:q]
			skipStep1 = true
		}
	}
	return s.terminate(MaxIterReached)
}

// deactivateConstraint removes the l-th active constraint from the active
// set, the multiplier vector and the engine factorization. The candidate
// slot of u, when there is one, shifts down with the rest.
func (s *dualState) deactivateConstraint(e dualEngine, l int) {
	q := s.a.nActive()
	// There is no candidate slot when every constraint is already active.
	top := min(q+1, len(s.u))
	copy(s.u[l:top-1], s.u[l+1:top])
	s.a.deactivate(l)
	e.removeConstraint(l)
}

func (s *dualState) terminate(status Status) Status {
	switch status {
	case Success:
		s.log.Comment(LogTermination, "optimum reached")
	case InconsistentInput:
		s.log.Comment(LogTermination, "inconsistent inputs")
	case NonPosDefHessian:
		s.log.Comment(LogTermination, "the quadratic matrix is not (numerically) positive definite")
	case Infeasible:
		s.log.Comment(LogTermination, "infeasible problem")
	case MaxIterReached:
		s.log.Comment(LogTermination, "maximum number of iterations reached")
	case LinearDependency:
		s.log.Comment(LogTermination, "attempting to add a linearly dependent constraint")
	case Overconstrained:
		s.log.Comment(LogTermination, "too many equality constraints and fixed variables")
	}
	s.log.Log(LogTermination, "status", int(status))
	return status
}

// expandMultipliers converts the compact non-negative multipliers of the
// active constraints into a full-length vector indexed by global
// constraint, restoring the external sign convention: negative for
// lower-side activations, positive for upper-side ones. The result is
// written over u.
func (s *dualState) expandMultipliers() {
	if !s.needExpandMultipliers {
		return
	}
	s.needExpandMultipliers = false
	q := s.a.nActive()
	compact := s.r[:q]
	copy(compact, s.u[:q])
	all := s.u[:s.a.nAll()]
	for i := range all {
		all[i] = 0
	}
	for k := 0; k < q; k++ {
		i := s.a.index(k)
		switch s.a.activationStatus(i) {
		case ActiveUpper, ActiveUpperBound:
			all[i] = compact[k]
		default:
			all[i] = -compact[k]
		}
	}
}
