// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

// BoxClampSolver solves the specialization
//
//	minimize    0.5 ‖x − x0‖²
//	subject to  cᵀ x ≥ bl
//	            xl ≤ x ≤ xu
//
// with the same dual active-set machinery as GoldfarbIdnani but a
// closed-form initialization: clamping x0 into the box is the exact
// minimizer of the box-only problem, and the corresponding factorization
// is a permutation. It is useful on its own and as a warm-start
// initializer for the general engine.
type BoxClampSolver struct {
	GoldfarbIdnani
	sbl, sbu [1]float64
}

var _ dualEngine = (*BoxClampSolver)(nil)

// NewBoxClampSolver returns a solver preallocated for n variables.
func NewBoxClampSolver(n int) *BoxClampSolver {
	var s BoxClampSolver
	s.opts = DefaultOptions()
	s.log = newLogger("qp")
	s.Resize(n, 1, true)
	return &s
}

// Solve minimizes 0.5‖x − x0‖² under cᵀx ≥ bl and xl ≤ x ≤ xu. All slices
// must have the same length. The observers of the embedded solver report
// the result; ObjectiveValue returns 0.5‖x − x0‖².
func (s *BoxClampSolver) Solve(x0, c []float64, bl float64, xl, xu []float64) Status {
	n := len(x0)
	s.log.Reset()
	if len(c) != n || len(xl) != n || len(xu) != n {
		panic("qp: dimension mismatch")
	}

	s.Resize(n, 1, true)
	s.sbl[0] = bl
	s.sbu[0] = math.Inf(1)
	s.av = x0
	s.c = blas64.General{Rows: n, Cols: 1, Stride: 1, Data: c}
	s.bl = s.sbl[:]
	s.bu = s.sbu[:]
	s.xl, s.xu = xl, xu

	s.log.Log(LogInput|LogNoIter, "x0", x0, "c", s.c, "bl", bl, "xl", xl, "xu", xu)

	for i := range xl {
		if xl[i] > xu[i] {
			return s.terminate(InconsistentInput)
		}
	}

	return s.runDual(s)
}

// initialize clamps x0 into the box. The active bounds take the leading
// columns of J and R in activation order; each free variable i takes a
// trailing column, so that J is a permutation matrix and R a diagonal of
// ±1.
func (s *BoxClampSolver) initialize() Status {
	n := s.n
	s.a.reset()

	jd := s.wJ.vec(n * n)
	for i := range jd {
		jd[i] = 0
	}
	rd := s.wR.data
	x := s.x[:n]
	u := s.u
	x0 := s.av

	q := 0
	s.f = 0
	for i := 0; i < n; i++ {
		switch {
		case x0[i] < s.xl[i]:
			x[i] = s.xl[i]
			u[q] = x[i] - x0[i]
			s.f += 0.5 * u[q] * u[q]
			for k := 0; k < q; k++ {
				rd[k*n+q] = 0
			}
			rd[q*n+q] = 1
			jd[i*n+q] = 1
			s.a.activate(1+i, ActiveLowerBound)
			q++
		case x0[i] > s.xu[i]:
			x[i] = s.xu[i]
			u[q] = x0[i] - x[i]
			s.f += 0.5 * u[q] * u[q]
			for k := 0; k < q; k++ {
				rd[k*n+q] = 0
			}
			rd[q*n+q] = -1
			jd[i*n+q] = 1
			s.a.activate(1+i, ActiveUpperBound)
			q++
		default:
			x[i] = x0[i]
			jd[i*n+n-i+q-1] = 1
		}
	}

	s.log.Log(LogActiveSetDetails, "x", x, "u", u[:q], "J", s.wJ.mat(n, n, n), "R", s.wR.mat(q, q, n))

	return Success
}
