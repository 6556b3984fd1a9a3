// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qptest

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Reference is the known optimum of a generated problem.
type Reference struct {
	// X is the unique minimizer.
	X []float64
	// Lambda contains the multipliers of the general constraints, in the
	// package qp sign convention: non-positive for constraints active at
	// their lower side.
	Lambda []float64
	// F is the objective value at X.
	F float64
}

// RandomProblem returns a random strictly convex quadratic program with a
// known solution, together with that solution. The problem has n
// variables and nEq+nIneq general constraints: nEq equality constraints
// first, then nIneq double-sided inequalities of which the first
// nStrongAct are strongly active at their lower side at the optimum. The
// remaining inequalities are strictly inactive. The problem has no
// variable bounds.
//
// The construction chooses the optimum and multipliers first and derives
// the linear term from the stationarity condition, so the returned
// reference is exact up to rounding. RandomProblem panics if
// nEq+nStrongAct > n or nStrongAct > nIneq.
func RandomProblem(rnd *rand.Rand, n, nEq, nIneq, nStrongAct int) (Problem, Reference) {
	if nEq+nStrongAct > n {
		panic("qptest: more active constraints than variables")
	}
	if nStrongAct > nIneq {
		panic("qptest: more strongly active inequalities than inequalities")
	}
	m := nEq + nIneq

	// G = MᵀM + I is symmetric positive definite.
	md := make([]float64, n*n)
	for i := range md {
		md[i] = rnd.NormFloat64()
	}
	M := mat.NewDense(n, n, md)
	G := mat.NewDense(n, n, nil)
	G.Mul(M.T(), M)
	for i := 0; i < n; i++ {
		G.Set(i, i, G.At(i, i)+1)
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = rnd.NormFloat64()
	}

	var C *mat.Dense
	lambda := make([]float64, m)
	bl := make([]float64, m)
	bu := make([]float64, m)
	if m > 0 {
		cd := make([]float64, n*m)
		for i := range cd {
			cd[i] = rnd.NormFloat64()
		}
		C = mat.NewDense(n, m, cd)
		for j := 0; j < m; j++ {
			cx := floats.Dot(mat.Col(nil, j, C), xs)
			switch {
			case j < nEq:
				bl[j] = cx
				bu[j] = cx
				lambda[j] = rnd.NormFloat64()
			case j < nEq+nStrongAct:
				// Strongly active at the lower side.
				bl[j] = cx
				bu[j] = cx + 1 + rnd.Float64()
				lambda[j] = -0.2 - rnd.Float64()
			default:
				bl[j] = cx - 0.2 - rnd.Float64()
				bu[j] = cx + 0.2 + rnd.Float64()
			}
		}
	}

	// Stationarity fixes a: a = −(G x* + C λ).
	av := mat.NewVecDense(n, nil)
	av.MulVec(G, mat.NewVecDense(n, xs))
	if m > 0 {
		cl := mat.NewVecDense(n, nil)
		cl.MulVec(C, mat.NewVecDense(m, lambda))
		av.AddVec(av, cl)
	}
	a := make([]float64, n)
	for i := range a {
		a[i] = -av.AtVec(i)
	}

	p := Problem{G: G, A: a, C: C, Bl: bl, Bu: bu}
	f := 0.5*mat.Inner(mat.NewVecDense(n, xs), G, mat.NewVecDense(n, xs)) + floats.Dot(a, xs)
	return p, Reference{X: xs, Lambda: lambda, F: f}
}

// BoxAndSingleConstraintProblem returns data for a random instance of the
// problem solved by qp.BoxClampSolver: a point x0, a box [xl, xu] and a
// constraint cᵀx ≥ b. If act is true, b is chosen so that the constraint
// is active at the solution, with actLevel in (0, 1) interpolating between
// barely active and the feasibility limit; otherwise the constraint does
// not intersect the box.
func BoxAndSingleConstraintProblem(rnd *rand.Rand, n int, act bool, actLevel float64) (x0, c []float64, b float64, xl, xu []float64) {
	if act && (actLevel <= 0 || actLevel >= 1) {
		panic("qptest: actLevel must be strictly between 0 and 1")
	}

	uniform := func() float64 { return 2*rnd.Float64() - 1 }
	x0 = make([]float64, n)
	xl = make([]float64, n)
	xu = make([]float64, n)
	xb := make([]float64, n) // closest point to x0 inside the box
	for i := 0; i < n; i++ {
		x0[i] = uniform()
		r1, r2 := uniform(), uniform()
		xl[i] = min(r1, r2)
		xu[i] = max(r1, r2)
		xb[i] = min(max(x0[i], xl[i]), xu[i])
	}

	c = make([]float64, n)
	for i := range c {
		c[i] = uniform()
	}
	// Box corners nearest and furthest in the direction of c.
	sl := make([]float64, n)
	su := make([]float64, n)
	for i := 0; i < n; i++ {
		if c[i] > 0 {
			sl[i] = xl[i]
			su[i] = xu[i]
		} else {
			sl[i] = xu[i]
			su[i] = xl[i]
		}
	}

	if act {
		d1 := floats.Dot(c, xb) // smallest b making the constraint active
		d2 := floats.Dot(c, su) // largest b keeping the problem feasible
		b = actLevel*d1 + (1-actLevel)*d2
	} else {
		b = floats.Dot(c, sl) // the constraint does not cut the box
	}
	return x0, c, b, xl, xu
}
