// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qptest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Problem is a convex quadratic program
//
//	minimize    0.5 xᵀ G x + aᵀ x
//	subject to  bl ≤ Cᵀ x ≤ bu
//	            xl ≤ x ≤ xu   (optional)
//
// in the form consumed by the solvers of package qp: the columns of C are
// the constraint normals, and Xl, Xu are either both empty or both of
// length n.
type Problem struct {
	G      *mat.Dense
	A      []float64
	C      *mat.Dense
	Bl, Bu []float64
	Xl, Xu []float64
}

// Dims returns the number of variables and of general constraints.
func (p Problem) Dims() (n, m int) {
	return len(p.A), len(p.Bl)
}

// CheckKKT verifies that (x, u) is a Karush-Kuhn-Tucker pair of p within
// the primal tolerance tauP and dual tolerance tauD. u is indexed by
// global constraint, general constraints first, with the package qp sign
// convention: non-positive at an active lower side, non-negative at an
// active upper side. A nil return means the point passes; otherwise the
// error describes the first violation found.
func CheckKKT(x, u []float64, p Problem, tauP, tauD float64) error {
	if err := CheckStationarity(x, u, p, tauD); err != nil {
		return err
	}
	return CheckFeasibility(x, u, p, tauP, tauD)
}

// CheckStationarity verifies ‖Gx + a + C u_general + u_bound‖∞ within
// tauD·(1+‖u‖∞).
func CheckStationarity(x, u []float64, p Problem, tauD float64) error {
	n, m := p.Dims()
	checkKKTDims(x, u, p)

	dL := mat.NewVecDense(n, nil)
	dL.MulVec(p.G, mat.NewVecDense(n, x))
	dL.AddVec(dL, mat.NewVecDense(n, p.A))
	if m > 0 {
		cu := mat.NewVecDense(n, nil)
		cu.MulVec(p.C, mat.NewVecDense(m, u[:m]))
		dL.AddVec(dL, cu)
	}
	if len(p.Xl) > 0 {
		dL.AddVec(dL, mat.NewVecDense(n, u[m:]))
	}

	tauU := tauD * (1 + floats.Norm(u, math.Inf(1)))
	if r := floats.Norm(dL.RawVector().Data, math.Inf(1)); r > tauU {
		return fmt.Errorf("qptest: stationarity residual %v exceeds %v", r, tauU)
	}
	return nil
}

// CheckFeasibility verifies primal feasibility of x and complementarity
// with the signs of u for every general constraint and bound.
func CheckFeasibility(x, u []float64, p Problem, tauP, tauD float64) error {
	_, m := p.Dims()
	checkKKTDims(x, u, p)

	tauX := tauP * (1 + floats.Norm(x, math.Inf(1)))
	tauU := tauD * (1 + floats.Norm(u, math.Inf(1)))

	for i := 0; i < m; i++ {
		cx := floats.Dot(mat.Col(nil, i, p.C), x)
		if !checkKKTConstraint(cx, p.Bl[i], p.Bu[i], u[i], tauX, tauU) {
			return fmt.Errorf("qptest: constraint %d violates feasibility or complementarity: value %v in [%v, %v] with multiplier %v",
				i, cx, p.Bl[i], p.Bu[i], u[i])
		}
	}
	for i := range p.Xl {
		if !checkKKTConstraint(x[i], p.Xl[i], p.Xu[i], u[m+i], tauX, tauU) {
			return fmt.Errorf("qptest: bound %d violates feasibility or complementarity: value %v in [%v, %v] with multiplier %v",
				i, x[i], p.Xl[i], p.Xu[i], u[m+i])
		}
	}
	return nil
}

// checkKKTConstraint verifies that for a constraint bl ≤ c(x) ≤ bu with
// multiplier u one of the following holds:
//
//	(1) c(x) == bl and u ≤ -tauU
//	(2) bl ≤ c(x) ≤ bu and |u| ≤ tauU
//	(3) c(x) == bu and u ≥ tauU
func checkKKTConstraint(cx, bl, bu, u, tauX, tauU float64) bool {
	li := cx - bl
	ui := cx - bu
	b1 := math.Abs(li) <= tauX && u <= -tauU
	b2 := li >= -tauX && ui <= tauX && math.Abs(u) <= tauU
	b3 := math.Abs(ui) <= tauX && u >= tauU
	return b1 || b2 || b3
}

func checkKKTDims(x, u []float64, p Problem) {
	n, m := p.Dims()
	if len(x) != n {
		panic("qptest: solution length mismatch")
	}
	if len(p.Bu) != m {
		panic("qptest: constraint bound length mismatch")
	}
	if len(p.Xl) != len(p.Xu) || (len(p.Xl) != 0 && len(p.Xl) != n) {
		panic("qptest: variable bound length mismatch")
	}
	if len(u) != m+len(p.Xl) {
		panic("qptest: multiplier length mismatch")
	}
	if gr, gc := p.G.Dims(); gr != n || gc != n {
		panic("qptest: G dimension mismatch")
	}
	if m > 0 {
		if cr, cc := p.C.Dims(); cr != n || cc != m {
			panic("qptest: C dimension mismatch")
		}
	}
}
