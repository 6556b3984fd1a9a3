// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qptest

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestRandomProblem(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, test := range []struct {
		n, nEq, nIneq, nStrongAct int
	}{
		{n: 5, nEq: 2, nIneq: 6, nStrongAct: 3},
		{n: 3, nEq: 0, nIneq: 5, nStrongAct: 0},
		{n: 4, nEq: 4, nIneq: 0, nStrongAct: 0},
		{n: 2, nEq: 0, nIneq: 0, nStrongAct: 0},
	} {
		p, ref := RandomProblem(rnd, test.n, test.nEq, test.nIneq, test.nStrongAct)

		n, m := p.Dims()
		if n != test.n || m != test.nEq+test.nIneq {
			t.Errorf("unexpected dimensions (%d, %d)", n, m)
		}

		// G is symmetric.
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				if p.G.At(i, j) != p.G.At(j, i) {
					t.Errorf("G is not symmetric at (%d, %d)", i, j)
				}
			}
		}

		// The reference point satisfies its own optimality conditions.
		if err := CheckKKT(ref.X, ref.Lambda, p, 1e-10, 1e-10); err != nil {
			t.Errorf("reference point fails its KKT conditions: %v", err)
		}

		// Equality constraints are tight, strongly active inequalities sit
		// on their lower side with a strictly negative multiplier, and the
		// rest are strictly slack with zero multiplier.
		for j := 0; j < m; j++ {
			cx := floats.Dot(mat.Col(nil, j, p.C), ref.X)
			switch {
			case j < test.nEq:
				if p.Bl[j] != p.Bu[j] {
					t.Errorf("equality %d has distinct sides", j)
				}
			case j < test.nEq+test.nStrongAct:
				if math.Abs(cx-p.Bl[j]) > 1e-12 {
					t.Errorf("strong inequality %d is not tight", j)
				}
				if ref.Lambda[j] > -0.2 {
					t.Errorf("strong inequality %d has multiplier %v", j, ref.Lambda[j])
				}
			default:
				if cx-p.Bl[j] < 0.19 || p.Bu[j]-cx < 0.19 {
					t.Errorf("inactive inequality %d is nearly tight", j)
				}
				if ref.Lambda[j] != 0 {
					t.Errorf("inactive inequality %d has multiplier %v", j, ref.Lambda[j])
				}
			}
		}

		// The objective value matches the reference point.
		f := 0.5*mat.Inner(mat.NewVecDense(n, ref.X), p.G, mat.NewVecDense(n, ref.X)) + floats.Dot(p.A, ref.X)
		if math.Abs(f-ref.F) > 1e-12*(1+math.Abs(ref.F)) {
			t.Errorf("objective mismatch: %v != %v", f, ref.F)
		}
	}
}

func TestBoxAndSingleConstraintProblem(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for cas := 0; cas < 20; cas++ {
		n := 1 + rnd.Intn(8)
		act := cas%2 == 0
		x0, c, b, xl, xu := BoxAndSingleConstraintProblem(rnd, n, act, 0.5)
		if len(x0) != n || len(c) != n || len(xl) != n || len(xu) != n {
			t.Fatalf("case %d: bad lengths", cas)
		}
		for i := 0; i < n; i++ {
			if xl[i] > xu[i] {
				t.Errorf("case %d: inverted box at %d", cas, i)
			}
		}

		// The problem must be feasible: the box corner furthest along c
		// satisfies the constraint.
		var su float64
		for i := 0; i < n; i++ {
			if c[i] > 0 {
				su += c[i] * xu[i]
			} else {
				su += c[i] * xl[i]
			}
		}
		if su < b-1e-12 {
			t.Errorf("case %d: infeasible instance", cas)
		}

		if !act {
			// The clamp of x0 satisfies the constraint: it is the solution.
			var cb float64
			for i := 0; i < n; i++ {
				cb += c[i] * math.Min(math.Max(x0[i], xl[i]), xu[i])
			}
			if cb < b-1e-12 {
				t.Errorf("case %d: inactive instance cuts the box", cas)
			}
		}
	}
}
