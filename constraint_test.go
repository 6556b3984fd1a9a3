// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"testing"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

func TestConstraintNormal(t *testing.T) {
	// C is 3×2, column-per-constraint.
	c := blas64.General{
		Rows: 3, Cols: 2, Stride: 2,
		Data: []float64{
			1, 4,
			2, 5,
			3, 6,
		},
	}
	// M is 3×3.
	m := blas64.General{
		Rows: 3, Cols: 3, Stride: 3,
		Data: []float64{
			1, 0, 2,
			0, 1, 1,
			1, 1, 0,
		},
	}
	v := []float64{1, -1, 2}

	// explicit returns the dense signed normal of sc.
	explicit := func(sc selectedConstraint) []float64 {
		nrm := make([]float64, 3)
		switch sc.status {
		case ActiveEquality, ActiveLower:
			for i := 0; i < 3; i++ {
				nrm[i] = c.Data[i*c.Stride+sc.index]
			}
		case ActiveUpper:
			for i := 0; i < 3; i++ {
				nrm[i] = -c.Data[i*c.Stride+sc.index]
			}
		case ActiveLowerBound, ActiveFixed:
			nrm[sc.index-c.Cols] = 1
		case ActiveUpperBound:
			nrm[sc.index-c.Cols] = -1
		}
		return nrm
	}

	for _, sc := range []selectedConstraint{
		{0, ActiveLower},
		{0, ActiveUpper},
		{1, ActiveEquality},
		{2, ActiveLowerBound},
		{3, ActiveUpperBound},
		{4, ActiveFixed},
	} {
		cn := constraintNormal{c: c, sc: sc}
		nrm := explicit(sc)

		if got, want := cn.dot(v), floats.Dot(nrm, v); got != want {
			t.Errorf("%d/%v: dot = %v, want %v", sc.index, sc.status, got, want)
		}

		var want [3]float64
		blas64.Gemv(blas.Trans, 1, m, vector(nrm), 0, vector(want[:]))
		var got [3]float64
		cn.preMultiplyByMt(got[:], m)
		if !floats.EqualApprox(got[:], want[:], 1e-15) {
			t.Errorf("%d/%v: Mᵀn = %v, want %v", sc.index, sc.status, got, want)
		}
	}
}

func TestConstraintNormalBndIndex(t *testing.T) {
	c := blas64.General{Rows: 2, Cols: 3, Stride: 3, Data: make([]float64, 6)}
	cn := constraintNormal{c: c, sc: selectedConstraint{index: 4, status: ActiveLowerBound}}
	if got := cn.bndIndex(); got != 1 {
		t.Errorf("bndIndex = %d, want 1", got)
	}
}
