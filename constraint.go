// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// selectedConstraint identifies a constraint and the side under
// consideration. It carries no reference to problem data.
type selectedConstraint struct {
	index  int
	status ActivationStatus
}

// constraintNormal binds a selected constraint to the constraint matrix C
// to represent the vector n⁺ of a constraint n⁺ᵀx ⋛ b without ever
// materializing it. For a general constraint n⁺ is ±C[:,p]; for a bound it
// is ±e_{p-m}. The sign folds the active side into the normal so that the
// multipliers of active constraints can all be kept non-negative.
type constraintNormal struct {
	c  blas64.General // n×m, column p is the normal of general constraint p
	sc selectedConstraint
}

// bndIndex returns the index of the constraint seen as a bound, that is
// index - m.
func (cn constraintNormal) bndIndex() int {
	return cn.sc.index - cn.c.Cols
}

// col returns column p of C as a strided vector.
func (cn constraintNormal) col() blas64.Vector {
	return blas64.Vector{
		N:    cn.c.Rows,
		Data: cn.c.Data[cn.sc.index:],
		Inc:  cn.c.Stride,
	}
}

// dot returns n⁺ᵀ v.
func (cn constraintNormal) dot(v []float64) float64 {
	x := blas64.Vector{N: len(v), Data: v, Inc: 1}
	switch cn.sc.status {
	case ActiveEquality, ActiveLower:
		return blas64.Dot(cn.col(), x)
	case ActiveUpper:
		return -blas64.Dot(cn.col(), x)
	case ActiveFixed, ActiveLowerBound:
		return v[cn.bndIndex()]
	case ActiveUpperBound:
		return -v[cn.bndIndex()]
	default:
		panic("qp: inactive constraint normal")
	}
}

// preMultiplyByMt computes dst = Mᵀ n⁺. For bound-class statuses this is a
// signed copy of a row of M.
func (cn constraintNormal) preMultiplyByMt(dst []float64, m blas64.General) {
	y := blas64.Vector{N: len(dst), Data: dst, Inc: 1}
	switch cn.sc.status {
	case ActiveEquality, ActiveLower:
		blas64.Gemv(blas.Trans, 1, m, cn.col(), 0, y)
	case ActiveUpper:
		blas64.Gemv(blas.Trans, -1, m, cn.col(), 0, y)
	case ActiveFixed, ActiveLowerBound:
		row := m.Data[cn.bndIndex()*m.Stride:]
		copy(dst, row[:m.Cols])
	case ActiveUpperBound:
		row := m.Data[cn.bndIndex()*m.Stride:]
		for j := 0; j < m.Cols; j++ {
			dst[j] = -row[j]
		}
	default:
		panic("qp: inactive constraint normal")
	}
}
