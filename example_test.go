// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gonum.org/v1/qp"
)

func ExampleGoldfarbIdnani() {
	// Minimize 0.5 xᵀGx + aᵀx subject to x₁+x₂ ≥ 2 and 0 ≤ x ≤ 10.
	g := mat.NewDense(2, 2, []float64{
		4, -2,
		-2, 4,
	})
	a := []float64{6, 0}
	c := mat.NewDense(2, 1, []float64{1, 1})

	s := qp.NewGoldfarbIdnani(2, 1, true)
	status := s.Solve(g, a, c,
		[]float64{2}, []float64{10}, // 2 ≤ x₁+x₂ ≤ 10
		[]float64{0, 0}, []float64{10, 10}, // 0 ≤ x ≤ 10
	)

	x := s.Solution()
	fmt.Printf("status: %v\n", status)
	fmt.Printf("x: [%.4f %.4f]\n", x[0], x[1])
	fmt.Printf("objective: %.4f\n", s.ObjectiveValue())
	fmt.Printf("constraint multiplier: %.4f\n", s.Multipliers()[0])
	// Output:
	// status: success
	// x: [0.5000 1.5000]
	// objective: 6.5000
	// constraint multiplier: -5.0000
}
