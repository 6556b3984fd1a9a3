// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qp implements a dense convex quadratic programming solver of the
// Goldfarb-Idnani family. It finds the minimizer of
//
//	minimize    0.5 xᵀ G x + aᵀ x
//	subject to  bl ≤ Cᵀ x ≤ bu
//	            xl ≤ x ≤ xu   (optional)
//
// where G is a symmetric positive definite n×n matrix, the columns of the
// n×m matrix C are the constraint normals, and equality constraints are
// expressed by setting bl[i] == bu[i] (respectively xl[i] == xu[i] for a
// fixed variable).
//
// The solver is a dual active-set method: it starts from the unconstrained
// minimizer (dual feasible by construction) and activates violated
// constraints one at a time, maintaining a Cholesky factor L of G together
// with a QR factorization of the active constraint normals in the metric
// induced by G. Each iteration costs O(n²).
//
// Solvers in this package are stateful and not safe for concurrent use.
// Distinct instances are independent.
package qp // import "gonum.org/v1/qp"
