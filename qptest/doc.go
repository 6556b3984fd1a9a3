// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qptest provides support for testing quadratic programming
// solvers: optimality condition checks and generators of random problems
// with a known solution.
package qptest // import "gonum.org/v1/qp/qptest"
