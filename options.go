// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import "io"

// GFactorization describes which form of the factorization of G the caller
// is passing in the G slot of Solve.
type GFactorization int

const (
	// GFactorizationNone indicates that G itself is passed. The solver
	// computes the Cholesky factorization in place, overwriting G.
	GFactorizationNone GFactorization = iota
	// GFactorizationL indicates that the lower-triangular Cholesky factor
	// L of G is passed.
	GFactorizationL
	// GFactorizationLInv indicates that L⁻¹ is passed, as a lower
	// triangular matrix.
	GFactorizationLInv
	// GFactorizationLTInv indicates that L⁻ᵀ is passed, as an upper
	// triangular matrix.
	GFactorizationLTInv
	// GFactorizationLTInvQ indicates that the dense product L⁻ᵀQ is
	// passed, where Q is the orthogonal factor associated with a
	// precomputed R (see SolverOptions.RIsGiven).
	GFactorizationLTInvQ
)

// SolverOptions control the behavior of a solver. The zero value is not
// usable; start from DefaultOptions.
type SolverOptions struct {
	// MaxIter is the maximum number of iterations of the main loop.
	MaxIter int

	// BigBnd is the value at or above which a bound is treated as
	// infinite. A step length reaching it signals an unbounded dual ray,
	// that is an infeasible problem.
	BigBnd float64

	// ZeroStepThreshold is the Euclidean norm below which the primal step
	// direction z is treated as zero. The default is an absolute 1e-14;
	// callers solving badly scaled problems should set a value
	// commensurate with their data.
	ZeroStepThreshold float64

	// WarmStart enables reuse of the activation statuses from the previous
	// solve (or of an explicitly supplied status vector) as the initial
	// active set.
	WarmStart bool

	// EqualityFirst activates all equality constraints and fixed variables
	// before any factorization work.
	EqualityFirst bool

	// RIsGiven indicates that the R factor for the equality-only active
	// set has been supplied through SetPrecomputedR. It requires
	// EqualityFirst and GFactorizationLTInvQ.
	RIsGiven bool

	// GFactorization tells the solver how to interpret the matrix passed
	// in the G slot of Solve.
	GFactorization GFactorization

	// LogFlags filters the records emitted to LogWriter. Zero disables
	// logging entirely.
	LogFlags LogFlags

	// LogWriter is the sink for log records. If nil, logging is disabled
	// regardless of LogFlags.
	LogWriter io.Writer
}

// DefaultOptions returns the options documented in the package: 500
// iterations, infinity threshold 1e100 and zero-step threshold 1e-14, with
// logging disabled.
func DefaultOptions() SolverOptions {
	return SolverOptions{
		MaxIter:           500,
		BigBnd:            1e100,
		ZeroStepThreshold: 1e-14,
	}
}
