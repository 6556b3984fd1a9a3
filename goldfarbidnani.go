// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

const (
	// dualFloor is the magnitude below which an initial multiplier is not
	// considered negative during the post-init cleanup.
	dualFloor = 1e-14
	// depTol is the relative pivot threshold below which a newly activated
	// constraint normal is declared linearly dependent.
	depTol = 1e-14
)

// GoldfarbIdnani is a dense dual active-set solver for strictly convex
// quadratic programs. It maintains the Cholesky factor L of G, the matrix
// J = L⁻ᵀQ and the triangular factor R of the QR decomposition of L⁻¹N,
// where the columns of N are the active constraint normals.
//
// A GoldfarbIdnani is reusable across solves. Workspace is allocated by
// NewGoldfarbIdnani and Resize only; Solve does not allocate when the
// problem dimensions are unchanged.
type GoldfarbIdnani struct {
	dualState

	m int

	// Problem data, referenced for the duration of a solve. g aliases the
	// caller's matrix and is overwritten by its Cholesky factor when no
	// factorization is provided.
	g              blas64.General
	av             []float64
	c              blas64.General
	bl, bu, xl, xu []float64

	// warm holds the activation statuses used to seed the next solve when
	// warm starting.
	warm []ActivationStatus

	wd       workspace // d = Jᵀn⁺, length n
	wJ       workspace // J, n×n
	wR       workspace // R (and N during init), n×n with stride n
	wScratch workspace // B = JᵀN for provided factorizations, n×n
	wTmp     workspace // alpha, length n
	wHCoeffs workspace // Householder scales, length n
	wBact    workspace // active right-hand sides, length n
	lwork    []float64 // Geqrf/Ormqr workspace
}

var _ dualEngine = (*GoldfarbIdnani)(nil)

// NewGoldfarbIdnani returns a solver preallocated for problems with n
// variables, m general constraints, and variable bounds if bounded is true.
func NewGoldfarbIdnani(n, m int, bounded bool) *GoldfarbIdnani {
	var s GoldfarbIdnani
	s.opts = DefaultOptions()
	s.log = newLogger("qp")
	s.Resize(n, m, bounded)
	return &s
}

// Resize reallocates the solver workspace for the given problem
// dimensions. Buffers whose dimensions are unchanged are reused. Resize is
// the only allocating operation of the solver.
func (s *GoldfarbIdnani) Resize(n, m int, bounded bool) {
	if n < 0 || m < 0 {
		panic("qp: negative problem dimension")
	}
	if n != s.n {
		s.wd.resize(n)
		s.wJ.resize(n * n)
		s.wR.resize(n * n)
		s.wScratch.resize(n * n)
		s.wTmp.resize(n)
		s.wHCoeffs.resize(n)
		s.wBact.resize(n)
		s.lwork = make([]float64, max(1, qrBlock*n))
	}
	nBnd := 0
	if bounded {
		nBnd = n
	}
	s.resizeDriver(n, m, nBnd)
	if cap(s.warm) < m+nBnd {
		s.warm = make([]ActivationStatus, 0, m+nBnd)
	}
	s.m = m
}

// qrBlock is the blocked-QR workspace factor used when sizing the LAPACK
// work buffer.
const qrBlock = 64

// SetOptions replaces the solver options.
func (s *GoldfarbIdnani) SetOptions(opts SolverOptions) {
	s.opts = opts
	s.log.SetFlags(opts.LogFlags)
	s.log.SetOutput(opts.LogWriter)
}

// Options returns the current solver options.
func (s *GoldfarbIdnani) Options() SolverOptions { return s.opts }

// SetPrecomputedR supplies the upper-triangular R factor corresponding to
// the equality-only active set, for use with SolverOptions.RIsGiven. The
// solver must already be sized for the target problem.
func (s *GoldfarbIdnani) SetPrecomputedR(r *mat.Dense) {
	rr, rc := r.Dims()
	if rr != rc {
		panic("qp: precomputed R is not square")
	}
	if rr > s.n {
		panic("qp: precomputed R larger than the variable count")
	}
	rm := r.RawMatrix()
	rd := s.wR.data
	for i := 0; i < rr; i++ {
		for j := 0; j < rc; j++ {
			if j >= i {
				rd[i*s.n+j] = rm.Data[i*rm.Stride+j]
			} else {
				rd[i*s.n+j] = 0
			}
		}
	}
}

// Solve minimizes 0.5 xᵀGx + aᵀx subject to bl ≤ Cᵀx ≤ bu and, when xl and
// xu are non-empty, xl ≤ x ≤ xu. The columns of the n×m matrix c are the
// constraint normals; c may be nil when there are no general constraints.
// xl and xu must either both be empty or both have length n. Equality
// constraints are expressed with bl[i] == bu[i], fixed variables with
// xl[i] == xu[i], and infinite sides with magnitudes at or above
// SolverOptions.BigBnd.
//
// Unless a factorization is provided through the GFactorization option, g
// is overwritten in place by its lower Cholesky factor. g must not alias
// any other argument.
//
// The returned status reports the termination reason. The solution,
// multipliers, objective value, iteration count and active set are
// available from the observers after Solve returns.
func (s *GoldfarbIdnani) Solve(g *mat.Dense, a []float64, c *mat.Dense, bl, bu, xl, xu []float64) Status {
	return s.SolveWarmStarted(g, a, c, bl, bu, xl, xu, nil)
}

// SolveWarmStarted is Solve with an explicit warm-start vector: when the
// WarmStart option is set, as is used in place of the activation statuses
// remembered from the previous solve. A nil as falls back to the
// remembered statuses. SolveWarmStarted panics if as is non-nil while warm
// starting is disabled.
func (s *GoldfarbIdnani) SolveWarmStarted(g *mat.Dense, a []float64, c *mat.Dense, bl, bu, xl, xu []float64, as []ActivationStatus) Status {
	n := len(a)
	m := len(bl)
	nBnd := len(xl)

	s.log.Reset()

	if n == 0 {
		if m != 0 || nBnd != 0 {
			panic("qp: constrained problem with no variables")
		}
		s.Resize(0, 0, false)
		s.needExpandMultipliers = true
		s.a.reset()
		s.f = 0
		s.it = 0
		return s.terminate(Success)
	}

	gr, gc := g.Dims()
	if gr != n || gc != n {
		panic("qp: dimension mismatch between G and a")
	}
	if c == nil {
		if m != 0 {
			panic("qp: nil constraint matrix with constraints")
		}
	} else {
		cr, cc := c.Dims()
		if cr != n || cc != m {
			panic("qp: constraint matrix dimension mismatch")
		}
	}
	if len(bu) != m {
		panic("qp: constraint bound length mismatch")
	}
	if nBnd != 0 && nBnd != n {
		panic("qp: variable bound length mismatch")
	}
	if len(xu) != nBnd {
		panic("qp: variable bound length mismatch")
	}
	if as != nil {
		if !s.opts.WarmStart {
			panic("qp: warm-start statuses supplied with warm starting disabled")
		}
		if len(as) != m+nBnd {
			panic("qp: warm-start status length mismatch")
		}
	}

	s.Resize(n, m, nBnd > 0)

	s.g = g.RawMatrix()
	s.av = a
	if c != nil {
		s.c = c.RawMatrix()
	} else {
		s.c = blas64.General{Rows: n, Cols: 0, Stride: 1, Data: nil}
	}
	s.bl, s.bu, s.xl, s.xu = bl, bu, xl, xu

	s.log.Log(LogInput|LogNoIter,
		"G", s.g, "a", a, "C", s.c, "bl", bl, "bu", bu, "xl", xl, "xu", xu)

	for i := range bl {
		if bl[i] > bu[i] {
			return s.terminate(InconsistentInput)
		}
	}
	for i := range xl {
		if xl[i] > xu[i] {
			return s.terminate(InconsistentInput)
		}
	}

	if s.opts.WarmStart {
		if as != nil {
			s.warm = append(s.warm[:0], as...)
		} else {
			s.warm = append(s.warm[:0], s.a.status...)
		}
	} else {
		s.warm = s.warm[:0]
	}

	return s.runDual(s)
}

// Solution returns a view of the minimizer found by the last solve. It is
// valid after Solve has returned and until the next call to Solve or
// Resize.
func (s *GoldfarbIdnani) Solution() []float64 { return s.x[:s.n] }

// Multipliers returns a view of the Lagrange multipliers of the last
// solve, indexed by global constraint: the m general constraints first,
// then the n bounds if the problem had any. Multipliers of constraints
// active at their lower side are non-positive, at their upper side
// non-negative; equality and fixed-variable multipliers carry either sign.
// The expansion from the internal compact form happens on the first call
// after a solve; subsequent calls are O(1).
func (s *GoldfarbIdnani) Multipliers() []float64 {
	s.expandMultipliers()
	return s.u[:s.a.nAll()]
}

// ObjectiveValue returns the objective value at the solution of the last
// solve.
func (s *GoldfarbIdnani) ObjectiveValue() float64 { return s.f }

// Iterations returns the number of iterations of the last solve.
func (s *GoldfarbIdnani) Iterations() int { return s.it }

// ActiveSet returns a view of the activation status of every constraint
// and bound after the last solve, general constraints first. The returned
// slice may be passed to SolveWarmStarted.
func (s *GoldfarbIdnani) ActiveSet() []ActivationStatus { return s.a.status }

// ResetActiveSet clears any warm-start memory.
func (s *GoldfarbIdnani) ResetActiveSet() {
	s.a.reset()
	s.warm = s.warm[:0]
}

// initialize implements the engine initialization: initial active set,
// Cholesky of G (unless provided), initial J, R and right-hand sides, and
// the initial primal-dual point, followed by removal of any inequality
// constraint that entered with a negative multiplier.
func (s *GoldfarbIdnani) initialize() Status {
	if s.opts.RIsGiven && (s.opts.GFactorization != GFactorizationLTInvQ || !s.opts.EqualityFirst) {
		s.log.Comment(LogInput, "incompatible options: RIsGiven requires EqualityFirst and GFactorizationLTInvQ")
	}

	var st Status
	if s.opts.EqualityFirst {
		st = s.initialEqualitySet()
	} else {
		st = s.initialActiveSet()
	}
	if st != Success {
		return st
	}

	if s.opts.GFactorization == GFactorizationNone {
		_, ok := lapack64.Potrf(blas64.Symmetric{
			Uplo:   blas.Lower,
			N:      s.n,
			Stride: s.g.Stride,
			Data:   s.g.Data,
		})
		if !ok {
			return NonPosDefHessian
		}
	}

	s.initFactorization()
	s.initPrimalDual()

	for {
		q := s.a.nActive()
		u := s.u[:q]
		umin := -dualFloor
		lmin := -1
		for l := 0; l < q; l++ {
			st := s.a.activationStatus(s.a.index(l))
			if u[l] < umin && st != ActiveFixed && st != ActiveEquality {
				umin = u[l]
				lmin = l
			}
		}
		if lmin < 0 {
			break
		}
		s.it++
		bact := s.wBact.vec(q)
		copy(bact[lmin:q-1], bact[lmin+1:q])
		s.a.deactivate(lmin)
		s.removeConstraint(lmin)
		s.initPrimalDual()
	}
	return Success
}

// initialEqualitySet activates every equality constraint and fixed
// variable, before any factorization work.
func (s *GoldfarbIdnani) initialEqualitySet() Status {
	s.a.reset()
	for i := 0; i < s.m; i++ {
		if s.bl[i] == s.bu[i] {
			s.a.activate(i, ActiveEquality)
		}
	}
	for i := 0; i < s.a.nBnd; i++ {
		if s.xl[i] == s.xu[i] {
			s.a.activate(s.m+i, ActiveFixed)
		}
	}
	if s.a.nActive() > s.n {
		return Overconstrained
	}
	return Success
}

// initialActiveSet builds the initial active set from the problem data
// and, when warm starting, from the saved activation statuses. Equality
// constraints and fixed variables are decided by the current bounds alone;
// saved statuses that are incompatible with the current data are ignored
// with a warning.
func (s *GoldfarbIdnani) initialActiveSet() Status {
	s.a.reset()
	warm := s.opts.WarmStart && len(s.warm) == s.a.nAll()

	for i := 0; i < s.a.nBnd; i++ {
		bi := s.m + i
		switch {
		case s.xl[i] == s.xu[i]:
			s.a.activate(bi, ActiveFixed)
		case warm && s.warm[bi] != Inactive:
			switch st := s.warm[bi]; st {
			case ActiveLowerBound:
				if s.xl[i] <= -s.opts.BigBnd {
					s.log.Comment(LogActiveSet, "ignoring saved activation of an infinite lower bound")
				} else {
					s.a.activate(bi, st)
				}
			case ActiveUpperBound:
				if s.xu[i] >= s.opts.BigBnd {
					s.log.Comment(LogActiveSet, "ignoring saved activation of an infinite upper bound")
				} else {
					s.a.activate(bi, st)
				}
			default:
				s.log.Comment(LogActiveSet, "ignoring saved bound status incompatible with the current data")
			}
		}
	}
	for i := 0; i < s.m; i++ {
		switch {
		case s.bl[i] == s.bu[i]:
			s.a.activate(i, ActiveEquality)
		case warm && s.warm[i] != Inactive:
			switch st := s.warm[i]; st {
			case ActiveLower:
				if s.bl[i] <= -s.opts.BigBnd {
					s.log.Comment(LogActiveSet, "ignoring saved activation of an infinite lower side")
				} else {
					s.a.activate(i, st)
				}
			case ActiveUpper:
				if s.bu[i] >= s.opts.BigBnd {
					s.log.Comment(LogActiveSet, "ignoring saved activation of an infinite upper side")
				} else {
					s.a.activate(i, st)
				}
			default:
				s.log.Comment(LogActiveSet, "ignoring saved constraint status incompatible with the current data")
			}
		}
	}

	if s.a.nActive() > s.n {
		if s.a.nEquality()+s.a.nFixed() > s.n {
			return Overconstrained
		}
		// Deactivate the most recently added inequality constraints until
		// the active set fits.
		i := s.a.nActive()
		for s.a.nActive() > s.n {
			i--
			for {
				st := s.a.activationStatus(s.a.index(i))
				if st != ActiveEquality && st != ActiveFixed {
					break
				}
				i--
			}
			s.a.deactivate(i)
		}
	}
	return Success
}

// processMatrixG initializes J from the factorization of G: J = L⁻ᵀ when G
// or L is given, or the provided inverse factor otherwise.
func (s *GoldfarbIdnani) processMatrixG() {
	n := s.n
	jd := s.wJ.vec(n * n)
	gd, gs := s.g.Data, s.g.Stride

	switch s.opts.GFactorization {
	case GFactorizationNone, GFactorizationL:
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				jd[i*n+j] = 0
			}
			jd[i*n+i] = 1
		}
		L := blas64.Triangular{Uplo: blas.Lower, Diag: blas.NonUnit, N: n, Stride: gs, Data: gd}
		blas64.Trsm(blas.Left, blas.Trans, 1, L, s.wJ.mat(n, n, n))
	case GFactorizationLInv:
		// G holds L⁻¹; J is its transpose.
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				jd[i*n+j] = 0
			}
			for j := i; j < n; j++ {
				jd[i*n+j] = gd[j*gs+i]
			}
		}
	case GFactorizationLTInv:
		// G holds L⁻ᵀ already.
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				jd[i*n+j] = 0
			}
			for j := i; j < n; j++ {
				jd[i*n+j] = gd[i*gs+j]
			}
		}
	case GFactorizationLTInvQ:
		for i := 0; i < n; i++ {
			copy(jd[i*n:i*n+n], gd[i*gs:i*gs+n])
		}
	default:
		panic("qp: invalid GFactorization")
	}
}

// initFactorization builds J, R and the active right-hand sides for the
// initial active set.
func (s *GoldfarbIdnani) initFactorization() {
	n := s.n
	q := s.a.nActive()

	s.processMatrixG()
	J := s.wJ.mat(n, n, n)
	bact := s.wBact.vec(q)

	if s.opts.RIsGiven && s.opts.EqualityFirst && s.opts.GFactorization == GFactorizationLTInvQ {
		// The caller provided R for the equality-only active set and
		// J = L⁻ᵀQ in the G slot; only the right-hand sides remain.
		for k := 0; k < q; k++ {
			i := s.a.index(k)
			if i < s.m {
				bact[k] = s.bl[i]
			} else {
				bact[k] = s.xl[i-s.m]
			}
		}
		s.log.Log(LogInit|LogNoIter, "bact", bact)
		return
	}
	if q == 0 {
		return
	}

	// N: the signed normals of the active constraints, built in R's
	// storage so that the in-place QR leaves R in the right location.
	N := s.wR.mat(n, q, n)
	nd := s.wR.data
	for k := 0; k < q; k++ {
		i := s.a.index(k)
		switch s.a.activationStatus(i) {
		case ActiveLower, ActiveEquality:
			for r := 0; r < n; r++ {
				nd[r*n+k] = s.c.Data[r*s.c.Stride+i]
			}
			bact[k] = s.bl[i]
		case ActiveUpper:
			for r := 0; r < n; r++ {
				nd[r*n+k] = -s.c.Data[r*s.c.Stride+i]
			}
			bact[k] = -s.bu[i]
		case ActiveLowerBound, ActiveFixed:
			for r := 0; r < n; r++ {
				nd[r*n+k] = 0
			}
			nd[(i-s.m)*n+k] = 1
			bact[k] = s.xl[i-s.m]
		case ActiveUpperBound:
			for r := 0; r < n; r++ {
				nd[r*n+k] = 0
			}
			nd[(i-s.m)*n+k] = -1
			bact[k] = -s.xu[i-s.m]
		}
	}

	// B = L⁻¹N. With G or L in hand this is a triangular solve; with a
	// provided inverse factorization it is the product JᵀN, since J holds
	// L⁻ᵀ (possibly times an orthogonal factor, which only reparametrizes
	// the QR below).
	switch s.opts.GFactorization {
	case GFactorizationNone, GFactorizationL:
		L := blas64.Triangular{Uplo: blas.Lower, Diag: blas.NonUnit, N: n, Stride: s.g.Stride, Data: s.g.Data}
		blas64.Trsm(blas.Left, blas.NoTrans, 1, L, N)
	default:
		B := s.wScratch.mat(n, q, n)
		blas64.Gemm(blas.Trans, blas.NoTrans, 1, J, N, 0, B)
		for r := 0; r < n; r++ {
			copy(nd[r*n:r*n+q], B.Data[r*n:r*n+q])
		}
	}

	// In-place blocked Householder QR of B; R lands in the top-left q×q
	// block of the same storage.
	tau := s.wHCoeffs.vec(q)
	lapack64.Geqrf(N, tau, s.lwork, len(s.lwork))

	// J ← J·Q.
	lapack64.Ormqr(blas.Right, blas.NoTrans, N, tau, J, s.lwork, len(s.lwork))

	// Zero the sub-triangular storage of R.
	for j := 0; j < q; j++ {
		for i := j + 1; i < n; i++ {
			nd[i*n+j] = 0
		}
	}

	s.log.Log(LogInit|LogNoIter, "R", s.wR.mat(q, q, n), "J", J, "bact", bact)
}

// initPrimalDual computes the primal-dual point and objective value for
// the current active set, with alpha = Jᵀa and beta = R⁻ᵀ b_act:
//
//	x = J1 β − J2 α2
//	u = R⁻¹ (α1 + β)
//	f = β·(0.5 β + α1) − 0.5 ‖α2‖²
func (s *GoldfarbIdnani) initPrimalDual() {
	n := s.n
	q := s.a.nActive()
	J := s.wJ.mat(n, n, n)
	bact := s.wBact.vec(q)
	alpha := s.wTmp.vec(n)
	beta := s.r[:q]
	x := s.x[:n]
	u := s.u[:q]

	blas64.Gemv(blas.Trans, 1, J, vector(s.av), 0, vector(alpha))
	alpha1 := alpha[:q]
	alpha2 := alpha[q:]

	var rtri blas64.Triangular
	if q > 0 {
		rtri = blas64.Triangular{Uplo: blas.Upper, Diag: blas.NonUnit, N: q, Stride: n, Data: s.wR.data}
		copy(beta, bact)
		blas64.Trsv(blas.Trans, rtri, vector(beta))
	}

	for i := range x {
		x[i] = 0
	}
	if q > 0 {
		J1 := blas64.General{Rows: n, Cols: q, Stride: n, Data: J.Data}
		blas64.Gemv(blas.NoTrans, 1, J1, vector(beta), 0, vector(x))
	}
	if q < n {
		J2 := blas64.General{Rows: n, Cols: n - q, Stride: n, Data: J.Data[q:]}
		blas64.Gemv(blas.NoTrans, -1, J2, vector(alpha2), 1, vector(x))
	}

	for k := 0; k < q; k++ {
		u[k] = alpha1[k] + beta[k]
	}
	if q > 0 {
		blas64.Trsv(blas.NoTrans, rtri, vector(u))
	}

	s.f = floats.Dot(beta, alpha1) + 0.5*floats.Dot(beta, beta) - 0.5*floats.Dot(alpha2, alpha2)

	s.log.Log(LogInit|LogNoIter, "alpha", alpha, "beta", beta, "x0", x, "u0", u, "f0", s.f)
}

// selectViolated scans general constraints and then bounds for the most
// negative signed slack at x. Ties are broken by first occurrence.
func (s *GoldfarbIdnani) selectViolated(x []float64) selectedConstraint {
	smin := 0.0
	sc := selectedConstraint{index: -1, status: Inactive}

	for i := 0; i < s.m; i++ {
		if s.a.isActive(i) {
			continue
		}
		cx := blas64.Dot(blas64.Vector{N: s.n, Data: s.c.Data[i:], Inc: s.c.Stride}, vector(x))
		if sl := cx - s.bl[i]; sl < smin {
			smin = sl
			sc = selectedConstraint{index: i, status: ActiveLower}
		} else if su := s.bu[i] - cx; su < smin {
			smin = su
			sc = selectedConstraint{index: i, status: ActiveUpper}
		}
	}

	for i := 0; i < s.a.nBnd; i++ {
		if s.a.isActiveBnd(i) {
			continue
		}
		if sl := x[i] - s.xl[i]; sl < smin {
			smin = sl
			sc = selectedConstraint{index: s.m + i, status: ActiveLowerBound}
		} else if su := s.xu[i] - x[i]; su < smin {
			smin = su
			sc = selectedConstraint{index: s.m + i, status: ActiveUpperBound}
		}
	}

	return sc
}

// computeStep computes the primal and dual step directions for the
// candidate constraint:
//
//	d = Jᵀn⁺,  z = J2 d₂,  r = R⁻¹ d₁
func (s *GoldfarbIdnani) computeStep(z, r []float64, sc selectedConstraint) {
	n := s.n
	q := s.a.nActive()
	d := s.wd.vec(n)
	J := s.wJ.mat(n, n, n)

	s.normal(sc).preMultiplyByMt(d, J)

	for i := range z {
		z[i] = 0
	}
	if q < n {
		J2 := blas64.General{Rows: n, Cols: n - q, Stride: n, Data: J.Data[q:]}
		blas64.Gemv(blas.NoTrans, 1, J2, blas64.Vector{N: n - q, Data: d[q:], Inc: 1}, 0, vector(z))
	}

	copy(r, d[:q])
	if q > 0 {
		rtri := blas64.Triangular{Uplo: blas.Upper, Diag: blas.NonUnit, N: q, Stride: n, Data: s.wR.data}
		blas64.Trsv(blas.NoTrans, rtri, vector(r))
	}
	if s.log.enabled(LogIterationAdvanced) {
		s.log.Log(LogIterationAdvanced, "J", J, "R", s.wR.mat(q, q, n), "d", d)
	}
}

// stepLength computes the dual blocking step t1 over the active
// inequality constraints and the primal full step t2 toward the candidate
// constraint's binding side.
func (s *GoldfarbIdnani) stepLength(sc selectedConstraint, x, u, z, r []float64) (t1, t2 float64, l int) {
	t1 = s.opts.BigBnd
	t2 = s.opts.BigBnd

	for k := 0; k < s.a.nActive(); k++ {
		st := s.a.activationStatus(s.a.index(k))
		if st == ActiveEquality || st == ActiveFixed || r[k] <= 0 {
			continue
		}
		if tk := u[k] / r[k]; tk < t1 {
			t1 = tk
			l = k
		}
	}

	if floats.Norm(z, 2) > s.opts.ZeroStepThreshold {
		np := s.normal(sc)
		var b, cx, cz float64
		switch sc.status {
		case ActiveLower:
			b = s.bl[sc.index]
			cx = blas64.Dot(np.col(), vector(x))
			cz = blas64.Dot(np.col(), vector(z))
		case ActiveUpper:
			b = s.bu[sc.index]
			cx = blas64.Dot(np.col(), vector(x))
			cz = blas64.Dot(np.col(), vector(z))
		case ActiveLowerBound:
			pb := np.bndIndex()
			b = s.xl[pb]
			cx = x[pb]
			cz = z[pb]
		case ActiveUpperBound:
			pb := np.bndIndex()
			b = s.xu[pb]
			cx = x[pb]
			cz = z[pb]
		default:
			panic("qp: step toward an equality or fixed constraint")
		}
		t2 = (b - cx) / cz
	}

	return t1, t2, l
}

// addConstraint folds the rotated normal d into the factorization after an
// activation. A Givens sweep zeroes the trailing entries of d while being
// accumulated into J, and d's head becomes the new last column of R. It
// reports whether the new column is linearly independent of the previous
// ones.
func (s *GoldfarbIdnani) addConstraint(sc selectedConstraint) bool {
	n := s.n
	q := s.a.nActive() // Already counts the new constraint.
	d := s.wd.vec(n)
	J := s.wJ.mat(n, n, n)

	for i := n - 2; i >= q-1; i-- {
		c, sn, rr, _ := blas64.Rotg(d[i], d[i+1])
		d[i] = rr
		d[i+1] = 0
		blas64.Rot(
			blas64.Vector{N: n, Data: J.Data[i:], Inc: n},
			blas64.Vector{N: n, Data: J.Data[i+1:], Inc: n},
			c, sn,
		)
	}

	rd := s.wR.data
	for i := 0; i < q; i++ {
		rd[i*n+q-1] = d[i]
	}

	return math.Abs(d[q-1]) > depTol*math.Max(1, floats.Norm(d[:q], 2))
}

// removeConstraint restores R to upper-triangular form after the l-th
// active constraint was dropped, shifting the remaining columns left and
// folding the Givens sweep into J.
func (s *GoldfarbIdnani) removeConstraint(l int) {
	n := s.n
	q := s.a.nActive() // Already counts the removal.
	rd := s.wR.data
	J := s.wJ.mat(n, n, n)

	for i := l; i < q; i++ {
		for k := 0; k < i; k++ {
			rd[k*n+i] = rd[k*n+i+1]
		}
		c, sn, rr, _ := blas64.Rotg(rd[i*n+i+1], rd[(i+1)*n+i+1])
		rd[i*n+i] = rr
		for j := i + 2; j <= q; j++ {
			fi := rd[i*n+j]
			gi := rd[(i+1)*n+j]
			rd[i*n+j] = c*fi + sn*gi
			rd[(i+1)*n+j] = c*gi - sn*fi
		}
		blas64.Rot(
			blas64.Vector{N: n, Data: J.Data[i:], Inc: n},
			blas64.Vector{N: n, Data: J.Data[i+1:], Inc: n},
			c, sn,
		)
	}
}

// normalDot returns n⁺ᵀv for the candidate constraint.
func (s *GoldfarbIdnani) normalDot(sc selectedConstraint, v []float64) float64 {
	return s.normal(sc).dot(v)
}

func (s *GoldfarbIdnani) normal(sc selectedConstraint) constraintNormal {
	return constraintNormal{c: s.c, sc: sc}
}

func vector(s []float64) blas64.Vector {
	return blas64.Vector{N: len(s), Data: s, Inc: 1}
}
