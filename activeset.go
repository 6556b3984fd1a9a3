// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

// ActivationStatus describes how a constraint or bound participates in the
// active set.
//
// The order of the values matters: statuses at or after ActiveLowerBound
// refer to simple bounds on variables, earlier non-zero statuses refer to
// general constraints.
type ActivationStatus int8

const (
	// Inactive marks a constraint that is not in the active set.
	Inactive ActivationStatus = iota
	// ActiveLower marks a general constraint active at its lower bound.
	ActiveLower
	// ActiveUpper marks a general constraint active at its upper bound.
	ActiveUpper
	// ActiveEquality marks a general constraint whose two sides are equal.
	// Equality constraints are never removed from the active set.
	ActiveEquality
	// ActiveLowerBound marks a variable bound active at its lower value.
	ActiveLowerBound
	// ActiveUpperBound marks a variable bound active at its upper value.
	ActiveUpperBound
	// ActiveFixed marks a variable whose lower and upper bounds are equal.
	// Fixed variables are never removed from the active set.
	ActiveFixed
)

func (s ActivationStatus) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case ActiveLower:
		return "lower"
	case ActiveUpper:
		return "upper"
	case ActiveEquality:
		return "equality"
	case ActiveLowerBound:
		return "lower bound"
	case ActiveUpperBound:
		return "upper bound"
	case ActiveFixed:
		return "fixed"
	default:
		return "invalid"
	}
}

// isBound reports whether s refers to a simple bound on a variable.
func (s ActivationStatus) isBound() bool { return s >= ActiveLowerBound }

// activeSet tracks the activation status of a set of constraints and bounds.
//
// It maintains two views that are kept consistent: a status vector over all
// constraints (general constraints first, bounds after), and an ordered list
// of the indices of the active constraints, in activation order.
type activeSet struct {
	status []ActivationStatus
	active []int

	nCstr, nBnd int

	me  int // constraints active as equality
	ml  int // inequality constraints active at their lower side
	mu  int // inequality constraints active at their upper side
	mbl int // bounds active at their lower value
	mbu int // bounds active at their upper value
	mbe int // fixed variables
}

func newActiveSet(nCstr, nBnd int) *activeSet {
	var a activeSet
	a.resize(nCstr, nBnd)
	return &a
}

func (a *activeSet) resize(nCstr, nBnd int) {
	if nCstr < 0 || nBnd < 0 {
		panic("qp: negative active set size")
	}
	nTot := nCstr + nBnd
	if cap(a.status) < nTot {
		a.status = make([]ActivationStatus, nTot)
		a.active = make([]int, 0, nTot)
	}
	a.status = a.status[:nTot]
	a.nCstr = nCstr
	a.nBnd = nBnd
	a.reset()
}

// reset deactivates all constraints.
func (a *activeSet) reset() {
	for i := range a.status {
		a.status[i] = Inactive
	}
	a.active = a.active[:0]
	a.me, a.ml, a.mu = 0, 0, 0
	a.mbl, a.mbu, a.mbe = 0, 0, 0
}

func (a *activeSet) nAll() int { return a.nCstr + a.nBnd }

// nActive returns the number of active constraints, q.
func (a *activeSet) nActive() int { return a.me + a.ml + a.mu + a.mbl + a.mbu + a.mbe }

func (a *activeSet) nEquality() int   { return a.me }
func (a *activeSet) nIneqLower() int  { return a.ml }
func (a *activeSet) nIneqUpper() int  { return a.mu }
func (a *activeSet) nBound() int      { return a.mbl + a.mbu + a.mbe }
func (a *activeSet) nBoundLower() int { return a.mbl }
func (a *activeSet) nBoundUpper() int { return a.mbu }
func (a *activeSet) nFixed() int      { return a.mbe }

// isActive reports whether the constraint with global index i is active.
// Indices at or after nCstr refer to bounds.
func (a *activeSet) isActive(i int) bool { return a.status[i] != Inactive }

// isActiveBnd reports whether the i-th bound is active.
func (a *activeSet) isActiveBnd(i int) bool { return a.status[a.nCstr+i] != Inactive }

// activationStatus returns the status of the constraint with global index i.
func (a *activeSet) activationStatus(i int) ActivationStatus { return a.status[i] }

// index returns the global index of the l-th active constraint.
func (a *activeSet) index(l int) int { return a.active[l] }

// activate adds the constraint with global index i to the active set with
// the given status. The constraint must be inactive and the status must be
// compatible with the index class.
func (a *activeSet) activate(i int, s ActivationStatus) {
	if a.status[i] != Inactive {
		panic("qp: constraint already active")
	}
	switch s {
	case ActiveLower, ActiveUpper, ActiveEquality:
		if i >= a.nCstr {
			panic("qp: general constraint status on a bound index")
		}
	case ActiveLowerBound, ActiveUpperBound, ActiveFixed:
		if i < a.nCstr {
			panic("qp: bound status on a general constraint index")
		}
	default:
		panic("qp: invalid activation status")
	}

	a.active = append(a.active, i)
	a.status[i] = s
	switch s {
	case ActiveLower:
		a.ml++
	case ActiveUpper:
		a.mu++
	case ActiveEquality:
		a.me++
	case ActiveLowerBound:
		a.mbl++
	case ActiveUpperBound:
		a.mbu++
	case ActiveFixed:
		a.mbe++
	}
}

// deactivate removes the l-th active constraint, shifting the following
// entries down. Equality constraints and fixed variables cannot be removed.
func (a *activeSet) deactivate(l int) {
	i := a.active[l]
	switch a.status[i] {
	case ActiveLower:
		a.ml--
	case ActiveUpper:
		a.mu--
	case ActiveLowerBound:
		a.mbl--
	case ActiveUpperBound:
		a.mbu--
	case ActiveEquality, ActiveFixed:
		panic("qp: deactivating an equality constraint or fixed variable")
	default:
		panic("qp: deactivating an inactive constraint")
	}
	copy(a.active[l:], a.active[l+1:])
	a.active = a.active[:len(a.active)-1]
	a.status[i] = Inactive
}
