// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type activeCounts struct {
	Active, Equality, IneqLower, IneqUpper int
	Bound, BoundLower, BoundUpper, Fixed   int
}

func countsOf(a *activeSet) activeCounts {
	return activeCounts{
		Active:     a.nActive(),
		Equality:   a.nEquality(),
		IneqLower:  a.nIneqLower(),
		IneqUpper:  a.nIneqUpper(),
		Bound:      a.nBound(),
		BoundLower: a.nBoundLower(),
		BoundUpper: a.nBoundUpper(),
		Fixed:      a.nFixed(),
	}
}

// checkActiveSetInvariants verifies the consistency of the two views of
// the set: status vector and ordered active list.
func checkActiveSetInvariants(t *testing.T, a *activeSet) {
	t.Helper()
	var got activeCounts
	got.Active = len(a.active)
	for _, i := range a.active {
		switch a.status[i] {
		case Inactive:
			t.Errorf("active list contains inactive constraint %d", i)
		case ActiveEquality:
			got.Equality++
		case ActiveLower:
			got.IneqLower++
		case ActiveUpper:
			got.IneqUpper++
		case ActiveLowerBound:
			got.BoundLower++
			got.Bound++
		case ActiveUpperBound:
			got.BoundUpper++
			got.Bound++
		case ActiveFixed:
			got.Fixed++
			got.Bound++
		}
	}
	nActive := 0
	for _, s := range a.status {
		if s != Inactive {
			nActive++
		}
	}
	if nActive != len(a.active) {
		t.Errorf("status vector has %d active entries, active list has %d", nActive, len(a.active))
	}
	if diff := cmp.Diff(got, countsOf(a)); diff != "" {
		t.Errorf("count mismatch (-want +got):\n%s", diff)
	}
}

func TestActiveSet(t *testing.T) {
	a := newActiveSet(4, 3)
	if a.nAll() != 7 {
		t.Fatalf("nAll = %d, want 7", a.nAll())
	}
	checkActiveSetInvariants(t, a)

	a.activate(0, ActiveLower)
	a.activate(2, ActiveEquality)
	a.activate(4, ActiveLowerBound)
	a.activate(6, ActiveFixed)
	a.activate(3, ActiveUpper)
	checkActiveSetInvariants(t, a)

	want := []int{0, 2, 4, 6, 3}
	if diff := cmp.Diff(want, a.active); diff != "" {
		t.Errorf("unexpected active list (-want +got):\n%s", diff)
	}
	if !a.isActive(2) || a.isActive(1) {
		t.Errorf("unexpected isActive results")
	}
	if !a.isActiveBnd(0) || a.isActiveBnd(1) {
		t.Errorf("unexpected isActiveBnd results")
	}
	if a.index(2) != 4 {
		t.Errorf("index(2) = %d, want 4", a.index(2))
	}
	if got := a.activationStatus(6); got != ActiveFixed {
		t.Errorf("activationStatus(6) = %v, want %v", got, ActiveFixed)
	}

	// Deactivate the lower inequality; later entries shift down.
	a.deactivate(0)
	checkActiveSetInvariants(t, a)
	want = []int{2, 4, 6, 3}
	if diff := cmp.Diff(want, a.active); diff != "" {
		t.Errorf("unexpected active list after deactivate (-want +got):\n%s", diff)
	}
	if a.status[0] != Inactive {
		t.Errorf("deactivated constraint still has status %v", a.status[0])
	}

	a.reset()
	checkActiveSetInvariants(t, a)
	if a.nActive() != 0 {
		t.Errorf("nActive = %d after reset, want 0", a.nActive())
	}
}

func TestActiveSetResize(t *testing.T) {
	a := newActiveSet(2, 0)
	a.activate(0, ActiveUpper)
	a.resize(3, 3)
	if a.nActive() != 0 {
		t.Errorf("resize did not reset the active set")
	}
	if a.nCstr != 3 || a.nBnd != 3 {
		t.Errorf("unexpected sizes after resize: %d, %d", a.nCstr, a.nBnd)
	}
	a.activate(5, ActiveUpperBound)
	checkActiveSetInvariants(t, a)
}

func TestActiveSetMisuse(t *testing.T) {
	for _, test := range []struct {
		name string
		fn   func(a *activeSet)
	}{
		{"double activation", func(a *activeSet) {
			a.activate(0, ActiveLower)
			a.activate(0, ActiveUpper)
		}},
		{"bound status on constraint", func(a *activeSet) {
			a.activate(0, ActiveLowerBound)
		}},
		{"constraint status on bound", func(a *activeSet) {
			a.activate(2, ActiveEquality)
		}},
		{"inactive status", func(a *activeSet) {
			a.activate(0, Inactive)
		}},
		{"deactivate equality", func(a *activeSet) {
			a.activate(0, ActiveEquality)
			a.deactivate(0)
		}},
		{"deactivate fixed", func(a *activeSet) {
			a.activate(2, ActiveFixed)
			a.deactivate(0)
		}},
	} {
		a := newActiveSet(2, 2)
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", test.name)
				}
			}()
			test.fn(a)
		}()
	}
}
