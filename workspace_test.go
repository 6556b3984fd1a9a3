// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import "testing"

func TestWorkspaceViews(t *testing.T) {
	var w workspace
	w.resize(12)
	if w.len() != 12 {
		t.Fatalf("len = %d, want 12", w.len())
	}

	v := w.vec(12)
	for i := range v {
		v[i] = float64(i)
	}

	// A 3×4 view with stride 4 sees the buffer row by row.
	m := w.mat(3, 4, 4)
	if got := m.Data[2*m.Stride+1]; got != 9 {
		t.Errorf("m[2,1] = %v, want 9", got)
	}

	// Views alias the buffer.
	m.Data[0] = -1
	if v[0] != -1 {
		t.Errorf("view does not alias the buffer")
	}

	// A shorter vector view shares the same prefix.
	if got := w.vec(3)[0]; got != -1 {
		t.Errorf("vec(3)[0] = %v, want -1", got)
	}
}

func TestWorkspaceChangeStride(t *testing.T) {
	var w workspace
	w.resize(12)
	// Store a 3×2 matrix with stride 2.
	want := [3][2]float64{{1, 2}, {3, 4}, {5, 6}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			w.data[i*2+j] = want[i][j]
		}
	}

	// Growing the stride must preserve the matrix without reallocating.
	w.changeStride(3, 2, 2, 4)
	m := w.mat(3, 2, 4)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if got := m.Data[i*m.Stride+j]; got != want[i][j] {
				t.Errorf("after grow, m[%d,%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}

	// And shrinking it back restores the original layout.
	w.changeStride(3, 2, 4, 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if got := w.data[i*2+j]; got != want[i][j] {
				t.Errorf("after shrink, m[%d,%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestWorkspaceResizeKeepsCapacity(t *testing.T) {
	var w workspace
	w.resize(16)
	p := &w.data[0]
	w.resize(8)
	w.resize(16)
	if p != &w.data[0] {
		t.Errorf("resize reallocated a buffer that was already large enough")
	}
}

func TestWorkspaceMisuse(t *testing.T) {
	var w workspace
	w.resize(6)
	for _, test := range []struct {
		name string
		fn   func()
	}{
		{"stride smaller than columns", func() { w.mat(2, 3, 2) }},
		{"view out of range", func() { w.mat(3, 3, 3) }},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", test.name)
				}
			}()
			test.fn()
		}()
	}
}
