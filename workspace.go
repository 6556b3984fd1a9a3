// Copyright ©2025 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qp

import "gonum.org/v1/gonum/blas/blas64"

// workspace is a flat scratch buffer that can be viewed as a vector or as a
// row-major matrix with a configurable stride. Views alias the buffer; no
// view operation allocates.
type workspace struct {
	data []float64
}

// resize guarantees capacity for n elements. The buffer and its contents
// are kept when its capacity already suffices; otherwise a new zeroed
// buffer is allocated and the previous contents are not copied.
func (w *workspace) resize(n int) {
	if n <= cap(w.data) {
		w.data = w.data[:n]
		return
	}
	w.data = make([]float64, n)
}

func (w *workspace) len() int { return len(w.data) }

// vec returns the first n elements of the buffer.
func (w *workspace) vec(n int) []float64 {
	return w.data[:n]
}

// mat returns an r×c row-major view of the buffer with the given stride.
// The stride is the distance between the starts of consecutive rows and
// must be at least c, so that a view with a larger stride than column count
// leaves room for the matrix to grow columns in place.
func (w *workspace) mat(r, c, stride int) blas64.General {
	if stride < c {
		panic("qp: workspace stride smaller than column count")
	}
	if r > 0 && (r-1)*stride+c > len(w.data) {
		panic("qp: workspace view out of range")
	}
	return blas64.General{
		Rows:   r,
		Cols:   c,
		Stride: stride,
		Data:   w.data,
	}
}

// changeStride reorganizes an r×c matrix stored with stride from so that
// the same matrix is afterwards stored with stride to. No allocation
// occurs; the buffer must already be large enough for the larger layout.
func (w *workspace) changeStride(r, c, from, to int) {
	switch {
	case from < to:
		if r > 0 && (r-1)*to+c > len(w.data) {
			panic("qp: workspace stride change out of range")
		}
		for i := r - 1; i > 0; i-- {
			copy(w.data[i*to:i*to+c], w.data[i*from:i*from+c])
		}
	case from > to:
		for i := 1; i < r; i++ {
			copy(w.data[i*to:i*to+c], w.data[i*from:i*from+c])
		}
	}
}

// zero clears the whole buffer.
func (w *workspace) zero() {
	for i := range w.data {
		w.data[i] = 0
	}
}
