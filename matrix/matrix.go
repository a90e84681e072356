// Package matrix 7 feb 2018, float64 version 2 sep 2024
// A 2D array of float64's for distance matrices and the blocks cut
// out of them.
// All the elements live in one backing slice, so a matrix can be handed
// to something that wants a flat array (like the hdf5 writer) without
// copying. Mat is a set of row slices pointing into the backing store.
// You can declare a DMatrix2d and call Resize, or call NewDMatrix2d
// with the right size. Resize re-uses the backing store if it is big
// enough.
// Zero rows or columns are legal. A 0 x 0 matrix has no rows, Size
// returns 0, 0 and it is happy to be chopped into nothing.

package matrix

import (
	"fmt"
	"math"
)

// DMatrix2d is a two dimensional array of float64's
type DMatrix2d struct {
	Mat      [][]float64
	fullData []float64
	ncol     int
}

// fixSlices sets the row slices in a matrix.
// It is in its own function so we can call it for new objects
// or when resizing an old one.
func (mat *DMatrix2d) fixSlices(n_r, n_c int) {
	tmp := mat.fullData
	mat.Mat = make([][]float64, n_r)
	for i := range mat.Mat {
		mat.Mat[i] = tmp[:n_c:n_c]
		tmp = tmp[n_c:]
	}
	mat.ncol = n_c
}

// Resize takes a matrix and desired size. If the backing array is too
// small, it is reallocated. Otherwise the row slices are reset.
// Contents are not preserved in any useful order.
func (mat *DMatrix2d) Resize(n_r, n_c int) *DMatrix2d {
	nrow, ncol := mat.Size()
	if nrow == n_r && ncol == n_c {
		return mat
	}
	if n_r*n_c > cap(mat.fullData) {
		mat.fullData = make([]float64, n_r*n_c)
	}
	mat.fullData = mat.fullData[:n_r*n_c]
	mat.fixSlices(n_r, n_c)
	return mat
}

// NewDMatrix2d gives us a two dimensional matrix of n_r x n_c.
func NewDMatrix2d(n_r, n_c int) *DMatrix2d {
	r := new(DMatrix2d)
	r.fullData = make([]float64, n_r*n_c)
	r.fixSlices(n_r, n_c)
	return r
}

// Size returns the number of rows and number of columns
func (mat *DMatrix2d) Size() (nrow, ncol int) {
	if nrow = len(mat.Mat); nrow == 0 {
		return 0, 0
	}
	return nrow, mat.ncol
}

// Data returns the backing store in row-major order. It is not a copy.
func (mat *DMatrix2d) Data() []float64 { return mat.fullData }

// Sub copies rows [r0, r1) and columns [c0, c1) into a fresh matrix.
// Later changes to mat do not show up in the result.
// It panics if the ranges are outside the matrix, like any slice.
func (mat *DMatrix2d) Sub(r0, r1, c0, c1 int) *DMatrix2d {
	sub := NewDMatrix2d(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		copy(sub.Mat[i-r0], mat.Mat[i][c0:c1])
	}
	return sub
}

// MinMax returns the smallest and biggest elements. For an empty
// matrix you get +Inf, -Inf.
func (mat *DMatrix2d) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, x := range mat.fullData {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

// IsSymmetric says if mat is square and mat[i][j] and mat[j][i] differ
// by no more than tol.
func (mat *DMatrix2d) IsSymmetric(tol float64) bool {
	nrow, ncol := mat.Size()
	if nrow != ncol {
		return false
	}
	for i := 0; i < nrow; i++ {
		for j := i + 1; j < ncol; j++ {
			if math.Abs(mat.Mat[i][j]-mat.Mat[j][i]) > tol {
				return false
			}
		}
	}
	return true
}

// String returns the matrix printed out in a form that might be useful
// for debugging.
func (mat *DMatrix2d) String() (s string) {
	for _, row := range mat.Mat {
		for _, x := range row {
			s += fmt.Sprintf("%7.2f", x)
		}
		s += "\n"
	}
	return s
}
