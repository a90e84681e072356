// Package chunk cuts square blocks out of a distance matrix by walking
// down its diagonal.
//
// For an n x n matrix and block size res, block k (counting from 1)
// covers rows and columns [res*(k-1), res*k) and k runs while
// k < n/res. That means floor(n/res) - 1 blocks, so the last complete
// block is never produced. Datasets built so far depend on this
// windowing, so it stays.
package chunk

import (
	"iter"
	"slices"

	"github.com/andrew-torda/camaps/matrix"
)

// Count says how many blocks Diag will give for an n x n matrix.
func Count(n, res int) int {
	if res <= 0 || n < res {
		return 0
	}
	return n/res - 1
}

// Diag returns the blocks of m along the diagonal, each one a copy.
// The sequence can be walked as often as you like. Nothing is copied
// until it is walked.
func Diag(m *matrix.DMatrix2d, res int) iter.Seq[*matrix.DMatrix2d] {
	return func(yield func(*matrix.DMatrix2d) bool) {
		n, _ := m.Size()
		nblock := Count(n, res)
		for k := 1; k <= nblock; k++ {
			lo, hi := res*(k-1), res*k
			if !yield(m.Sub(lo, hi, lo, hi)) {
				return
			}
		}
	}
}

// Split collects all the blocks from Diag.
func Split(m *matrix.DMatrix2d, res int) []*matrix.DMatrix2d {
	return slices.Collect(Diag(m, res))
}
