package matrix_test

import (
	"math"
	"testing"

	. "github.com/andrew-torda/camaps/matrix"
)

var testSizes = []struct {
	nr, nc int
}{
	{5, 0},
	{0, 0},
	{3, 5},
	{5, 3},
	{5, 3},
	{4, 4},
	{1, 1},
}

func fill_access(mat *DMatrix2d, nr, nc int) {
	var n float64 = 1
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			mat.Mat[i][j] = n
			n++
		}
	}
}

// Check a matrix if it seems to be the right size
func checkMat(m *DMatrix2d, nr int, nc int, t *testing.T) {
	t.Helper()
	wantR, wantC := nr, nc
	if nr == 0 {
		wantC = 0
	}
	if nrow, ncol := m.Size(); nrow != wantR || ncol != wantC {
		t.Fatal("TestSize rows x cols, wanted", wantR, wantC, "got", nrow, ncol)
	}
	fill_access(m, nr, nc)
	if len(m.Data()) != nr*nc {
		t.Fatal("backing store has", len(m.Data()), "elements, wanted", nr*nc)
	}
}

// Make a fresh matrix on each invocation
func TestFresh(t *testing.T) {
	for _, sizes := range testSizes {
		m := NewDMatrix2d(sizes.nr, sizes.nc)
		checkMat(m, sizes.nr, sizes.nc, t)
	}
}

// TestNoInit calls resize on a matrix that was never initialised
func TestNoInit(t *testing.T) {
	for _, sizes := range testSizes {
		var m DMatrix2d
		m.Resize(sizes.nr, sizes.nc)
		checkMat(&m, sizes.nr, sizes.nc, t)
	}
}

// TestResize makes a matrix and resizes it a few times
func TestResize(t *testing.T) {
	m := NewDMatrix2d(0, 0)
	for _, sizes := range testSizes {
		m.Resize(sizes.nr, sizes.nc)
		checkMat(m, sizes.nr, sizes.nc, t)
	}
}

// TestRowMajor checks that Mat and Data look at the same numbers.
func TestRowMajor(t *testing.T) {
	m := NewDMatrix2d(3, 4)
	fill_access(m, 3, 4)
	for i, x := range m.Data() {
		if x != float64(i+1) {
			t.Fatalf("element %d is %f, wanted %d", i, x, i+1)
		}
	}
}

// TestSub checks the copy is a copy and lands in the right place.
func TestSub(t *testing.T) {
	m := NewDMatrix2d(6, 6)
	fill_access(m, 6, 6)
	s := m.Sub(2, 4, 2, 4)
	if r, c := s.Size(); r != 2 || c != 2 {
		t.Fatalf("sub matrix is %d x %d", r, c)
	}
	want := []float64{15, 16, 21, 22}
	for i, x := range s.Data() {
		if x != want[i] {
			t.Errorf("sub element %d got %f wanted %f", i, x, want[i])
		}
	}
	m.Mat[2][2] = -1
	if s.Mat[0][0] != 15 {
		t.Error("sub matrix changed when the parent was changed")
	}
}

func TestMinMax(t *testing.T) {
	m := NewDMatrix2d(2, 3)
	fill_access(m, 2, 3)
	m.Mat[1][0] = -7
	if min, max := m.MinMax(); min != -7 || max != 6 {
		t.Errorf("minmax got %f %f", min, max)
	}
	min, max := NewDMatrix2d(0, 0).MinMax()
	if !math.IsInf(min, 1) || !math.IsInf(max, -1) {
		t.Errorf("empty matrix minmax got %f %f", min, max)
	}
}

func TestIsSymmetric(t *testing.T) {
	m := NewDMatrix2d(3, 3)
	m.Mat[0][2], m.Mat[2][0] = 4, 4
	if !m.IsSymmetric(0) {
		t.Error("symmetric matrix not recognised")
	}
	m.Mat[2][0] = 4.1
	if m.IsSymmetric(0.01) {
		t.Error("asymmetric matrix called symmetric")
	}
	if NewDMatrix2d(2, 3).IsSymmetric(0) {
		t.Error("non-square matrix called symmetric")
	}
}
