package preview_test

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/camaps/matrix"
	. "github.com/andrew-torda/camaps/pkg/preview"
)

func TestImage(t *testing.T) {
	const n = 64
	b := matrix.NewDMatrix2d(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b.Mat[i][j] = float64(max(i-j, j-i))
		}
	}
	img, err := Image(b, "64aa block 1")
	if err != nil {
		t.Fatal(err)
	}
	bnds := img.Bounds()
	if bnds.Dx() != 256 || bnds.Dy() != 256+24 {
		t.Fatalf("image is %v", bnds)
	}
	// diagonal is the minimum, so black. Far corner is white.
	if c := color.GrayModel.Convert(img.At(0, 24)).(color.Gray); c.Y != 0 {
		t.Errorf("diagonal pixel is %v", c)
	}
	if c := color.GrayModel.Convert(img.At(255, 24)).(color.Gray); c.Y != 255 {
		t.Errorf("corner pixel is %v", c)
	}
	dark := 0
	for x := 0; x < bnds.Dx(); x++ {
		for y := 0; y < 24; y++ {
			if c := color.GrayModel.Convert(img.At(x, y)).(color.Gray); c.Y < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("no caption was drawn")
	}
}

func TestWritePNG(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "b.png")
	if err := WritePNG(fname, matrix.NewDMatrix2d(4, 4), "flat"); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if _, err := png.Decode(fp); err != nil {
		t.Error("could not decode what we wrote", err)
	}
	if err := WritePNG(fname, matrix.NewDMatrix2d(0, 0), "empty"); err == nil {
		t.Error("empty block should not be drawn")
	}
}
