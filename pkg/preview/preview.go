// Package preview draws one block as a grey scale picture with a line
// of text on top. Near is dark, far is light. It is only for looking
// at a dataset by eye.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/andrew-torda/matrix"
	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"

	dmatrix "github.com/andrew-torda/camaps/matrix"
)

const (
	minPix   = 256 // blocks smaller than this get scaled up
	capHt    = 24  // pixels for the caption band
	fontSize = 12
)

// normalise maps a block to [0, 1] in a float32 matrix. A block with
// all elements the same comes out all zero.
func normalise(b *dmatrix.DMatrix2d) *matrix.FMatrix2d {
	nr, nc := b.Size()
	out := matrix.NewFMatrix2d(nr, nc)
	lo, hi := b.MinMax()
	span := hi - lo
	if span <= 0 {
		return out
	}
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			out.Mat[i][j] = float32((b.Mat[i][j] - lo) / span)
		}
	}
	return out
}

// Image draws the block with caption above it.
func Image(b *dmatrix.DMatrix2d, caption string) (*image.RGBA, error) {
	nr, nc := b.Size()
	if nr == 0 || nc == 0 {
		return nil, fmt.Errorf("cannot draw a %d x %d block", nr, nc)
	}
	scale := max(1, minPix/max(nr, nc))
	img := image.NewRGBA(image.Rect(0, 0, nc*scale, nr*scale+capHt))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	grey := normalise(b)
	for i, row := range grey.Mat {
		for j, v := range row {
			c := color.Gray{Y: uint8(v * 255)}
			r := image.Rect(j*scale, capHt+i*scale, (j+1)*scale, capHt+(i+1)*scale)
			draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
		}
	}

	font, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, err
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(font)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(image.Rect(0, 0, img.Bounds().Dx(), capHt))
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)
	if _, err := ctx.DrawString(caption, freetype.Pt(4, capHt-8)); err != nil {
		return nil, err
	}
	return img, nil
}

// WritePNG draws the block and writes it to fname.
func WritePNG(fname string, b *dmatrix.DMatrix2d, caption string) error {
	img, err := Image(b, caption)
	if err != nil {
		return err
	}
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(fp, img); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
