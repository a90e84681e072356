// Package zwrap opens a coordinate file by mapping it into memory and
// optionally wraps it so reads go through a gzip decompressor.
// Upon calling Close, the decompressor is closed, the mapping is
// released and the underlying file is closed.
// We do not trust file names to tell us if something is compressed.
// We look at the first two bytes.

package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

var gzMagic = []byte{0x1f, 0x8b}

type FpGzip struct { // This is what we return.
	fp   *os.File
	mm   mmap.MMap // nil for an empty file
	rdr  io.Reader
	zrdr *gzip.Reader
}

// IsGzip says if b starts like a gzipped stream.
func IsGzip(b []byte) bool { return bytes.HasPrefix(b, gzMagic) }

// Open maps fname read-only. If the contents are gzipped, Read returns
// the decompressed bytes.
func Open(fname string) (*FpGzip, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if fi.IsDir() {
		fp.Close()
		return nil, errors.New(fname + " is a directory")
	}
	fc := &FpGzip{fp: fp}
	if fi.Size() == 0 { // mmap will not map zero bytes
		fc.rdr = bytes.NewReader(nil)
		return fc, nil
	}
	if fc.mm, err = mmap.Map(fp, mmap.RDONLY, 0); err != nil {
		fp.Close()
		return nil, err
	}
	fc.rdr = bytes.NewReader(fc.mm)
	if IsGzip(fc.mm) {
		if fc.zrdr, err = gzip.NewReader(fc.rdr); err != nil {
			fc.Close()
			return nil, errors.New("reading " + fname + " " + err.Error())
		}
		fc.rdr = fc.zrdr
	}
	return fc, nil
}

// Read makes sure we read from the compressed stream and
// not the underlying bytes, if the file was compressed.
func (fc *FpGzip) Read(p []byte) (int, error) { return fc.rdr.Read(p) }

// Compressed says if we are going through a decompressor.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Close closes the decompressor, unmaps, then closes the file.
func (fc *FpGzip) Close() error {
	var errs []error
	if fc.zrdr != nil {
		errs = append(errs, fc.zrdr.Close())
	}
	if fc.mm != nil {
		errs = append(errs, fc.mm.Unmap())
	}
	errs = append(errs, fc.fp.Close())
	return errors.Join(errs...)
}
