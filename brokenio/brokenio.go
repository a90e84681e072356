// brokenio wraps an io.Reader so that reading goes wrong in a
// controlled way. It is for testing readers of coordinate files.
// You can make it
//   - look like a zero length file (EOF on the first read),
//   - stop with an error after some number of bytes,
//   - fail at random with a given probability.
// The random failures come from a seeded generator, so a test run can
// be repeated.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is what comes back when we decide a read should fail.
var ErrBroken = errors.New("brokenio: read failed on purpose")

// Reader wraps another reader.
type Reader struct {
	rdrOrig   io.Reader
	zeroFile  bool    // EOF on the first call
	failAfter int     // error once this many bytes have gone through. < 0 for never
	probFail  float64 // chance that any one call fails
	rnd       *rand.Rand
	nCalled   int
	nByte     int
}

// NewReader returns a wrapper around rIn which does not break until
// told to.
func NewReader(rIn io.Reader, seed int64) *Reader {
	return &Reader{rdrOrig: rIn, failAfter: -1, rnd: rand.New(rand.NewSource(seed))}
}

// SetZeroFile makes the first read return io.EOF and nothing else.
func (r *Reader) SetZeroFile(b bool) { r.zeroFile = b }

// SetFailAfter sets the number of bytes we let through before failing.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// SetProbFail sets the probability of a call failing. It should be
// between zero and one. We do not check.
func (r *Reader) SetProbFail(p float64) { r.probFail = p }

// NByte is how much has been passed on.
func (r *Reader) NByte() int { return r.nByte }

// Read passes data on from the wrapped reader until it is time to break.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.nCalled++
	if r.nCalled == 1 && r.zeroFile {
		return 0, io.EOF
	}
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, fmt.Errorf("%w after %d bytes", ErrBroken, r.nByte)
		}
		p = p[:min(len(p), left)]
	}
	if r.probFail > 0 && r.rnd.Float64() < r.probFail {
		return 0, fmt.Errorf("%w on call %d", ErrBroken, r.nCalled)
	}
	n, err := r.rdrOrig.Read(p)
	r.nByte += n
	return n, err
}
