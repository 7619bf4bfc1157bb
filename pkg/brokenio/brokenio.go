// brokenio wraps readers and writers so they fail on purpose.
// Typical use: in a test, you have a reader over a fasta file. You write
// rdr = brokenio.NewReader(rdr, seed) and set a failure rate. Everything
// works as before, but with artificial errors.
// On the first read we may also return nothing at all. This is what one
// often sees on a zero length file.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
)

// ErrBroken is the error behind every artificial failure.
var ErrBroken = errors.New("brokenio: artificial failure")

// A Reader is modelled on the various Readers in the standard library,
// but with variables controlling the frequency of errors.
// Probabilities are fractions, so 0.05 means failure in 5% of calls.
type Reader struct {
	rdr_orig     io.Reader
	rnd          *rand.Rand
	probZeroFile float32 // Probability of returning a zero length file
	probFail     float32 // Probability a read fails
	failAfter    int     // fail once this many bytes have gone through, if > 0
	nCalled      int
	nByte        int
}

// NewReader returns a new Reader, a wrapper around the old one.
// The same seed gives the same failures.
func NewReader(rIn io.Reader, seed uint64) *Reader {
	return &Reader{rdr_orig: rIn, rnd: rand.New(rand.NewPCG(seed, 2))}
}

// SetProbZeroFile sets the rate at which we simply return EOF on the
// first read. We do not check if the argument is valid.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail sets the probability of a read failing.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes reads fail once n bytes have been handed out.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// NByte is how much data has gone through.
func (r *Reader) NByte() int { return r.nByte }

// Read wraps the original reader and sums up the amount of data that
// has gone through.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.nCalled++
	if r.nCalled == 1 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		return 0, io.EOF
	}
	if r.failAfter > 0 {
		if left := r.failAfter - r.nByte; left <= 0 {
			return 0, fmt.Errorf("%w after %d bytes", ErrBroken, r.nByte)
		} else if len(p) > left {
			p = p[:left]
		}
	}
	if r.probFail > 0 && r.rnd.Float32() < r.probFail {
		return 0, fmt.Errorf("%w on call %d", ErrBroken, r.nCalled)
	}
	n, err := r.rdr_orig.Read(p)
	r.nByte += n
	return n, err
}

// Writer accepts a fixed number of bytes, then fails, like a full disk.
type Writer struct {
	w     io.Writer
	limit int
	nByte int
}

// NewWriter wraps w so that writing more than limit bytes fails.
func NewWriter(w io.Writer, limit int) *Writer { return &Writer{w: w, limit: limit} }

func (w *Writer) Write(p []byte) (int, error) {
	left := w.limit - w.nByte
	if len(p) <= left {
		n, err := w.w.Write(p)
		w.nByte += n
		return n, err
	}
	n, err := w.w.Write(p[:max(left, 0)])
	w.nByte += n
	if err == nil {
		err = fmt.Errorf("%w: no space left after %d bytes", ErrBroken, w.nByte)
	}
	return n, err
}
