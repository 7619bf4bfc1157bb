// Reader for fasta format files.

package seq

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const NL = '\n'

// liner hands back one line at a time, without the newline.
// The slice is only good until the next call.
type liner interface {
	line() ([]byte, error)
}

// byteLiner walks over a byte slice, usually a mapped file.
type byteLiner struct {
	b []byte
}

func (l *byteLiner) line() ([]byte, error) {
	if len(l.b) == 0 {
		return nil, io.EOF
	}
	if ndx := bytes.IndexByte(l.b, NL); ndx != -1 {
		ln := l.b[:ndx]
		l.b = l.b[ndx+1:]
		return ln, nil
	}
	ln := l.b // last line, no terminator
	l.b = nil
	return ln, nil
}

// bufLiner reads lines from a stream. Lines longer than the
// bufio buffer are glued together in buf.
type bufLiner struct {
	br  *bufio.Reader
	buf []byte
}

func (l *bufLiner) line() ([]byte, error) {
	l.buf = l.buf[:0]
	for {
		frag, err := l.br.ReadSlice(NL)
		l.buf = append(l.buf, frag...)
		switch {
		case err == nil:
			return l.buf[:len(l.buf)-1], nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == io.EOF:
			if len(l.buf) == 0 {
				return nil, io.EOF
			}
			return l.buf, nil
		default:
			return nil, err
		}
	}
}

type stateFn func(*Reader) stateFn

// Reader gives back the records of a fasta collection one at a time.
// It is single pass.
type Reader struct {
	src    liner
	state  stateFn
	lineno int
	cmmt   string // comment of the record being built
	seq    []byte // residues of the record being built
	out    Seq
	have   bool
	err    error
}

// NewReader returns a lazy reader for fasta from any stream.
func NewReader(rdr io.Reader) *Reader {
	return newReader(&bufLiner{br: bufio.NewReader(rdr)})
}

func newReader(src liner) *Reader {
	return &Reader{src: src, state: gstart}
}

// Next returns the next record. After the last one, it returns io.EOF.
// Once an error has been seen, it is returned for every later call.
func (r *Reader) Next() (Seq, error) {
	r.have = false
	for r.state != nil && !r.have {
		r.state = r.state(r)
	}
	if r.have {
		return r.out, nil
	}
	if r.err != nil {
		return Seq{}, r.err
	}
	return Seq{}, io.EOF
}

// readLine gets a line with any trailing carriage return removed.
// It returns false at the end of input or on error.
func (r *Reader) readLine() ([]byte, bool) {
	ln, err := r.src.line()
	if err != nil {
		if err != io.EOF {
			r.err = fmt.Errorf("reading fasta after line %d: %w", r.lineno, err)
		}
		return nil, false
	}
	r.lineno++
	if n := len(ln); n > 0 && ln[n-1] == '\r' {
		ln = ln[:n-1]
	}
	return ln, true
}

// emit hands the record under construction to Next.
func (r *Reader) emit() {
	r.out = Seq{cmmt: r.cmmt, seq: r.seq}
	r.have = true
	r.cmmt = ""
	r.seq = nil
}

// gstart is before the first header. Only blank lines are allowed.
func gstart(r *Reader) stateFn {
	ln, ok := r.readLine()
	if !ok {
		return nil
	}
	if len(ln) > 0 && ln[0] == cmmt_char {
		r.cmmt = string(ln[1:])
		return gseq
	}
	if len(bytes.TrimSpace(ln)) != 0 {
		r.err = fmt.Errorf("%w: line %d: sequence data before first header", ErrParse, r.lineno)
		return nil
	}
	return gstart
}

// gseq collects residues until the next header or end of input.
func gseq(r *Reader) stateFn {
	ln, ok := r.readLine()
	if !ok {
		if r.err == nil {
			r.emit()
		}
		return nil
	}
	if len(ln) > 0 && ln[0] == cmmt_char {
		r.emit()
		r.cmmt = string(ln[1:])
		return gseq
	}
	r.seq = appendNoWhite(r.seq, ln)
	return gseq
}

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// appendNoWhite appends s to t, dropping white space. It always copies,
// since s may point into a mapped file.
func appendNoWhite(t, s []byte) []byte {
	if t == nil {
		t = make([]byte, 0, len(s))
	}
	for _, c := range s {
		if !asciiSpace[c] {
			t = append(t, c)
		}
	}
	return t
}

// ReadAll drains a reader.
func ReadAll(r *Reader) ([]Seq, error) {
	var seqs []Seq
	for {
		s, err := r.Next()
		if err == io.EOF {
			return seqs, nil
		}
		if err != nil {
			return seqs, err
		}
		seqs = append(seqs, s)
	}
}
