// 15 May 2025

// Package seqlen decides which sequences are the right length.
package seqlen

import (
	"io"

	"github.com/andrew-torda/embedsub/pkg/seq"
)

const (
	DefaultMin = 50
	DefaultMax = 100
)

// Window is an open interval of lengths. A sequence passes if
// Min < length < Max. Sequences exactly Min or Max long do not.
type Window struct {
	Min int
	Max int
}

// Default is the window used when a config says nothing.
func Default() Window { return Window{Min: DefaultMin, Max: DefaultMax} }

// Passes reports whether a length lies strictly inside the window.
func (w Window) Passes(n int) bool { return w.Max > n && n > w.Min }

// Empty is true if no length can ever pass.
func (w Window) Empty() bool { return w.Max-w.Min < 2 }

// Filter pulls records from next until io.EOF and calls keep for every
// one inside the window. It returns how many were read and kept.
// Errors from next or keep stop the loop and are returned as they are.
func Filter(next func() (seq.Seq, error), w Window, keep func(seq.Seq) error) (nRead, nKept int, err error) {
	for {
		s, err := next()
		if err == io.EOF {
			return nRead, nKept, nil
		}
		if err != nil {
			return nRead, nKept, err
		}
		nRead++
		if !w.Passes(s.Len()) {
			continue
		}
		nKept++
		if err := keep(s); err != nil {
			return nRead, nKept, err
		}
	}
}
