// Package scratch holds temporary files for the length of one job.
package scratch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrew-torda/embedsub/pkg/seq"
)

// ErrMaterialize is returned when the sampled sequences cannot be
// written out.
var ErrMaterialize = errors.New("cannot write sampled sequences")

// SeqFname is the name of the sequence file inside a scratch directory.
const SeqFname = "sequences.fasta"

// Do makes a temporary directory, hands it to fn and removes it again
// however fn finishes, panics included. If removal fails, that error
// is joined to fn's.
func Do(prefix string, fn func(dir string) error) (err error) {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return fmt.Errorf("%w: making scratch directory: %w", ErrMaterialize, err)
	}
	defer func() {
		if rerr := os.RemoveAll(dir); rerr != nil {
			err = errors.Join(err, fmt.Errorf("removing scratch directory %s: %w", dir, rerr))
		}
	}()
	return fn(dir)
}

// WriteSeqs writes seqs in fasta format to a fresh file in dir and
// returns its path.
func WriteSeqs(dir string, seqs []seq.Seq) (string, error) {
	fname := filepath.Join(dir, SeqFname)
	if _, err := os.Stat(fname); err == nil {
		return "", fmt.Errorf("%w: %s already exists", ErrMaterialize, fname)
	}
	if err := seq.WriteToF(fname, seqs); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMaterialize, err)
	}
	return fname, nil
}
