// 3 Aug 2020

// Package numseq counts the records in a fasta file without parsing it.
package numseq

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/embedsub/pkg/seq"
)

var hdr = []byte{seq.NL, '>'}

// countHdr counts header lines. A ">" only starts a record at the
// start of a line, so ">" inside a comment is not counted.
func countHdr(b []byte) int {
	n := bytes.Count(b, hdr)
	if len(b) > 0 && b[0] == '>' {
		n++
	}
	return n
}

// Count maps a file and counts the records in it.
func Count(fname string) (int, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return 0, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return 0, err
	}
	if fi.Size() == 0 {
		return 0, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()
	return countHdr(mm), nil
}
