// 3 Aug 2020

package seq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/edsrzf/mmap-go"
)

// File is a fasta file opened for lazy reading. The file is mapped
// read-only, so records are paged in as the reader walks over them.
type File struct {
	*Reader
	fp *os.File
	mm mmap.MMap
}

// openErr marks missing files so callers can test with errors.Is.
func openErr(fname string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, fname, err)
	}
	return fmt.Errorf("opening %s: %w", fname, err)
}

// Open opens a fasta file. Close it when finished. Sequences handed out
// by Next stay valid after Close.
func Open(fname string) (*File, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, openErr(fname, err)
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("stat %s: %w", fname, err)
	}
	if fi.IsDir() {
		fp.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrParse, fname)
	}
	f := &File{fp: fp}
	if fi.Size() == 0 { // mmap will not map zero bytes
		f.Reader = newReader(&byteLiner{})
		return f, nil
	}
	if f.mm, err = mmap.Map(fp, mmap.RDONLY, 0); err != nil {
		fp.Close()
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	f.Reader = newReader(&byteLiner{b: f.mm})
	return f, nil
}

// Close unmaps and closes the file.
func (f *File) Close() error {
	var err error
	if f.mm != nil {
		err = f.mm.Unmap()
		f.mm = nil
	}
	return errors.Join(err, f.fp.Close())
}

// Readfile takes a filename and reads all the sequences from it.
// A name of "" or "-" means stdin.
func Readfile(fname string) ([]Seq, error) {
	if fname == "" || fname == "-" {
		return ReadAll(NewReader(os.Stdin))
	}
	f, err := Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAll(f.Reader)
}

// WriteFasta writes sequences to w, c_per_line residues to a line.
// A record with no residues is written as a bare header.
func WriteFasta(w io.Writer, seqs []Seq) error {
	const c_per_line = 60
	bw := bufio.NewWriter(w)
	for _, seq := range seqs {
		bw.WriteByte(cmmt_char)
		bw.WriteString(seq.cmmt)
		bw.WriteByte(NL)
		s := seq.seq
		for ; len(s) > c_per_line; s = s[c_per_line:] {
			bw.Write(s[:c_per_line])
			bw.WriteByte(NL)
		}
		if len(s) > 0 {
			bw.Write(s)
			bw.WriteByte(NL)
		}
	}
	return bw.Flush()
}

// WriteToF takes a filename and a slice of sequences.
// It writes the sequences to the file.
func WriteToF(outseq_fname string, seqs []Seq) (err error) {
	fp, err := os.Create(outseq_fname)
	if err != nil {
		return fmt.Errorf("creating output sequence file: %w", err)
	}
	defer func() {
		if cerr := fp.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", outseq_fname, cerr)
		}
	}()
	if err = WriteFasta(fp, seqs); err != nil {
		return fmt.Errorf("writing %s: %w", outseq_fname, err)
	}
	return nil
}
