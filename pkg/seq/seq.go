// 20 Dec 2017

// Package seq reads and writes sequences in fasta format.
// Reading is lazy. A file is mapped into memory and records are
// handed out one at a time, so a big collection never has to sit
// in memory as a whole.
package seq

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a sequence file does not exist.
	ErrNotFound = errors.New("sequence file not found")
	// ErrParse is returned for input that is not fasta.
	ErrParse = errors.New("malformed fasta")
)

// Constants
const cmmt_char byte = '>' // and this introduces comments in fasta format

// Seq is one sequence record. The comment is everything on the header
// line after the ">".
type Seq struct {
	cmmt string
	seq  []byte
}

// New makes a sequence from a comment and residues. The residues are
// not copied.
func New(cmmt string, s []byte) Seq { return Seq{cmmt: cmmt, seq: s} }

// GetSeq returns the sequence as the original byte slice
func (s Seq) GetSeq() []byte { return s.seq }

// GetCmmt returns the comment, without the leading ">"
func (s Seq) GetCmmt() string { return s.cmmt }

// Len is the number of residues.
func (s Seq) Len() int { return len(s.seq) }

// ID returns the first word in the comment, which is the identifier
// in every collection we read. Given
//
//	>sp|P69905|HBA_HUMAN Hemoglobin subunit alpha
//
// it returns "sp|P69905|HBA_HUMAN".
func (s Seq) ID() string {
	tmp := strings.Fields(s.cmmt)
	if len(tmp) == 0 {
		return ""
	}
	return tmp[0]
}

// String returns a sequence, with its comment at the start as
// a single string
func (s Seq) String() string {
	return fmt.Sprintf("%c%s\n%s", cmmt_char, s.cmmt, s.seq)
}

// Str2Seqs takes some strings and returns them as sequences.
// prefix is an optional argument. Sequences need names/comments. If
// prefix is not given, sequences will be called "s0", "s1", ...
func Str2Seqs(sIn []string, prefix ...string) []Seq {
	base := "s"
	if prefix != nil {
		base = prefix[0]
	}
	seqs := make([]Seq, 0, len(sIn))
	for i, s := range sIn {
		seqs = append(seqs, Seq{cmmt: fmt.Sprint(base, i), seq: []byte(s)})
	}
	return seqs
}
