// 6 Apr 2020
// seqcalc does simple sums over a set of sampled sequences, so we can
// say how big a job we are about to hand over.
// Nothing here can fail. The numbers are only for the log.

package seqcalc

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/embedsub/pkg/seq"
	"github.com/andrew-torda/embedsub/pkg/seq/common"
)

// Per residue embedding size. One 1024 long float32 vector for each of
// three layers.
const (
	embedDim    = 1024
	embedLayers = 3
	bytesPerF32 = 4
)

// Cost is what a set of sequences will cost to embed.
type Cost struct {
	TotalResidues int
	EstimatedMB   float64
}

// Estimate adds up residues and converts them to megabytes of
// per-residue embeddings. An empty set costs nothing.
func Estimate(seqs []seq.Seq) Cost {
	var c Cost
	for _, s := range seqs {
		c.TotalResidues += s.Len()
	}
	c.EstimatedMB = bytesPerF32 * float64(c.TotalResidues) * embedDim * embedLayers * math.Pow(10, -6)
	return c
}

const (
	colCount = iota // column in the usage table with the raw count
	colFrac         // column with the fraction
	nCol
)

// Usage is how often each residue type turns up.
// Tab.Mat[i] belongs to Syms[i] and holds the count, then the fraction.
type Usage struct {
	Syms  []byte
	Tab   *matrix.FMatrix2d
	total int
}

// Composition tallies residue types over all sequences.
// A symbol's fraction is the fraction of non-gaps in which you find
// that symbol. The gap's fraction is the fraction of all positions.
// This means the non-gap fractions add up to 1.
func Composition(seqs []seq.Seq) Usage {
	var symUsed [256]bool
	var raw [256]int
	for _, s := range seqs {
		for _, c := range s.GetSeq() {
			symUsed[c] = true
			raw[c]++
		}
	}
	var u Usage
	for i, used := range symUsed {
		if used {
			u.Syms = append(u.Syms, byte(i))
		}
	}
	if len(u.Syms) == 0 {
		return u
	}
	u.Tab = matrix.NewFMatrix2d(len(u.Syms), nCol)
	nonGap := 0
	for _, c := range u.Syms {
		u.total += raw[c]
		if c != common.GapChar {
			nonGap += raw[c]
		}
	}
	for i, c := range u.Syms {
		row := u.Tab.Mat[i]
		row[colCount] = float32(raw[c])
		switch {
		case c == common.GapChar:
			row[colFrac] = float32(raw[c]) / float32(u.total)
		case nonGap > 0:
			row[colFrac] = float32(raw[c]) / float32(nonGap)
		}
	}
	return u
}

// Frac is the fraction for one symbol, zero if it was never seen.
func (u Usage) Frac(c byte) float32 {
	for i, s := range u.Syms {
		if s == c {
			return u.Tab.Mat[i][colFrac]
		}
	}
	return 0
}

// Count is the number of times a symbol was seen.
func (u Usage) Count(c byte) int {
	for i, s := range u.Syms {
		if s == c {
			return int(u.Tab.Mat[i][colCount])
		}
	}
	return 0
}

// String gives "A:0.083 C:0.012 ..." for the log.
func (u Usage) String() string {
	var sb strings.Builder
	for i, c := range u.Syms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%c:%.3f", c, u.Tab.Mat[i][colFrac])
	}
	return sb.String()
}
