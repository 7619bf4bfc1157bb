// 31 July 2020

// Package randseq writes collections of random protein sequences.
// They are used as test data for sampling and for benchmarks.
package randseq

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/andrew-torda/embedsub/pkg/seq/common"
)

const (
	nPadWhite = 9 // For padding for adding whitespace to sequences
)

var letters = []byte{'A', 'C', 'D', 'E', 'F', 'G',
	'H', 'I', 'K', 'L', 'M', 'N', 'P', 'Q', 'R', 'S', 'T', 'V', 'W', 'Y'}

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed  int64     // random number seed
	Wrtr   io.Writer // where we write to
	Cmmt   string    // Comment for the sequences, after the identifier
	Nseq   int       // number of sequences
	MinLen int       // shortest sequence
	MaxLen int       // longest sequence, inclusive
	Gaps   bool      // Sprinkle gap characters in
	White  bool      // Add random white space and line breaks
}

// getseq returns a byte slice with a random sequence in it.
// Capacity is left over for white space to be added later.
func getseq(seqlen int, rnd *rand.Rand, gaps bool) []byte {
	space := seqlen + (seqlen / nPadWhite) + 1
	ret := make([]byte, seqlen, space)
	for i := 0; i < seqlen; i++ {
		if gaps && rnd.IntN(len(letters)*4) == 0 {
			ret[i] = common.GapChar
			continue
		}
		ret[i] = letters[rnd.IntN(len(letters))]
	}
	return ret
}

// addInner is used by addspace to add a space or newline
func addInner(s []byte, n int, c byte, rnd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, 0)
		pos := rnd.IntN(len(s))
		copy(s[pos+1:], s[pos:])
		s[pos] = c
	}
	return s
}

// addspace is given a byte array and adds white characters at random
// positions. We flip a coin. Heads we don't add a newline. Tails we
// make about 1/9 of the white space newlines.
func addspace(s []byte, rnd *rand.Rand) []byte {
	toAdd := cap(s) - len(s)
	nNL := 0 // Number of new lines to add
	if rnd.IntN(2) == 0 {
		nNL = toAdd / 9
	}
	s = addInner(s, toAdd-nNL, ' ', rnd)
	return addInner(s, nNL, '\n', rnd)
}

// writeseq takes a bytestring which is our sequence. It adds a header
// and writes it out. The identifiers are r1, r2, ... padded with zeros,
// so they stay unique and sort in order.
func writeseq(sChan <-chan []byte, args *RandSeqArgs, wg *sync.WaitGroup, errp *error) {
	defer wg.Done()

	width := len(fmt.Sprintf("%d", args.Nseq))
	spacernd := rand.New(rand.NewPCG(uint64(args.Iseed), 1))
	var i int
	for s := range sChan {
		if *errp != nil {
			continue // drain, so the sender is not blocked
		}
		i++
		if args.White {
			s = addspace(s, spacernd)
		}
		if _, err := fmt.Fprintf(args.Wrtr, ">r%0*d %s\n%s\n", width, i, args.Cmmt, s); err != nil {
			*errp = fmt.Errorf("writing sequence %d: %w", i, err)
		}
	}
}

// RandSeqMain writes random sequences to an io.Writer. Lengths are
// uniform over [MinLen, MaxLen]. The same seed gives the same output.
func RandSeqMain(args *RandSeqArgs) error {
	switch {
	case args.Wrtr == nil:
		return errors.New("randseq: no writer")
	case args.Nseq < 0:
		return fmt.Errorf("randseq: negative number of sequences %d", args.Nseq)
	case args.MinLen < 0 || args.MaxLen < args.MinLen:
		return fmt.Errorf("randseq: bad length range %d to %d", args.MinLen, args.MaxLen)
	}
	var wg sync.WaitGroup
	var werr error
	rnd := rand.New(rand.NewPCG(uint64(args.Iseed), 0))
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &werr)
	for i := 0; i < args.Nseq; i++ {
		n := args.MinLen + rnd.IntN(args.MaxLen-args.MinLen+1)
		sChan <- getseq(n, rnd, args.Gaps)
	}
	close(sChan)
	wg.Wait()
	return werr
}
