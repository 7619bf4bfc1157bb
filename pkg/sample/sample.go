// Package sample draws uniform random subsets without replacement.
//
// A request for more items than there are gives back all of them.
// Asking for 250 sequences from a pool of 40 is not an error, it
// just means the pool is small.
package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// ErrInvalidArgument is returned for a negative sample size.
var ErrInvalidArgument = errors.New("invalid argument")

// NewRand returns a random source. With a seed, the source, and so every
// sample drawn from it, is reproducible. Without one it is seeded from
// the process-wide source.
func NewRand(seed *int64) *rand.Rand {
	if seed != nil {
		s := uint64(*seed)
		return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func checkK(k int) error {
	if k < 0 {
		return fmt.Errorf("%w: sample size %d", ErrInvalidArgument, k)
	}
	return nil
}

// Sample returns min(k, len(items)) elements of items. If k covers the
// whole pool, the result is a copy of items in their original order.
// Otherwise it is a partial Fisher-Yates shuffle of a copy, so items is
// never touched. rnd may be nil.
func Sample[T any](rnd *rand.Rand, items []T, k int) ([]T, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	if k >= len(items) {
		return slices.Clone(items), nil
	}
	if rnd == nil {
		rnd = NewRand(nil)
	}
	tmp := slices.Clone(items)
	for i := 0; i < k; i++ {
		j := i + rnd.IntN(len(tmp)-i)
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp[:k:k], nil
}

// Reservoir keeps a uniform sample of at most k items from a stream
// of unknown length, holding only k items at a time (algorithm R).
type Reservoir[T any] struct {
	rnd   *rand.Rand
	k     int
	seen  int
	items []T
}

// NewReservoir makes a reservoir for k items. rnd may be nil.
func NewReservoir[T any](rnd *rand.Rand, k int) (*Reservoir[T], error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand(nil)
	}
	return &Reservoir[T]{rnd: rnd, k: k}, nil
}

// Add offers one item to the reservoir.
func (r *Reservoir[T]) Add(x T) {
	r.seen++
	if len(r.items) < r.k {
		r.items = append(r.items, x)
		return
	}
	if j := r.rnd.IntN(r.seen); j < r.k {
		r.items[j] = x
	}
}

// Seen is the number of items offered so far.
func (r *Reservoir[T]) Seen() int { return r.seen }

// Items returns a copy of the current sample. If no more than k items
// were offered, they come back in the order they were added.
func (r *Reservoir[T]) Items() []T { return slices.Clone(r.items) }
