package blockindex

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrUnknownBackend = errors.New("blockindex: unknown pointer array backend")
	ErrBlockTooLong   = errors.New("blockindex: block length too large for a table backend")
)

// maxTableBlockLength bounds the 4^L tables of LookupTable and BitVector.
const maxTableBlockLength = 12

// PointerArray maps a query word to the half-open interval of the
// permutation array whose blocks match it. Interval is total over every
// validated word of length in [1, blockLen].
type PointerArray interface {
	Interval(word []byte) (lo, hi int)
	// SizeInBytes is an estimate of the memory held by the structure.
	SizeInBytes() int
}

// Backend selects the PointerArray implementation built by a Builder.
type Backend int

const (
	LookupTable Backend = iota
	BitVector
	Search
)

func (b Backend) String() string {
	switch b {
	case LookupTable:
		return "lookup"
	case BitVector:
		return "bitvector"
	case Search:
		return "search"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend is the inverse of Backend.String.
func ParseBackend(name string) (Backend, error) {
	for _, b := range []Backend{LookupTable, BitVector, Search} {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// boundaryFunc returns the first permutation position whose block is >= the
// word of the given rank.
type boundaryFunc func(rank int) int

// shortTail is the final block when it is shorter than blockLen, together
// with its position in the permutation array. pos is -1 when the text length
// is a multiple of blockLen.
type shortTail struct {
	content []byte
	pos     int
}

func newShortTail(text []byte, perm []int, blockLen int) shortTail {
	last := BlockCount(len(text), blockLen) - 1
	content := block(text, blockLen, last)
	if len(content) == blockLen {
		return shortTail{pos: -1}
	}
	for i, b := range perm {
		if b == last {
			return shortTail{content: content, pos: i}
		}
	}
	return shortTail{pos: -1}
}

// clip drops the short block from [lo, hi) when word is not a prefix of it.
// That only happens for words made of the block followed by T's: the short
// block sorts after every full block sharing its content, so when it falls in
// the interval of such a word it is the last entry.
func (s shortTail) clip(word []byte, lo, hi int) int {
	if s.pos >= lo && s.pos < hi && !bytes.HasPrefix(s.content, word) {
		return s.pos
	}
	return hi
}

// rankedInterval computes [lo, hi) from padded word ranks. Without a
// successor the interval runs to the end of the permutation array.
func rankedInterval(word []byte, blockLen, n int, tail shortTail, boundary boundaryFunc) (int, int) {
	lo := boundary(WordRank(pad(word, blockLen)))
	hi := n
	if next, ok := Successor(word); ok {
		hi = boundary(WordRank(pad(next, blockLen)))
	}
	return lo, tail.clip(word, lo, hi)
}

// walkBoundaries visits the word ranks in ascending order together with the
// permutation position that is their boundary. visit is called once per rank.
func walkBoundaries(text []byte, perm []int, blockLen int, visit func(rank, pos int)) {
	cursor := pad(nil, blockLen)
	rank, total := 0, wordSpace(blockLen)
	for i, b := range perm {
		blk := block(text, blockLen, b)
		for rank < total && compareBlock(blk, cursor) >= 0 {
			visit(rank, i)
			rank++
			increment(cursor)
		}
	}
	for ; rank < total; rank++ {
		visit(rank, len(perm))
	}
}
