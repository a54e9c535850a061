package blockindex

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyText          = errors.New("blockindex: empty text")
	ErrInvalidBlockLength = errors.New("blockindex: block length must be positive")
)

type Builder struct {
	text      string
	blockLen  int
	backend   Backend
	useLCP    bool
	normalize bool
}

func NewBuilder(text string, blockLen int) *Builder {
	return &Builder{
		text:     text,
		blockLen: blockLen,
		backend:  LookupTable,
		useLCP:   true,
	}
}

// Selects the pointer array implementation. LookupTable is the default.
func (b *Builder) Backend(kind Backend) *Builder {
	b.backend = kind
	return b
}

// Skips the LCP array of the Search backend.
// Saves O(n) memory, the upper bound of a query becomes a second binary search.
// Has no effect on the other backends.
func (b *Builder) SkipLCP() *Builder {
	b.useLCP = false
	return b
}

// Applies NFKC normalization and upper-casing to the text and to every query
// word before validation, so "acgt" or full-width "ＡＣＧＴ" are accepted.
// Without it any byte outside {A,C,G,T} is rejected.
func (b *Builder) Normalize() *Builder {
	b.normalize = true
	return b
}

func (b *Builder) Build() (*Index, error) {
	if b.blockLen <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBlockLength, b.blockLen)
	}
	text := []byte(applyTransforms(b.text, b.normalize))
	if len(text) == 0 {
		return nil, ErrEmptyText
	}
	if err := validate(text); err != nil {
		return nil, err
	}

	switch b.backend {
	case LookupTable, BitVector:
		if b.blockLen > maxTableBlockLength {
			return nil, fmt.Errorf("%w: %d > %d for backend %s", ErrBlockTooLong, b.blockLen, maxTableBlockLength, b.backend)
		}
	case Search:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, b.backend)
	}

	perm := BuildPermutation(text, b.blockLen)

	var pa PointerArray
	switch b.backend {
	case LookupTable:
		pa = newLookupTable(text, perm, b.blockLen)
	case BitVector:
		bv, err := newBitVector(text, perm, b.blockLen)
		if err != nil {
			return nil, err
		}
		pa = bv
	case Search:
		pa = newSearch(text, perm, b.blockLen, b.useLCP)
	}

	return &Index{
		text:      text,
		blockLen:  b.blockLen,
		perm:      perm,
		pointers:  pa,
		backend:   b.backend,
		normalize: b.normalize,
	}, nil
}

func applyTransforms(s string, normalize bool) string {
	if normalize {
		s = strings.ToUpper(norm.NFKC.String(s))
	}
	return s
}

// Index is immutable once built and safe for concurrent queries.
type Index struct {
	text      []byte
	blockLen  int
	perm      []int
	pointers  PointerArray
	backend   Backend
	normalize bool
}

// Interval returns the half-open range of the permutation array whose blocks
// start with word.
func (x *Index) Interval(word string) (int, int, error) {
	w := []byte(applyTransforms(word, x.normalize))
	if err := ValidateWord(w, x.blockLen); err != nil {
		return 0, 0, err
	}
	lo, hi := x.pointers.Interval(w)
	return lo, hi, nil
}

// Query returns the indices of the blocks starting with word, in block
// content order. The result aliases the index and must not be modified.
func (x *Index) Query(word string) ([]int, error) {
	lo, hi, err := x.Interval(word)
	if err != nil {
		return nil, err
	}
	return x.perm[lo:hi:hi], nil
}

// Offsets is like Query but returns text offsets of the matching blocks.
func (x *Index) Offsets(word string) ([]int, error) {
	blocks, err := x.Query(word)
	if err != nil {
		return nil, err
	}
	offsets := make([]int, len(blocks))
	for i, b := range blocks {
		offsets[i] = b * x.blockLen
	}
	return offsets, nil
}

func (x *Index) Count(word string) (int, error) {
	lo, hi, err := x.Interval(word)
	return hi - lo, err
}

// Len returns the number of blocks.
func (x *Index) Len() int { return len(x.perm) }

func (x *Index) BlockLen() int { return x.blockLen }

func (x *Index) Backend() Backend { return x.backend }

// Block returns the content of block i.
func (x *Index) Block(i int) string {
	return string(block(x.text, x.blockLen, i))
}

// Permutation returns a copy of the block indices sorted by content.
func (x *Index) Permutation() []int {
	return append([]int(nil), x.perm...)
}

// SizeInBytes reports the memory held by the pointer array alone.
func (x *Index) SizeInBytes() int {
	return x.pointers.SizeInBytes()
}
