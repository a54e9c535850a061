package blockindex

import (
	"errors"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

var (
	ErrTextTooLong = errors.New("blockindex: text has too many blocks for a bit vector")
)

// bitVector encodes the boundaries in unary: one 1 bit per word rank
// and one 0 bit per permutation entry, so that the boundary of rank w is
// rank0(select1(w)). Only the positions of the 1 bits are stored.
type bitVector struct {
	ones     *roaring.Bitmap
	blockLen int
	n        int
	tail     shortTail
}

// newBitVector expects blockLen <= maxTableBlockLength, checked by Build.
func newBitVector(text []byte, perm []int, blockLen int) (*bitVector, error) {
	if uint64(wordSpace(blockLen))+uint64(len(perm)) > math.MaxUint32 {
		return nil, ErrTextTooLong
	}
	ones := roaring.New()
	walkBoundaries(text, perm, blockLen, func(rank, pos int) {
		// pos zeros precede the rank-th one.
		ones.Add(uint32(rank + pos))
	})
	ones.RunOptimize()
	return &bitVector{
		ones:     ones,
		blockLen: blockLen,
		n:        len(perm),
		tail:     newShortTail(text, perm, blockLen),
	}, nil
}

func (v *bitVector) Interval(word []byte) (int, int) {
	return rankedInterval(word, v.blockLen, v.n, v.tail, v.boundary)
}

func (v *bitVector) boundary(rank int) int {
	if uint64(rank) >= v.ones.GetCardinality() {
		return v.n
	}
	p, err := v.select1(rank)
	if err != nil {
		return v.n
	}
	return v.rank0(p)
}

// select1 returns the position of the k-th (0-indexed) 1 bit.
func (v *bitVector) select1(k int) (int, error) {
	p, err := v.ones.Select(uint32(k))
	return int(p), err
}

// rank0 counts the 0 bits at positions <= p.
func (v *bitVector) rank0(p int) int {
	return p + 1 - int(v.ones.Rank(uint32(p)))
}

func (v *bitVector) SizeInBytes() int {
	return int(v.ones.GetSizeInBytes())
}
