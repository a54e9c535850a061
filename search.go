package blockindex

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/viniciusth/rmq"
)

// searchArray answers intervals by binary search over the permutation array.
// It holds no per-rank table, so it works for any block length.
type searchArray struct {
	text     []byte
	perm     []int
	blockLen int
	lcp      []int
	lcpRMQ   *rmq.RMQHybridNaive[int]
	tail     shortTail
}

// newSearch builds a searchArray. Without the LCP array the upper bound is
// found with a second binary search instead of range-min queries.
func newSearch(text []byte, perm []int, blockLen int, useLCP bool) *searchArray {
	s := &searchArray{
		text:     text,
		perm:     perm,
		blockLen: blockLen,
		tail:     newShortTail(text, perm, blockLen),
	}
	if useLCP {
		s.lcp = BuildLCPArray(perm, text, blockLen)
		if len(s.lcp) > 0 {
			s.lcpRMQ = rmq.NewRMQHybridNaive(s.lcp)
		}
	}
	return s
}

func (s *searchArray) block(i int) []byte {
	return block(s.text, s.blockLen, s.perm[i])
}

// lowerBound is the first position whose block is >= word.
func (s *searchArray) lowerBound(word []byte) int {
	return sort.Search(len(s.perm), func(i int) bool {
		return compareBlock(s.block(i), word) >= 0
	})
}

func (s *searchArray) Interval(word []byte) (int, int) {
	n := len(s.perm)
	l := s.lowerBound(pad(word, s.blockLen))

	if s.lcpRMQ == nil {
		hi := n
		if next, ok := Successor(word); ok {
			hi = s.lowerBound(pad(next, s.blockLen))
		}
		return l, s.tail.clip(word, l, hi)
	}

	// Every match has word as a prefix and they are contiguous from l.
	if l == n || !bytes.HasPrefix(s.block(l), word) {
		return l, l
	}

	// we have F F F T T T over "block l+i no longer shares the prefix".
	r := sort.Search(n-l, func(i int) bool {
		if i == 0 {
			return false
		}
		return s.lcp[s.lcpRMQ.Query(l, l+i-1)] < len(word)
	})
	return l, l + r
}

func (s *searchArray) SizeInBytes() int {
	// The RMQ structure is not counted: its layout is internal to rmq.
	return len(s.lcp) * strconv.IntSize / 8
}
