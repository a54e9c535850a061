package blockindex

import "strconv"

// lookupTable stores the boundary of every word rank in a direct table of
// alphabetSize^blockLen entries.
type lookupTable struct {
	table    []int
	blockLen int
	n        int
	tail     shortTail
}

// newLookupTable expects blockLen <= maxTableBlockLength, checked by Build.
func newLookupTable(text []byte, perm []int, blockLen int) *lookupTable {
	table := make([]int, wordSpace(blockLen))
	walkBoundaries(text, perm, blockLen, func(rank, pos int) {
		table[rank] = pos
	})
	return &lookupTable{
		table:    table,
		blockLen: blockLen,
		n:        len(perm),
		tail:     newShortTail(text, perm, blockLen),
	}
}

func (t *lookupTable) Interval(word []byte) (int, int) {
	return rankedInterval(word, t.blockLen, t.n, t.tail, t.boundary)
}

func (t *lookupTable) boundary(rank int) int {
	return t.table[rank]
}

func (t *lookupTable) SizeInBytes() int {
	return len(t.table) * strconv.IntSize / 8
}
