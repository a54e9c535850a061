package blockindex

import (
	"bytes"
	"slices"
)

// block returns the content of block i, which is shorter than blockLen only
// for the final block of a text whose length is not a multiple of blockLen.
func block(text []byte, blockLen, i int) []byte {
	start := i * blockLen
	return text[start:min(start+blockLen, len(text))]
}

// compareBlock orders a block against a word of the same or greater length.
// A short block behaves as if padded with a symbol greater than T, so it sorts
// after every word it is a proper prefix of.
func compareBlock(blk, word []byte) int {
	if len(blk) >= len(word) {
		return bytes.Compare(blk, word)
	}
	if c := bytes.Compare(blk, word[:len(blk)]); c != 0 {
		return c
	}
	return 1
}

// compareBlocks orders two blocks under the same padding rule as compareBlock.
func compareBlocks(a, b []byte) int {
	n := min(len(a), len(b))
	if c := bytes.Compare(a[:n], b[:n]); c != 0 {
		return c
	}
	// One is a prefix of the other: the shorter one is the final block.
	switch {
	case len(a) < len(b):
		return 1
	case len(a) > len(b):
		return -1
	}
	return 0
}

// BuildPermutation returns the block indices of text sorted by block content.
// Equal blocks keep ascending index order.
func BuildPermutation(text []byte, blockLen int) []int {
	perm := make([]int, BlockCount(len(text), blockLen))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return compareBlocks(block(text, blockLen, a), block(text, blockLen, b))
	})
	return perm
}
