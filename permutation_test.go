package blockindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPermutation(t *testing.T) {
	text := []byte("ACGACGTACACGGTAACG")
	perm := BuildPermutation(text, 3)
	require.Equal(t, []int{0, 1, 3, 5, 4, 2}, perm)
}

func TestBuildPermutationTiesKeepOrigin(t *testing.T) {
	perm := BuildPermutation([]byte("CCAACCAACC"), 2)
	require.Equal(t, []int{1, 3, 0, 2, 4}, perm)
}

func TestBuildPermutationShortFinalBlock(t *testing.T) {
	// blocks: ACG ACG TAC ACG GTA AC
	text := []byte("ACGACGTACACGGTAAC")
	perm := BuildPermutation(text, 3)
	require.Equal(t, []int{0, 1, 3, 5, 4, 2}, perm)

	// A short block sorts after the full blocks it prefixes, before larger ones.
	perm = BuildPermutation([]byte("ACTACAAC"), 3)
	// blocks: ACT ACA AC
	require.Equal(t, []int{1, 0, 2}, perm)
}

func TestBuildPermutationSorted(t *testing.T) {
	text := randomText(500, 7)
	for l := 1; l <= 6; l++ {
		perm := BuildPermutation(text, l)
		require.Len(t, perm, BlockCount(len(text), l))
		for i := 1; i < len(perm); i++ {
			a, b := block(text, l, perm[i-1]), block(text, l, perm[i])
			c := compareBlocks(a, b)
			require.LessOrEqual(t, c, 0, "blocks %q %q out of order", a, b)
			if c == 0 {
				require.Less(t, perm[i-1], perm[i])
			}
		}
	}
}

func TestCompareBlock(t *testing.T) {
	require.Equal(t, 0, compareBlock([]byte("ACG"), []byte("ACG")))
	require.Equal(t, -1, compareBlock([]byte("ACG"), []byte("ACT")))
	require.Equal(t, 1, compareBlock([]byte("AC"), []byte("ACT")))
	require.Equal(t, -1, compareBlock([]byte("AA"), []byte("ACA")))
	require.Equal(t, 1, compareBlock([]byte("AG"), []byte("ACT")))
}

func TestBuildLCPArray(t *testing.T) {
	text := []byte("ACGACGTACACGGTAAC")
	perm := BuildPermutation(text, 3)
	// ACG ACG ACG AC GTA TAC
	require.Equal(t, []int{3, 3, 2, 0, 0}, BuildLCPArray(perm, text, 3))
	require.Nil(t, BuildLCPArray([]int{0}, []byte("ACG"), 3))
}
