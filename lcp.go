package blockindex

// BuildLCPArray returns, for each i, the length of the longest common prefix
// of the blocks at perm[i] and perm[i+1].
func BuildLCPArray(perm []int, text []byte, blockLen int) []int {
	if len(perm) < 2 {
		return nil
	}
	lcp := make([]int, len(perm)-1)
	for i := range lcp {
		a := block(text, blockLen, perm[i])
		b := block(text, blockLen, perm[i+1])
		l := 0
		for l < len(a) && l < len(b) && a[l] == b[l] {
			l++
		}
		lcp[i] = l
	}
	return lcp
}
