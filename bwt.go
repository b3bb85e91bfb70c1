package squash

import "github.com/nwca/squash/internal/sarray"

// bwtResult is the outcome of the forward Burrows-Wheeler transform: the
// permuted bytes, one longer than the input (the sentinel takes a slot),
// and the row at which the sentinel was written.
type bwtResult struct {
	permuted []byte
	endIndex int
}

// forwardBWT runs the suffix array over block and reads off the
// last-column permutation: row i holds the byte preceding the suffix
// SA[i] in block, or the sentinel if that suffix starts at position 0.
func forwardBWT(block []byte) bwtResult {
	sa := sarray.Build(block)
	permuted := make([]byte, len(sa))
	endIndex := 0
	for i, pos := range sa {
		if pos == 0 {
			permuted[i] = sentinelByte
			endIndex = i
		} else {
			permuted[i] = block[pos-1]
		}
	}
	return bwtResult{permuted: permuted, endIndex: endIndex}
}

// inverseBWT reconstructs the original block from a bwtResult's permuted
// bytes and end index, by walking the LF-mapping back from the sentinel
// row.
func inverseBWT(permuted []byte, endIndex int) []byte {
	m := len(permuted)
	if m == 0 {
		return nil
	}
	if endIndex < 0 || endIndex >= m {
		panicf("end index %d out of range for block of %d rows", endIndex, m)
	}
	n := m - 1

	var count [256]int
	position := make([]int, m)
	for i, b := range permuted {
		if i != endIndex {
			position[i] = count[b]
			count[b]++
		}
	}

	var sections [256]int
	for b := 255; b > 0; b-- {
		sections[b] = count[b-1]
	}
	sections[0] = 1
	for b := 1; b < 256; b++ {
		sections[b] += sections[b-1]
	}

	out := make([]byte, n)
	next := 0
	for outIdx := n - 1; outIdx >= 0; outIdx-- {
		item := permuted[next]
		out[outIdx] = item
		next = sections[item] + position[next]
	}
	return out
}
