// Package sarray builds suffix arrays by prefix doubling, the construction
// the squash block codec's Burrows-Wheeler transform is built on.
package sarray

import "sort"

// suffix tracks one entry of the array under construction: the text
// position it represents, and its current (possibly provisional) rank pair.
// Two suffixes compare by rank0 first, then by rank1; once ranks are all
// distinct the array is fully sorted.
type suffix struct {
	index int
	rank0 int64
	rank1 int64
}

// Build constructs the suffix array of block with an implicit sentinel
// appended that sorts before every real byte. The returned array has length
// len(block)+1, and Build[0] is always len(block) -- the position of the
// virtual, empty suffix made up of the sentinel alone.
func Build(block []byte) []int {
	n := len(block)
	entries := make([]suffix, n+1)
	for i := 0; i < n; i++ {
		entries[i].index = i
		entries[i].rank0 = int64(block[i])
		if i == n-1 {
			entries[i].rank1 = -1
		} else {
			entries[i].rank1 = int64(block[i+1])
		}
	}
	entries[n] = suffix{index: n, rank0: -1, rank1: -2}

	less := func(a, b suffix) bool {
		if a.rank0 != b.rank0 {
			return a.rank0 < b.rank0
		}
		return a.rank1 < b.rank1
	}
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })

	indices := make([]int, n+1)
	for k := 4; k < 2*(n+1); k *= 2 {
		renumber(entries, indices)
		assignSecondRank(entries, indices, n, k/2)
		sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	}

	sa := make([]int, len(entries))
	for i, e := range entries {
		sa[i] = e.index
	}
	return sa
}

// renumber replaces each entry's rank0 with a dense rank (0, 1, 2, ...)
// assigned in sorted order, collapsing ties (equal rank0 and equal rank1)
// to the same dense rank. indices[textPosition] is populated as the
// position of that suffix within the just-sorted entries slice, which the
// next pass needs to look up "the rank of the suffix starting k/2 bytes
// ahead."
func renumber(entries []suffix, indices []int) {
	rank := int64(0)
	prevRank := entries[0].rank0
	entries[0].rank0 = 0
	indices[entries[0].index] = 0

	for i := 1; i < len(entries); i++ {
		cur := entries[i].rank0
		if cur == prevRank && entries[i].rank1 == entries[i-1].rank1 {
			prevRank = cur
			entries[i].rank0 = rank
		} else {
			prevRank = cur
			rank++
			entries[i].rank0 = rank
		}
		indices[entries[i].index] = i
	}
}

// assignSecondRank sets each entry's rank1 to the (already renumbered)
// rank0 of the suffix starting half bound bytes further into the text, or
// -1 if that suffix runs past the end of the real text.
func assignSecondRank(entries []suffix, indices []int, n, half int) {
	for i := range entries {
		next := entries[i].index + half
		if next < n {
			entries[i].rank1 = entries[indices[next]].rank0
		} else {
			entries[i].rank1 = -1
		}
	}
}
