package roaring

// find16 performs a binary search for the target in a sorted []uint16.
// Returns (index, found) where index is the insertion point if not found.
func find16(keys []uint16, target uint16) (int, bool) {
	n := len(keys)
	switch {
	case n == 0 || target > keys[n-1]:
		return n, false
	case target < keys[0]:
		return 0, false
	}

	// binary phase: shrink the window to one cache line
	lo, hi := 0, n
	for hi-lo > 16 {
		mid := (lo + hi) >> 1
		if keys[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	// linear phase
	for i := lo; i < hi; i++ {
		if keys[i] >= target {
			return i, keys[i] == target
		}
	}
	return hi, false
}
