package roaring

// runFind locates the run that holds the value. When not found, the returned
// index is the insertion point for a new run.
func (c *container) runFind(value uint16) (int, bool) {
	n := len(c.Data) / 2
	switch {
	case n == 0:
		return 0, false
	case value < c.Data[0]:
		return 0, false
	case value > c.Data[(n-1)*2+1]:
		return n, false
	}

	// binary phase: shrink the window to a handful of runs
	lo, hi := 0, n
	for hi-lo > 4 {
		mid := (lo + hi) >> 1
		start := c.Data[mid*2]
		if value < start {
			hi = mid
			continue
		}
		if value <= c.Data[mid*2+1] {
			return mid, true
		}
		lo = mid + 1
	}

	// linear phase inside one cache line
	for i := lo; i < hi; i++ {
		switch {
		case value < c.Data[i*2]:
			return i, false
		case value <= c.Data[i*2+1]:
			return i, true
		}
	}
	return hi, false
}

// runSet sets a value in a run container, merging with adjacent runs.
func (c *container) runSet(value uint16) bool {
	idx, found := c.runFind(value)
	if found {
		return false
	}

	n := len(c.Data) / 2
	mergeLeft := idx > 0 && c.Data[(idx-1)*2+1]+1 == value
	mergeRight := idx < n && value+1 == c.Data[idx*2]

	switch {
	case mergeLeft && mergeRight:
		c.Data[(idx-1)*2+1] = c.Data[idx*2+1]
		c.runRemoveAt(idx)
	case mergeLeft:
		c.Data[(idx-1)*2+1] = value
	case mergeRight:
		c.Data[idx*2] = value
	default:
		c.runInsertAt(idx, value, value)
	}

	c.Size++
	return true
}

// runDel removes a value from a run container, splitting the run if needed.
func (c *container) runDel(value uint16) bool {
	idx, found := c.runFind(value)
	if !found {
		return false
	}

	start, end := c.Data[idx*2], c.Data[idx*2+1]
	switch {
	case start == end:
		c.runRemoveAt(idx)
	case value == start:
		c.Data[idx*2] = value + 1
	case value == end:
		c.Data[idx*2+1] = value - 1
	default:
		c.Data[idx*2+1] = value - 1
		c.runInsertAt(idx+1, value+1, end)
	}

	c.Size--
	return true
}

// runHas checks if a value exists in a run container
func (c *container) runHas(value uint16) bool {
	_, found := c.runFind(value)
	return found
}

// runSetRange inserts [lo, hi], swallowing every run it overlaps or touches.
func (c *container) runSetRange(lo, hi uint16) {
	n := len(c.Data) / 2
	start, end := uint32(lo), uint32(hi)

	// first run that ends at or after lo-1 (adjacency merges)
	i := 0
	for i < n && uint32(c.Data[i*2+1])+1 < start {
		i++
	}

	// swallow runs that begin at or before hi+1
	j, swallowed := i, uint32(0)
	for j < n && uint32(c.Data[j*2]) <= end+1 {
		if s := uint32(c.Data[j*2]); s < start {
			start = s
		}
		if e := uint32(c.Data[j*2+1]); e > end {
			end = e
		}
		swallowed += uint32(c.Data[j*2+1]) - uint32(c.Data[j*2]) + 1
		j++
	}

	out := make([]uint16, 0, (n-(j-i))*2+2)
	out = append(out, c.Data[:i*2]...)
	out = append(out, uint16(start), uint16(end))
	out = append(out, c.Data[j*2:]...)

	c.Data = out
	c.Size += (end - start + 1) - swallowed
}

// runDelRange removes [lo, hi], trimming and splitting the runs it overlaps.
func (c *container) runDelRange(lo, hi uint16) {
	out := make([]uint16, 0, len(c.Data)+2)
	for i := 0; i+1 < len(c.Data); i += 2 {
		s, e := c.Data[i], c.Data[i+1]
		if e < lo || s > hi {
			out = append(out, s, e)
			continue
		}

		if s < lo {
			out = append(out, s, lo-1)
		}
		if e > hi {
			out = append(out, hi+1, e)
		}

		overlapLo, overlapHi := uint32(s), uint32(e)
		if uint32(lo) > overlapLo {
			overlapLo = uint32(lo)
		}
		if uint32(hi) < overlapHi {
			overlapHi = uint32(hi)
		}
		c.Size -= overlapHi - overlapLo + 1
	}
	c.Data = out
}

// runInsertAt inserts a new run at the specified index
func (c *container) runInsertAt(index int, start, end uint16) {
	n := len(c.Data)
	c.Data = append(c.Data, 0, 0)
	copy(c.Data[(index+1)*2:], c.Data[index*2:n])
	c.Data[index*2] = start
	c.Data[index*2+1] = end
}

// runRemoveAt removes the run at the specified index
func (c *container) runRemoveAt(index int) {
	copy(c.Data[index*2:], c.Data[(index+1)*2:])
	c.Data = c.Data[:len(c.Data)-2]
}

// runToArr converts this container from run to array
func (c *container) runToArr() {
	runs := c.Data
	out := make([]uint16, 0, c.Size)
	for i := 0; i+1 < len(runs); i += 2 {
		for v := uint32(runs[i]); v <= uint32(runs[i+1]); v++ {
			out = append(out, uint16(v))
		}
	}

	c.Data = out
	c.Type = typeArray
	c.Shared = 0
}

// runToBmp converts this container from run to bitmap
func (c *container) runToBmp() {
	runs := c.Data
	c.Data = make([]uint16, bitmapWords*4)
	c.Type = typeBitmap
	c.Shared = 0

	size := c.Size
	c.Size = 0
	for i := 0; i+1 < len(runs); i += 2 {
		c.bmpSetRange(runs[i], runs[i+1])
	}
	c.Size = size // fills are disjoint, cardinality is unchanged
}
