package roaring

// checkRange validates and clamps a half-open [start, end) window to the
// uint32 universe. A reversed range is a programmer error, distinct from any
// decode failure, and panics.
func checkRange(start, end uint64) (uint64, uint64) {
	if start > end {
		panic("roaring: invalid range, start > end")
	}
	if end > 1<<32 {
		end = 1 << 32
	}
	return start, end
}

// fullContainer returns a container covering the whole 16-bit sub-universe.
func fullContainer() container {
	return container{Type: typeRun, Size: 1 << 16, Data: []uint16{0, 0xFFFF}}
}

// SetRange sets all values in the half-open range [start, end). Bounds are
// uint64 so the full uint32 universe remains expressible; end is clamped to
// 2^32. The cost scales with the number of chunks touched, never with the
// width of the range: fully covered chunks become a single full run.
func (rb *Bitmap) SetRange(start, end uint64) {
	start, end = checkRange(start, end)
	if start >= end {
		return
	}

	last := end - 1
	hiFirst, hiLast := uint32(start>>16), uint32(last>>16)
	for hi := hiFirst; hi <= hiLast; hi++ {
		lo, hiv := uint16(0), uint16(0xFFFF)
		if hi == hiFirst {
			lo = uint16(start & 0xFFFF)
		}
		if hi == hiLast {
			hiv = uint16(last & 0xFFFF)
		}

		idx, found := find16(rb.index, uint16(hi))
		switch {
		case lo == 0 && hiv == 0xFFFF: // fully covered chunk, O(1)
			if found {
				rb.containers[idx] = fullContainer()
			} else {
				rb.ctrAdd(uint16(hi), idx, fullContainer())
			}
		case !found:
			rb.ctrAdd(uint16(hi), idx, container{
				Type: typeRun,
				Size: uint32(hiv-lo) + 1,
				Data: []uint16{lo, hiv},
			})
		default:
			c := &rb.containers[idx]
			c.fork()
			c.setRange(lo, hiv)
		}
	}
}

// RemoveRange removes all values in the half-open range [start, end). Fully
// covered chunks are dropped in O(1); the walk skips over absent chunks, so
// the cost scales with the number of containers touched.
func (rb *Bitmap) RemoveRange(start, end uint64) {
	start, end = checkRange(start, end)
	if start >= end || len(rb.containers) == 0 {
		return
	}

	last := end - 1
	hiFirst, hiLast := uint16(start>>16), uint16(last>>16)
	idx, _ := find16(rb.index, hiFirst)
	for idx < len(rb.index) && rb.index[idx] <= hiLast {
		hi := rb.index[idx]
		lo, hiv := uint16(0), uint16(0xFFFF)
		if hi == hiFirst {
			lo = uint16(start & 0xFFFF)
		}
		if hi == hiLast {
			hiv = uint16(last & 0xFFFF)
		}

		if lo == 0 && hiv == 0xFFFF { // fully covered chunk, O(1)
			rb.ctrDel(idx)
			continue
		}

		c := &rb.containers[idx]
		c.fork()
		c.removeRange(lo, hiv)
		if c.isEmpty() {
			rb.ctrDel(idx)
			continue
		}
		idx++
	}
}
