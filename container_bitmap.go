package roaring

import (
	"math/bits"
	"unsafe"

	"github.com/kelindar/bitmap"
)

const (
	bitmapWords = 1024 // 65536 bits
	bitmapBytes = 8192
)

// bmp views the payload as a dense word-level bitmap. The payload of a
// bitmap container is always 4096 uint16s, which aliases to 1024 words.
func (c *container) bmp() bitmap.Bitmap {
	if len(c.Data) == 0 {
		return nil
	}

	return bitmap.Bitmap(unsafe.Slice((*uint64)(unsafe.Pointer(&c.Data[0])), len(c.Data)/4))
}

// bmpSet sets a value in a bitmap container
func (c *container) bmpSet(value uint16) bool {
	bm := c.bmp()
	if bm.Contains(uint32(value)) {
		return false
	}

	bm.Set(uint32(value))
	c.Size++
	return true
}

// bmpDel removes a value from a bitmap container
func (c *container) bmpDel(value uint16) bool {
	bm := c.bmp()
	if !bm.Contains(uint32(value)) {
		return false
	}

	bm.Remove(uint32(value))
	c.Size--
	return true
}

// bmpHas checks if a value exists in a bitmap container
func (c *container) bmpHas(value uint16) bool {
	return c.bmp().Contains(uint32(value))
}

// bmpMin returns the lowest set bit of a non-empty bitmap container.
func (c *container) bmpMin() uint16 {
	for i, w := range c.bmp() {
		if w != 0 {
			return uint16(i*64 + bits.TrailingZeros64(w))
		}
	}
	return 0
}

// bmpMax returns the highest set bit of a non-empty bitmap container.
func (c *container) bmpMax() uint16 {
	words := c.bmp()
	for i := len(words) - 1; i >= 0; i-- {
		if w := words[i]; w != 0 {
			return uint16(i*64 + 63 - bits.LeadingZeros64(w))
		}
	}
	return 0
}

// rangeMask returns the mask covering [lo, hi] within word w.
func rangeMask(w, lo, hi int) uint64 {
	mask := ^uint64(0)
	if w == lo>>6 {
		mask &= ^uint64(0) << (lo & 63)
	}
	if w == hi>>6 {
		mask &= ^uint64(0) >> (63 - (hi & 63))
	}
	return mask
}

// bmpSetRange fills [lo, hi] word by word, adjusting the cardinality by the
// number of bits that were previously clear.
func (c *container) bmpSetRange(lo, hi uint16) {
	words := c.bmp()
	for w := int(lo) >> 6; w <= int(hi)>>6; w++ {
		mask := rangeMask(w, int(lo), int(hi))
		c.Size += uint32(bits.OnesCount64(mask &^ words[w]))
		words[w] |= mask
	}
}

// bmpDelRange clears [lo, hi] word by word.
func (c *container) bmpDelRange(lo, hi uint16) {
	words := c.bmp()
	for w := int(lo) >> 6; w <= int(hi)>>6; w++ {
		mask := rangeMask(w, int(lo), int(hi))
		c.Size -= uint32(bits.OnesCount64(mask & words[w]))
		words[w] &^= mask
	}
}

// bmpRuns counts the maximal contiguous spans in the bitmap. A run starts at
// every set bit whose predecessor is clear, tracked across word boundaries.
func (c *container) bmpRuns() int {
	runs, carry := 0, uint64(0)
	for _, w := range c.bmp() {
		runs += bits.OnesCount64(w &^ ((w << 1) | carry))
		carry = w >> 63
	}
	return runs
}

// bmpToArr converts this container from bitmap to array
func (c *container) bmpToArr() {
	out := make([]uint16, 0, c.Size)
	for i, w := range c.bmp() {
		for w != 0 {
			out = append(out, uint16(i*64+bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}

	c.Data = out
	c.Type = typeArray
	c.Shared = 0
}

// bmpToRun converts this container from bitmap to run
func (c *container) bmpToRun() {
	runs := make([]uint16, 0, c.bmpRuns()*2)
	start, prev := -1, -2
	for i, w := range c.bmp() {
		for w != 0 {
			v := i*64 + bits.TrailingZeros64(w)
			w &= w - 1
			if v != prev+1 {
				if start >= 0 {
					runs = append(runs, uint16(start), uint16(prev))
				}
				start = v
			}
			prev = v
		}
	}
	if start >= 0 {
		runs = append(runs, uint16(start), uint16(prev))
	}

	c.Data = runs
	c.Type = typeRun
	c.Shared = 0
}
