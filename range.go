package roaring

import "math/bits"

// iterate walks the container values in ascending order, stopping early when
// fn returns false. Reports whether the walk ran to completion.
func (c *container) iterate(fn func(v uint16) bool) bool {
	switch c.Type {
	case typeArray:
		for _, v := range c.Data {
			if !fn(v) {
				return false
			}
		}

	case typeBitmap:
		for i, w := range c.bmp() {
			for w != 0 {
				if !fn(uint16(i*64 + bits.TrailingZeros64(w))) {
					return false
				}
				w &= w - 1
			}
		}

	case typeRun:
		for i := 0; i+1 < len(c.Data); i += 2 {
			for v := uint32(c.Data[i]); v <= uint32(c.Data[i+1]); v++ {
				if !fn(uint16(v)) {
					return false
				}
			}
		}
	}
	return true
}

// Range calls the given function for each value in the bitmap, in ascending
// order.
func (rb *Bitmap) Range(fn func(x uint32)) {
	for i := range rb.containers {
		base := uint32(rb.index[i]) << 16
		rb.containers[i].iterate(func(v uint16) bool {
			fn(base | uint32(v))
			return true
		})
	}
}

// ToArray collects all values of the bitmap into an ascending slice.
func (rb *Bitmap) ToArray() []uint32 {
	out := make([]uint32, 0, rb.Count())
	rb.Range(func(x uint32) {
		out = append(out, x)
	})
	return out
}

// Filter iterates over the bitmap elements and calls a predicate provided for
// each containing element. If the predicate returns false, the element is
// removed from the bitmap.
func (rb *Bitmap) Filter(f func(x uint32) bool) {
	var drop []uint32
	rb.Range(func(x uint32) {
		if !f(x) {
			drop = append(drop, x)
		}
	})

	for _, x := range drop {
		rb.Remove(x)
	}
}

// Iterator walks a bitmap in ascending order. Restart by creating a new
// iterator; the bitmap must not be mutated while one is in use.
type Iterator struct {
	rb    *Bitmap
	ci    int    // container cursor
	pos   int    // array index, bitmap word index, or run pair offset
	word  uint64 // remaining bits of the current bitmap word
	next  uint32 // next value within the current run
	fresh bool   // container state needs priming
}

// Iterator returns a new ascending iterator over the bitmap.
func (rb *Bitmap) Iterator() *Iterator {
	return &Iterator{rb: rb, fresh: true}
}

// Next returns the next value in ascending order, or false once exhausted.
func (it *Iterator) Next() (uint32, bool) {
	for it.ci < len(it.rb.containers) {
		c := &it.rb.containers[it.ci]
		base := uint32(it.rb.index[it.ci]) << 16

		switch c.Type {
		case typeArray:
			if it.pos < len(c.Data) {
				v := c.Data[it.pos]
				it.pos++
				return base | uint32(v), true
			}

		case typeBitmap:
			words := c.bmp()
			if it.fresh {
				it.pos, it.word, it.fresh = 0, words[0], false
			}
			for {
				if it.word != 0 {
					v := it.pos*64 + bits.TrailingZeros64(it.word)
					it.word &= it.word - 1
					return base | uint32(v), true
				}
				if it.pos++; it.pos >= len(words) {
					break
				}
				it.word = words[it.pos]
			}

		case typeRun:
			if it.fresh {
				it.pos, it.fresh = 0, false
				if len(c.Data) > 0 {
					it.next = uint32(c.Data[0])
				}
			}
			if it.pos+1 < len(c.Data) {
				v := it.next
				if v < uint32(c.Data[it.pos+1]) {
					it.next++
				} else if it.pos += 2; it.pos+1 < len(c.Data) {
					it.next = uint32(c.Data[it.pos])
				}
				return base | v, true
			}
		}

		// container exhausted, move to the next one
		it.ci++
		it.pos = 0
		it.fresh = true
	}
	return 0, false
}
