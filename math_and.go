package roaring

import "math/bits"

// And computes the intersection of two bitmaps and returns it as a new
// bitmap. Neither operand is modified.
func (rb *Bitmap) And(other *Bitmap) *Bitmap {
	out := New()
	if other == nil {
		return out
	}

	i, j := 0, 0
	for i < len(rb.containers) && j < len(other.containers) {
		k1, k2 := rb.index[i], other.index[j]
		switch {
		case k1 < k2:
			i++
		case k1 > k2:
			j++
		default:
			if c := andContainers(&rb.containers[i], &other.containers[j]); !c.isEmpty() {
				out.push(k1, c)
			}
			i++
			j++
		}
	}
	return out
}

// andContainers dispatches the intersection of two containers on their type
// pair. The array side is always the probe side, it has the smaller
// cardinality by construction.
func andContainers(a, b *container) container {
	switch a.Type {
	case typeArray:
		switch b.Type {
		case typeArray:
			return arrAndArr(a, b)
		case typeBitmap:
			return arrAndBmp(a, b)
		case typeRun:
			return arrAndRun(a, b)
		}
	case typeBitmap:
		switch b.Type {
		case typeArray:
			return arrAndBmp(b, a)
		case typeBitmap:
			return bmpAndBmp(a, b)
		case typeRun:
			return bmpAndRun(a, b)
		}
	case typeRun:
		switch b.Type {
		case typeArray:
			return arrAndRun(b, a)
		case typeBitmap:
			return bmpAndRun(b, a)
		case typeRun:
			return runAndRun(a, b)
		}
	}
	return container{}
}

// arrAndArr intersects two sorted arrays with a two-pointer merge.
func arrAndArr(a, b *container) container {
	x, y := a.Data, b.Data
	out := borrowArray()
	i, j := 0, 0

	for i < len(x) && j < len(y) {
		switch {
		case x[i] == y[j]:
			out = append(out, x[i])
			i++
			j++
		case x[i] < y[j]:
			i++
		default:
			j++
		}
	}

	c := arrayResult(out)
	release(out)
	return c
}

// arrAndBmp probes every array value against the bitmap.
func arrAndBmp(a, b *container) container {
	bm := b.bmp()
	out := borrowArray()
	for _, v := range a.Data {
		if bm.Contains(uint32(v)) {
			out = append(out, v)
		}
	}

	c := arrayResult(out)
	release(out)
	return c
}

// arrAndRun walks the array against the interval list.
func arrAndRun(a, b *container) container {
	x, y := a.Data, b.Data
	out := borrowArray()
	j := 0

	for _, v := range x {
		for j+1 < len(y) && y[j+1] < v {
			j += 2
		}
		if j+1 < len(y) && v >= y[j] {
			out = append(out, v)
		}
	}

	c := arrayResult(out)
	release(out)
	return c
}

// bmpAndBmp intersects two bitmaps word by word with an incremental popcount.
func bmpAndBmp(a, b *container) container {
	c := cloneBitmap(a)
	w, o := c.bmp(), b.bmp()

	size := 0
	for i := range w {
		w[i] &= o[i]
		size += bits.OnesCount64(w[i])
	}
	c.Size = uint32(size)
	c.normalize()
	return c
}

// bmpAndRun copies the bitmap bits covered by the interval list.
func bmpAndRun(a, b *container) container {
	c := container{Type: typeBitmap, Data: make([]uint16, bitmapWords*4)}
	src, dst := a.bmp(), c.bmp()

	size := 0
	for i := 0; i+1 < len(b.Data); i += 2 {
		lo, hi := int(b.Data[i]), int(b.Data[i+1])
		for w := lo >> 6; w <= hi>>6; w++ {
			v := src[w] & rangeMask(w, lo, hi)
			dst[w] |= v
			size += bits.OnesCount64(v)
		}
	}
	c.Size = uint32(size)
	c.normalize()
	return c
}

// runAndRun intersects two interval lists.
func runAndRun(a, b *container) container {
	x, y := a.Data, b.Data
	out := make([]uint16, 0, min(len(x), len(y)))
	size := uint32(0)

	i, j := 0, 0
	for i < len(x) && j < len(y) {
		s1, e1 := uint32(x[i]), uint32(x[i+1])
		s2, e2 := uint32(y[j]), uint32(y[j+1])

		if s, e := max(s1, s2), min(e1, e2); s <= e {
			out = append(out, uint16(s), uint16(e))
			size += e - s + 1
		}

		switch {
		case e1 < e2:
			i += 2
		case e2 < e1:
			j += 2
		default:
			i += 2
			j += 2
		}
	}

	c := container{Type: typeRun, Size: size, Data: out}
	c.optimize() // run count is known, cost re-check is O(1)
	return c
}
