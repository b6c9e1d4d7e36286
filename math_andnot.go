package roaring

import "math/bits"

// AndNot computes the difference of two bitmaps (values of rb absent from
// other) and returns it as a new bitmap. Neither operand is modified.
func (rb *Bitmap) AndNot(other *Bitmap) *Bitmap {
	if other == nil {
		return rb.Clone()
	}

	out := New()
	i, j := 0, 0
	for i < len(rb.containers) && j < len(other.containers) {
		k1, k2 := rb.index[i], other.index[j]
		switch {
		case k1 < k2:
			out.push(k1, rb.containers[i].share())
			i++
		case k1 > k2:
			j++
		default:
			if c := andNotContainers(&rb.containers[i], &other.containers[j]); !c.isEmpty() {
				out.push(k1, c)
			}
			i++
			j++
		}
	}
	for ; i < len(rb.containers); i++ {
		out.push(rb.index[i], rb.containers[i].share())
	}
	return out
}

// andNotContainers dispatches the difference of two containers on their type
// pair. Difference is not commutative, so all nine cases are spelled out.
func andNotContainers(a, b *container) container {
	switch a.Type {
	case typeArray:
		switch b.Type {
		case typeArray:
			return arrAndNotArr(a, b)
		case typeBitmap:
			return arrAndNotBmp(a, b)
		case typeRun:
			return arrAndNotRun(a, b)
		}
	case typeBitmap:
		switch b.Type {
		case typeArray:
			return bmpAndNotArr(a, b)
		case typeBitmap:
			return bmpAndNotBmp(a, b)
		case typeRun:
			return bmpAndNotRun(a, b)
		}
	case typeRun:
		switch b.Type {
		case typeArray:
			return runAndNotArr(a, b)
		case typeBitmap:
			return runAndNotBmp(a, b)
		case typeRun:
			return runAndNotRun(a, b)
		}
	}
	return container{}
}

// arrAndNotArr subtracts a sorted array from another with a two-pointer merge.
func arrAndNotArr(a, b *container) container {
	x, y := a.Data, b.Data
	out := borrowArray()
	i, j := 0, 0

	for i < len(x) && j < len(y) {
		switch {
		case x[i] == y[j]:
			i++
			j++
		case x[i] < y[j]:
			out = append(out, x[i])
			i++
		default:
			j++
		}
	}
	out = append(out, x[i:]...)

	c := arrayResult(out)
	release(out)
	return c
}

// arrAndNotBmp keeps the array values absent from the bitmap.
func arrAndNotBmp(a, b *container) container {
	bm := b.bmp()
	out := borrowArray()
	for _, v := range a.Data {
		if !bm.Contains(uint32(v)) {
			out = append(out, v)
		}
	}

	c := arrayResult(out)
	release(out)
	return c
}

// arrAndNotRun keeps the array values not covered by the interval list.
func arrAndNotRun(a, b *container) container {
	x, y := a.Data, b.Data
	out := borrowArray()
	j := 0

	for _, v := range x {
		for j+1 < len(y) && y[j+1] < v {
			j += 2
		}
		if j+1 >= len(y) || v < y[j] {
			out = append(out, v)
		}
	}

	c := arrayResult(out)
	release(out)
	return c
}

// bmpAndNotArr copies the bitmap and clears every array value from it.
func bmpAndNotArr(a, b *container) container {
	c := cloneBitmap(a)
	bm := c.bmp()
	for _, v := range b.Data {
		if bm.Contains(uint32(v)) {
			bm.Remove(uint32(v))
			c.Size--
		}
	}
	c.normalize()
	return c
}

// bmpAndNotBmp subtracts two bitmaps word by word with an incremental
// popcount.
func bmpAndNotBmp(a, b *container) container {
	c := cloneBitmap(a)
	w, o := c.bmp(), b.bmp()

	size := 0
	for i := range w {
		w[i] &^= o[i]
		size += bits.OnesCount64(w[i])
	}
	c.Size = uint32(size)
	c.normalize()
	return c
}

// bmpAndNotRun copies the bitmap and clears every run window from it.
func bmpAndNotRun(a, b *container) container {
	c := cloneBitmap(a)
	for i := 0; i+1 < len(b.Data); i += 2 {
		c.bmpDelRange(b.Data[i], b.Data[i+1])
	}
	c.normalize()
	return c
}

// runAndNotArr copies the run container and deletes every array value.
func runAndNotArr(a, b *container) container {
	c := container{
		Type: typeRun,
		Size: a.Size,
		Data: append(make([]uint16, 0, len(a.Data)), a.Data...),
	}
	for _, v := range b.Data {
		c.runDel(v)
	}
	c.optimize()
	return c
}

// runAndNotBmp materializes the run container and subtracts the bitmap.
func runAndNotBmp(a, b *container) container {
	c := runAsBitmap(a)
	w, o := c.bmp(), b.bmp()

	size := 0
	for i := range w {
		w[i] &^= o[i]
		size += bits.OnesCount64(w[i])
	}
	c.Size = uint32(size)
	c.normalize()
	return c
}

// runAndNotRun subtracts two interval lists.
func runAndNotRun(a, b *container) container {
	x, y := a.Data, b.Data
	out := make([]uint16, 0, len(x)+len(y))
	size := uint32(0)
	emit := func(s, e uint32) {
		out = append(out, uint16(s), uint16(e))
		size += e - s + 1
	}

	j := 0
	for i := 0; i+1 < len(x); i += 2 {
		cur, end := uint32(x[i]), uint32(x[i+1])

		// skip subtrahend runs that end before this run starts
		for j+1 < len(y) && uint32(y[j+1]) < cur {
			j += 2
		}

		for k := j; cur <= end; {
			if k+1 >= len(y) || uint32(y[k]) > end {
				emit(cur, end)
				break
			}

			bs, be := uint32(y[k]), uint32(y[k+1])
			if be < cur {
				k += 2
				continue
			}
			if bs > cur {
				emit(cur, bs-1)
			}
			if be >= end {
				break
			}
			cur = be + 1
			k += 2
		}
	}

	c := container{Type: typeRun, Size: size, Data: out}
	c.optimize()
	return c
}
