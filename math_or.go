package roaring

import "math/bits"

// Or computes the union of two bitmaps and returns it as a new bitmap.
// Neither operand is modified; containers present on one side only are
// shared copy-on-write into the result.
func (rb *Bitmap) Or(other *Bitmap) *Bitmap {
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
			out.push(k2, other.containers[j].share())
			j++
		default:
			out.push(k1, orContainers(&rb.containers[i], &other.containers[j]))
			i++
			j++
		}
	}
	for ; i < len(rb.containers); i++ {
		out.push(rb.index[i], rb.containers[i].share())
	}
	for ; j < len(other.containers); j++ {
		out.push(other.index[j], other.containers[j].share())
	}
	return out
}

// orContainers dispatches the union of two containers on their type pair.
func orContainers(a, b *container) container {
	switch a.Type {
	case typeArray:
		switch b.Type {
		case typeArray:
			return arrOrArr(a, b)
		case typeBitmap:
			return bmpOrArr(b, a)
		case typeRun:
			return runOrArr(b, a)
		}
	case typeBitmap:
		switch b.Type {
		case typeArray:
			return bmpOrArr(a, b)
		case typeBitmap:
			return bmpOrBmp(a, b)
		case typeRun:
			return bmpOrRun(a, b)
		}
	case typeRun:
		switch b.Type {
		case typeArray:
			return runOrArr(a, b)
		case typeBitmap:
			return bmpOrRun(b, a)
		case typeRun:
			return runOrRun(a, b)
		}
	}
	return container{}
}

// arrOrArr merges two sorted arrays.
func arrOrArr(a, b *container) container {
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
			out = append(out, x[i])
			i++
		default:
			out = append(out, y[j])
			j++
		}
	}
	out = append(out, x[i:]...)
	out = append(out, y[j:]...)

	c := arrayResult(out)
	release(out)
	return c
}

// bmpOrArr copies the bitmap and sets every array value into it.
func bmpOrArr(a, b *container) container {
	c := cloneBitmap(a)
	bm := c.bmp()
	for _, v := range b.Data {
		if !bm.Contains(uint32(v)) {
			bm.Set(uint32(v))
			c.Size++
		}
	}
	return c
}

// bmpOrBmp unions two bitmaps word by word with an incremental popcount.
func bmpOrBmp(a, b *container) container {
	c := cloneBitmap(a)
	w, o := c.bmp(), b.bmp()

	size := 0
	for i := range w {
		w[i] |= o[i]
		size += bits.OnesCount64(w[i])
	}
	c.Size = uint32(size)
	return c
}

// bmpOrRun copies the bitmap and fills every run into it word by word.
func bmpOrRun(a, b *container) container {
	c := cloneBitmap(a)
	for i := 0; i+1 < len(b.Data); i += 2 {
		c.bmpSetRange(b.Data[i], b.Data[i+1])
	}
	return c
}

// runOrArr copies the run container and merges every array value into it.
func runOrArr(a, b *container) container {
	c := container{
		Type: typeRun,
		Size: a.Size,
		Data: append(make([]uint16, 0, len(a.Data)), a.Data...),
	}
	for _, v := range b.Data {
		c.runSet(v)
	}
	c.normalize()
	return c
}

// runOrRun unions two interval lists, merging overlapping or adjacent runs.
func runOrRun(a, b *container) container {
	x, y := a.Data, b.Data
	out := make([]uint16, 0, len(x)+len(y))
	size := uint32(0)

	var cs, ce uint32
	open := false
	emit := func(s, e uint32) {
		switch {
		case !open:
			cs, ce, open = s, e, true
		case s <= ce+1: // overlaps or touches the open run
			if e > ce {
				ce = e
			}
		default:
			out = append(out, uint16(cs), uint16(ce))
			size += ce - cs + 1
			cs, ce = s, e
		}
	}

	i, j := 0, 0
	for i < len(x) || j < len(y) {
		switch {
		case j >= len(y) || (i < len(x) && x[i] <= y[j]):
			emit(uint32(x[i]), uint32(x[i+1]))
			i += 2
		default:
			emit(uint32(y[j]), uint32(y[j+1]))
			j += 2
		}
	}
	if open {
		out = append(out, uint16(cs), uint16(ce))
		size += ce - cs + 1
	}

	c := container{Type: typeRun, Size: size, Data: out}
	c.normalize()
	return c
}
