package roaring

import "math/bits"

// Xor computes the symmetric difference of two bitmaps and returns it as a
// new bitmap. Neither operand is modified.
func (rb *Bitmap) Xor(other *Bitmap) *Bitmap {
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
			if c := xorContainers(&rb.containers[i], &other.containers[j]); !c.isEmpty() {
				out.push(k1, c)
			}
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

// xorContainers dispatches the symmetric difference of two containers on
// their type pair. Run operands are materialized as bitmaps: toggling is a
// word operation there, while interval lists fragment badly under xor.
func xorContainers(a, b *container) container {
	switch a.Type {
	case typeArray:
		switch b.Type {
		case typeArray:
			return arrXorArr(a, b)
		case typeBitmap:
			return bmpXorArr(b, a)
		case typeRun:
			return runXorArr(b, a)
		}
	case typeBitmap:
		switch b.Type {
		case typeArray:
			return bmpXorArr(a, b)
		case typeBitmap:
			return bmpXorBmp(a, b)
		case typeRun:
			return bmpXorRun(a, b)
		}
	case typeRun:
		switch b.Type {
		case typeArray:
			return runXorArr(a, b)
		case typeBitmap:
			return bmpXorRun(b, a)
		case typeRun:
			return runXorRun(a, b)
		}
	}
	return container{}
}

// arrXorArr merges two sorted arrays, dropping values present in both.
func arrXorArr(a, b *container) container {
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

// bmpXorArr copies the bitmap and toggles every array value in it.
func bmpXorArr(a, b *container) container {
	c := cloneBitmap(a)
	bm := c.bmp()
	for _, v := range b.Data {
		if bm.Contains(uint32(v)) {
			bm.Remove(uint32(v))
			c.Size--
		} else {
			bm.Set(uint32(v))
			c.Size++
		}
	}
	c.normalize()
	return c
}

// bmpXorBmp toggles two bitmaps word by word with an incremental popcount.
func bmpXorBmp(a, b *container) container {
	c := cloneBitmap(a)
	w, o := c.bmp(), b.bmp()

	size := 0
	for i := range w {
		w[i] ^= o[i]
		size += bits.OnesCount64(w[i])
	}
	c.Size = uint32(size)
	c.normalize()
	return c
}

// bmpXorRun copies the bitmap and flips every run window word by word.
func bmpXorRun(a, b *container) container {
	c := cloneBitmap(a)
	w := c.bmp()
	for i := 0; i+1 < len(b.Data); i += 2 {
		lo, hi := int(b.Data[i]), int(b.Data[i+1])
		for wi := lo >> 6; wi <= hi>>6; wi++ {
			w[wi] ^= rangeMask(wi, lo, hi)
		}
	}

	size := 0
	for i := range w {
		size += bits.OnesCount64(w[i])
	}
	c.Size = uint32(size)
	c.normalize()
	return c
}

// runXorArr materializes the run container and toggles the array values.
func runXorArr(a, b *container) container {
	c := runAsBitmap(a)
	bm := c.bmp()
	for _, v := range b.Data {
		if bm.Contains(uint32(v)) {
			bm.Remove(uint32(v))
			c.Size--
		} else {
			bm.Set(uint32(v))
			c.Size++
		}
	}
	c.normalize()
	return c
}

// runXorRun materializes the left run container and flips the right windows.
func runXorRun(a, b *container) container {
	c := runAsBitmap(a)
	return bmpXorRun(&c, b)
}
