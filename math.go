package roaring

// arrayResult materializes a sorted list of distinct values into the
// representation matching its cardinality.
func arrayResult(values []uint16) container {
	if len(values) > maxArraySize {
		c := container{Type: typeBitmap, Size: uint32(len(values)), Data: make([]uint16, bitmapWords*4)}
		bm := c.bmp()
		for _, v := range values {
			bm.Set(uint32(v))
		}
		return c
	}

	return container{
		Type: typeArray,
		Size: uint32(len(values)),
		Data: append(make([]uint16, 0, len(values)), values...),
	}
}

// cloneBitmap copies a bitmap container into a freshly owned one.
func cloneBitmap(a *container) container {
	return container{
		Type: typeBitmap,
		Size: a.Size,
		Data: append(make([]uint16, 0, len(a.Data)), a.Data...),
	}
}

// runAsBitmap materializes a run container into a fresh bitmap container.
func runAsBitmap(a *container) container {
	c := container{Type: typeBitmap, Data: make([]uint16, bitmapWords*4)}
	for i := 0; i+1 < len(a.Data); i += 2 {
		c.bmpSetRange(a.Data[i], a.Data[i+1])
	}
	return c
}
