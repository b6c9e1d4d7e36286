package roaring

// arrSet inserts a value into the sorted array, keeping it strictly ascending.
func (c *container) arrSet(value uint16) bool {
	idx, found := find16(c.Data, value)
	if found {
		return false
	}

	c.Data = append(c.Data, 0)
	copy(c.Data[idx+1:], c.Data[idx:])
	c.Data[idx] = value
	c.Size++
	return true
}

// arrDel removes a value from an array container
func (c *container) arrDel(value uint16) bool {
	idx, found := find16(c.Data, value)
	if !found {
		return false
	}

	copy(c.Data[idx:], c.Data[idx+1:])
	c.Data = c.Data[:len(c.Data)-1]
	c.Size--
	return true
}

// arrHas checks if a value exists in an array container
func (c *container) arrHas(value uint16) bool {
	_, found := find16(c.Data, value)
	return found
}

// arrSetRange inserts every value of [lo, hi] into the array, converting to
// a bitmap when the result would cross the size threshold.
func (c *container) arrSetRange(lo, hi uint16) {
	i, _ := find16(c.Data, lo)
	j := i
	for j < len(c.Data) && c.Data[j] <= hi {
		j++
	}

	added := int(hi) - int(lo) + 1 - (j - i)
	if added == 0 {
		return
	}
	if int(c.Size)+added > maxArraySize {
		c.arrToBmp()
		c.bmpSetRange(lo, hi)
		return
	}

	out := make([]uint16, 0, len(c.Data)+added)
	out = append(out, c.Data[:i]...)
	for v := uint32(lo); v <= uint32(hi); v++ {
		out = append(out, uint16(v))
	}
	out = append(out, c.Data[j:]...)
	c.Data = out
	c.Size += uint32(added)
}

// arrDelRange removes every value of [lo, hi] from the array.
func (c *container) arrDelRange(lo, hi uint16) {
	i, _ := find16(c.Data, lo)
	j := i
	for j < len(c.Data) && c.Data[j] <= hi {
		j++
	}
	if i == j {
		return
	}

	copy(c.Data[i:], c.Data[j:])
	c.Data = c.Data[:len(c.Data)-(j-i)]
	c.Size -= uint32(j - i)
}

// arrRuns counts the maximal contiguous spans in the array.
func (c *container) arrRuns() int {
	if len(c.Data) == 0 {
		return 0
	}

	runs := 1
	for i := 1; i < len(c.Data); i++ {
		if c.Data[i] != c.Data[i-1]+1 {
			runs++
		}
	}
	return runs
}

// arrToBmp converts this container from array to bitmap
func (c *container) arrToBmp() {
	values := c.Data
	c.Data = make([]uint16, bitmapWords*4)
	c.Type = typeBitmap
	c.Shared = 0

	bm := c.bmp()
	for _, v := range values {
		bm.Set(uint32(v))
	}
}

// arrToRun converts this container from array to run
func (c *container) arrToRun() {
	values := c.Data
	runs := make([]uint16, 0, c.arrRuns()*2)

	start, prev := values[0], values[0]
	for _, v := range values[1:] {
		if v != prev+1 {
			runs = append(runs, start, prev)
			start = v
		}
		prev = v
	}
	runs = append(runs, start, prev)

	c.Data = runs
	c.Type = typeRun
	c.Shared = 0
}
