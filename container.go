package roaring

import "sync/atomic"

const (
	maxArraySize = 4096 // 2 bytes per value crosses the fixed 8KiB bitmap cost here
	maxRunCount  = 2048 // 4 bytes per run crosses the fixed 8KiB bitmap cost here
)

type ctype byte

const (
	typeArray ctype = iota
	typeBitmap
	typeRun
)

// container is a closed tagged variant over the three representations of one
// 16-bit sub-universe. Data holds strictly ascending values for typeArray,
// 4096 uint16s viewed as 1024 words for typeBitmap, and sorted inclusive
// (start, end) pairs for typeRun. Size caches the cardinality and always
// matches the represented values outside a mutating call.
type container struct {
	Type   ctype
	Size   uint32
	Shared uint32 // payload is aliased by another bitmap, fork before writing; atomic
	Data   []uint16
}

// fork copies the payload if it is aliased by another bitmap, so that
// mutations never write through shared state.
func (c *container) fork() {
	if atomic.LoadUint32(&c.Shared) != 0 {
		c.Data = append(make([]uint16, 0, len(c.Data)), c.Data...)
		atomic.StoreUint32(&c.Shared, 0)
	}
}

// share returns a copy of the container that aliases the payload, marking
// both sides shared so the next mutation on either forks first. Read-only
// operations may share the same operand concurrently, so the flag is set
// atomically and the copy is built field by field instead of dereferencing
// the whole struct.
func (c *container) share() container {
	atomic.StoreUint32(&c.Shared, 1)
	return container{Type: c.Type, Size: c.Size, Shared: 1, Data: c.Data}
}

// set adds a value to the container and returns true if it was absent. An
// array exceeding its size threshold converts to a bitmap, and so does a run
// container fragmented past the cost crossover.
func (c *container) set(value uint16) bool {
	if c.contains(value) {
		return false
	}

	c.fork()
	switch c.Type {
	case typeArray:
		c.arrSet(value)
		if c.Size > maxArraySize {
			c.arrToBmp()
		}
	case typeBitmap:
		c.bmpSet(value)
	case typeRun:
		c.runSet(value)
		if len(c.Data) > maxRunCount*2 {
			c.runToBmp()
		}
	}
	return true
}

// remove deletes a value from the container and returns true if it was
// present. A bitmap falling back under the array threshold converts down.
func (c *container) remove(value uint16) bool {
	if !c.contains(value) {
		return false
	}

	c.fork()
	switch c.Type {
	case typeArray:
		c.arrDel(value)
	case typeBitmap:
		c.bmpDel(value)
		if c.Size <= maxArraySize {
			c.bmpToArr()
		}
	case typeRun:
		c.runDel(value)
		if len(c.Data) > maxRunCount*2 {
			c.runToBmp()
		}
	}
	return true
}

// contains checks if a value exists in the container
func (c *container) contains(value uint16) bool {
	switch c.Type {
	case typeArray:
		return c.arrHas(value)
	case typeBitmap:
		return c.bmpHas(value)
	case typeRun:
		return c.runHas(value)
	}
	return false
}

// setRange adds all values in [lo, hi] to the container. The caller forks
// the container first.
func (c *container) setRange(lo, hi uint16) {
	switch c.Type {
	case typeArray:
		c.arrSetRange(lo, hi)
	case typeBitmap:
		c.bmpSetRange(lo, hi)
	case typeRun:
		c.runSetRange(lo, hi)
	}
}

// removeRange deletes all values in [lo, hi] from the container.
func (c *container) removeRange(lo, hi uint16) {
	switch c.Type {
	case typeArray:
		c.arrDelRange(lo, hi)
	case typeBitmap:
		c.bmpDelRange(lo, hi)
		if c.Size <= maxArraySize {
			c.bmpToArr()
		}
	case typeRun:
		c.runDelRange(lo, hi)
	}
}

// min returns the smallest value of a non-empty container.
func (c *container) min() uint16 {
	switch c.Type {
	case typeBitmap:
		return c.bmpMin()
	default: // array and run keep their smallest value first
		return c.Data[0]
	}
}

// max returns the largest value of a non-empty container.
func (c *container) max() uint16 {
	switch c.Type {
	case typeBitmap:
		return c.bmpMax()
	default:
		return c.Data[len(c.Data)-1]
	}
}

// cardinality returns the number of elements in the container
func (c *container) cardinality() int {
	return int(c.Size)
}

// isEmpty returns true if the container has no elements
func (c *container) isEmpty() bool {
	return c.Size == 0
}

// sizeInBytes returns the payload cost of the current representation.
func (c *container) sizeInBytes() int {
	return len(c.Data) * 2
}

// runCount returns the number of maximal contiguous spans in the container.
func (c *container) runCount() int {
	switch c.Type {
	case typeArray:
		return c.arrRuns()
	case typeBitmap:
		return c.bmpRuns()
	case typeRun:
		return len(c.Data) / 2
	}
	return 0
}

// optimize converts the container to its cheapest representation using the
// byte-cost model: array = 2 x cardinality, bitmap = 8192, run = 4 x runs.
// Run detection only happens here, never on the per-value mutation path.
func (c *container) optimize() {
	if c.Size == 0 {
		return
	}

	costRun := c.runCount() * 4
	costArr := int(c.Size) * 2
	switch {
	case costRun <= costArr && costRun <= bitmapBytes:
		switch c.Type {
		case typeArray:
			c.arrToRun()
		case typeBitmap:
			c.bmpToRun()
		}
	case costArr <= bitmapBytes:
		switch c.Type {
		case typeBitmap:
			c.bmpToArr()
		case typeRun:
			c.runToArr()
		}
	default:
		switch c.Type {
		case typeArray:
			c.arrToBmp()
		case typeRun:
			c.runToBmp()
		}
	}
}

// normalize moves a freshly combined container to its cheapest
// representation. Unlike optimize it never scans for runs: for run inputs the
// pair count is already known, so the cost comparison stays O(1) and the
// set-operation path never pays for run detection.
func (c *container) normalize() {
	switch {
	case c.Type == typeBitmap && c.Size <= maxArraySize:
		c.bmpToArr()
	case c.Type == typeArray && c.Size > maxArraySize:
		c.arrToBmp()
	case c.Type == typeRun:
		costRun, costArr := len(c.Data)*2, int(c.Size)*2
		switch {
		case costArr < costRun && costArr <= bitmapBytes:
			c.runToArr()
		case costRun > bitmapBytes:
			c.runToBmp()
		}
	}
}
