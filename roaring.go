package roaring

// Bitmap represents a compressed set of uint32 values. Chunk keys (the high
// 16 bits) live in a sorted, unique index kept parallel to the container
// slice; no empty container is ever stored. A Bitmap is not safe for
// concurrent mutation, but any number of readers may share it as long as no
// mutation is in flight.
type Bitmap struct {
	index      []uint16
	containers []container
}

// New creates a new empty roaring bitmap
func New() *Bitmap {
	return &Bitmap{}
}

// ctrAdd inserts a container at position idx, keeping the key index sorted.
func (rb *Bitmap) ctrAdd(hi uint16, idx int, c container) *container {
	rb.index = append(rb.index, 0)
	copy(rb.index[idx+1:], rb.index[idx:])
	rb.index[idx] = hi

	rb.containers = append(rb.containers, container{})
	copy(rb.containers[idx+1:], rb.containers[idx:])
	rb.containers[idx] = c
	return &rb.containers[idx]
}

// ctrDel removes the container at position idx.
func (rb *Bitmap) ctrDel(idx int) {
	rb.index = append(rb.index[:idx], rb.index[idx+1:]...)
	rb.containers = append(rb.containers[:idx], rb.containers[idx+1:]...)
}

// push appends a container for a key greater than every existing key. Used
// by the merge-driven set operations, which produce keys in ascending order.
func (rb *Bitmap) push(hi uint16, c container) {
	rb.index = append(rb.index, hi)
	rb.containers = append(rb.containers, c)
}

// Set sets the value x in the bitmap, creating an array-backed container for
// its chunk on first touch.
func (rb *Bitmap) Set(x uint32) {
	hi, lo := uint16(x>>16), uint16(x&0xFFFF)
	idx, found := find16(rb.index, hi)
	if !found {
		rb.ctrAdd(hi, idx, container{Type: typeArray, Data: make([]uint16, 0, 8)})
	}

	rb.containers[idx].set(lo)
}

// Remove removes the value x from the bitmap, dropping its chunk when the
// container becomes empty.
func (rb *Bitmap) Remove(x uint32) {
	hi, lo := uint16(x>>16), uint16(x&0xFFFF)
	idx, found := find16(rb.index, hi)
	if !found {
		return
	}

	c := &rb.containers[idx]
	if c.remove(lo) && c.isEmpty() {
		rb.ctrDel(idx)
	}
}

// Contains checks whether a value is contained in the bitmap or not.
func (rb *Bitmap) Contains(x uint32) bool {
	hi, lo := uint16(x>>16), uint16(x&0xFFFF)
	idx, found := find16(rb.index, hi)
	if !found {
		return false
	}

	return rb.containers[idx].contains(lo)
}

// Count returns the total number of values in the bitmap. Cardinalities are
// cached per container, so this is O(containers).
func (rb *Bitmap) Count() int {
	count := 0
	for i := range rb.containers {
		count += rb.containers[i].cardinality()
	}
	return count
}

// IsEmpty reports whether the bitmap contains no values.
func (rb *Bitmap) IsEmpty() bool {
	return len(rb.containers) == 0
}

// Min returns the smallest value in the bitmap, or false when it is empty.
func (rb *Bitmap) Min() (uint32, bool) {
	if len(rb.containers) == 0 {
		return 0, false
	}

	return uint32(rb.index[0])<<16 | uint32(rb.containers[0].min()), true
}

// Max returns the largest value in the bitmap, or false when it is empty.
func (rb *Bitmap) Max() (uint32, bool) {
	if len(rb.containers) == 0 {
		return 0, false
	}

	last := len(rb.containers) - 1
	return uint32(rb.index[last])<<16 | uint32(rb.containers[last].max()), true
}

// Clear clears the bitmap, keeping the allocated capacity around.
func (rb *Bitmap) Clear() {
	rb.index = rb.index[:0]
	rb.containers = rb.containers[:0]
}

// Clone returns a copy of the bitmap. Payloads are shared copy-on-write, so
// cloning is cheap and later mutations of either side never alias.
func (rb *Bitmap) Clone() *Bitmap {
	out := &Bitmap{
		index:      append([]uint16(nil), rb.index...),
		containers: make([]container, len(rb.containers)),
	}
	for i := range rb.containers {
		out.containers[i] = rb.containers[i].share()
	}
	return out
}

// Optimize converts every container to its most compact representation.
// This can significantly reduce memory usage after bulk insertions; it is
// never invoked implicitly so that hot mutation paths stay cheap.
func (rb *Bitmap) Optimize() {
	for i := range rb.containers {
		rb.containers[i].optimize()
	}
}

// SizeInBytes returns the payload cost of the bitmap, including the two
// index bytes carried per container.
func (rb *Bitmap) SizeInBytes() int {
	total := 0
	for i := range rb.containers {
		total += rb.containers[i].sizeInBytes() + 2
	}
	return total
}
