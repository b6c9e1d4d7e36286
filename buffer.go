package roaring

import "sync"

// pool recycles scratch value buffers used by the container combiners,
// pre-sized to the largest array container.
var pool = sync.Pool{
	New: func() any {
		buf := make([]uint16, 0, maxArraySize)
		return &buf
	},
}

func borrowArray() []uint16 {
	return (*pool.Get().(*[]uint16))[:0]
}

func release(buf []uint16) {
	pool.Put(&buf)
}
