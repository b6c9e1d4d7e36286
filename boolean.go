package roaring

// IsSubset reports whether every value of rb is also present in other.
// The walk short-circuits on the first missing chunk or value.
func (rb *Bitmap) IsSubset(other *Bitmap) bool {
	if other == nil {
		return len(rb.containers) == 0
	}

	for i := range rb.containers {
		idx, found := find16(other.index, rb.index[i])
		if !found || !containerSubset(&rb.containers[i], &other.containers[idx]) {
			return false
		}
	}
	return true
}

// Intersects reports whether the two bitmaps share at least one value,
// short-circuiting on the first overlapping pair.
func (rb *Bitmap) Intersects(other *Bitmap) bool {
	if other == nil {
		return false
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
			if containersIntersect(&rb.containers[i], &other.containers[j]) {
				return true
			}
			i++
			j++
		}
	}
	return false
}

// IsDisjoint reports whether the two bitmaps share no values.
func (rb *Bitmap) IsDisjoint(other *Bitmap) bool {
	return !rb.Intersects(other)
}

// containerSubset reports whether every value of a is present in b.
func containerSubset(a, b *container) bool {
	if a.Size > b.Size {
		return false
	}

	switch {
	case b.Type == typeBitmap:
		bm := b.bmp()
		return a.iterate(func(v uint16) bool {
			return bm.Contains(uint32(v))
		})

	case a.Type == typeRun && b.Type == typeRun:
		// every run of a must be contained in a single run of b
		x, y := a.Data, b.Data
		j := 0
		for i := 0; i+1 < len(x); i += 2 {
			for j+1 < len(y) && y[j+1] < x[i+1] {
				j += 2
			}
			if j+1 >= len(y) || x[i] < y[j] || x[i+1] > y[j+1] {
				return false
			}
		}
		return true

	default:
		return a.iterate(func(v uint16) bool {
			return b.contains(v)
		})
	}
}

// containersIntersect reports whether two containers share a value, probing
// with the smaller side.
func containersIntersect(a, b *container) bool {
	if a.Size > b.Size {
		a, b = b, a
	}

	switch {
	case a.Type == typeBitmap && b.Type == typeBitmap:
		x, y := a.bmp(), b.bmp()
		for i := range x {
			if x[i]&y[i] != 0 {
				return true
			}
		}
		return false

	case a.Type == typeRun && b.Type == typeRun:
		x, y := a.Data, b.Data
		i, j := 0, 0
		for i+1 < len(x) && j+1 < len(y) {
			switch {
			case x[i+1] < y[j]:
				i += 2
			case y[j+1] < x[i]:
				j += 2
			default:
				return true
			}
		}
		return false

	default:
		return !a.iterate(func(v uint16) bool {
			return !b.contains(v)
		})
	}
}
