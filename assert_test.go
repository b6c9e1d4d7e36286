package roaring

import (
	"math/rand/v2"

	"github.com/bits-and-blooms/bitset"
	"github.com/kelindar/bitmap"
)

// ---------------------------------------- Data Generators ----------------------------------------

type dataGen func() ([]uint32, string)

// genSeq creates consecutive integers starting from offset
func genSeq(size int, offset uint32) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := range data {
			data[i] = offset + uint32(i)
		}
		return data, "seq"
	}
}

// genRand creates random integers within [0, maxVal)
func genRand(size int, maxVal uint32) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := range data {
			data[i] = uint32(rand.IntN(int(maxVal)))
		}
		return data, "rnd"
	}
}

// genSparse creates values with large gaps, one container per handful
func genSparse(size int) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := range data {
			data[i] = uint32(i * 100000)
		}
		return data, "sps"
	}
}

// genDense creates dense clustered values that compress into runs
func genDense(size int) dataGen {
	return func() ([]uint32, string) {
		var data []uint32
		for i := 0; len(data) < size; i++ {
			base := uint32(i * 1000)
			for j := uint32(0); j < 50 && len(data) < size; j++ {
				data = append(data, base+j)
			}
		}
		return data, "dns"
	}
}

// genBoundary creates values around container boundaries
func genBoundary() dataGen {
	return func() ([]uint32, string) {
		return []uint32{
			0, 1, 65534, 65535,
			65536, 65537, 131071, 131072,
			1 << 24, 4294967294, 4294967295,
		}, "bnd"
	}
}

// genMixed creates a mix of a long run, a dense cluster and sparse values
func genMixed() dataGen {
	return func() ([]uint32, string) {
		var data []uint32
		for v := uint32(1000); v < 3000; v++ {
			data = append(data, v)
		}
		for v := uint32(100000); v < 115000; v += 3 {
			data = append(data, v)
		}
		data = append(data, 7, 42, 1<<20, 1<<22)
		return data, "mix"
	}
}

// ---------------------------------------- Test Helpers ----------------------------------------

// testPair creates both our bitmap and a dense reference bitmap from the
// same data
func testPair(data []uint32) (*Bitmap, *bitmap.Bitmap) {
	our := New()
	var ref bitmap.Bitmap
	for _, v := range data {
		our.Set(v)
		ref.Set(v)
	}
	return our, &ref
}

// collect returns all values of the bitmap in ascending order
func collect(rb *Bitmap) []uint32 {
	var out []uint32
	rb.Range(func(x uint32) {
		out = append(out, x)
	})
	return out
}

// collectSet returns all values of a reference bitset in ascending order
func collectSet(bs *bitset.BitSet) []uint32 {
	var out []uint32
	for v, ok := bs.NextSet(0); ok; v, ok = bs.NextSet(v + 1) {
		out = append(out, uint32(v))
	}
	return out
}

// toBitSet builds a reference bitset from values
func toBitSet(data []uint32) *bitset.BitSet {
	bs := bitset.New(0)
	for _, v := range data {
		bs.Set(uint(v))
	}
	return bs
}

// ---------------------------------------- Container Shaping ----------------------------------------

// valuesArray yields values that keep a chunk as an array container
func valuesArray(base uint32) []uint32 {
	var out []uint32
	for v := uint32(0); v < 65536; v += 17 {
		out = append(out, base+v)
	}
	return out
}

// valuesBitmap yields enough scattered values to force a bitmap container
func valuesBitmap(base uint32) []uint32 {
	var out []uint32
	for v := uint32(0); v < 65536; v += 9 {
		out = append(out, base+v)
	}
	return out
}

// valuesRun yields a few long spans that optimize into a run container
func valuesRun(base uint32) []uint32 {
	var out []uint32
	for _, span := range [][2]uint32{{100, 5000}, {9000, 9400}, {20000, 30000}} {
		for v := span[0]; v <= span[1]; v++ {
			out = append(out, base+v)
		}
	}
	return out
}

// shaped builds a single-chunk bitmap whose container has the given type
func shaped(typ ctype, base uint32) (*Bitmap, []uint32) {
	var values []uint32
	switch typ {
	case typeArray:
		values = valuesArray(base)
	case typeBitmap:
		values = valuesBitmap(base)
	case typeRun:
		values = valuesRun(base)
	}

	rb := New()
	for _, v := range values {
		rb.Set(v)
	}
	if typ == typeRun {
		rb.Optimize()
	}
	return rb, values
}
