package roaring

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		gen  dataGen
	}{
		{"empty", func() ([]uint32, string) { return nil, "emp" }},
		{"single", func() ([]uint32, string) { return []uint32{42}, "sgl" }},
		{"sequential", genSeq(5000, 0)},
		{"random", genRand(5000, 1 << 22)},
		{"sparse", genSparse(100)},
		{"boundary", genBoundary()},
		{"mixed", genMixed()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := tt.gen()
			rb := New()
			for _, v := range data {
				rb.Set(v)
			}
			rb.Optimize()

			decoded, err := FromBytes(rb.ToBytes())
			assert.NoError(t, err)
			assert.Equal(t, rb.Count(), decoded.Count())
			assert.Equal(t, collect(rb), collect(decoded))
		})
	}
}

// TestRoundTripAllKinds serializes one container of each kind and verifies
// the kinds survive the trip unchanged.
func TestRoundTripAllKinds(t *testing.T) {
	rb := New()
	for _, v := range valuesArray(0) {
		rb.Set(v)
	}
	for _, v := range valuesBitmap(1 << 16) {
		rb.Set(v)
	}
	for _, v := range valuesRun(2 << 16) {
		rb.Set(v)
	}
	rb.Optimize()
	assert.Equal(t, typeArray, rb.containers[0].Type)
	assert.Equal(t, typeBitmap, rb.containers[1].Type)
	assert.Equal(t, typeRun, rb.containers[2].Type)

	decoded, err := FromBytes(rb.ToBytes())
	assert.NoError(t, err)
	assert.Equal(t, typeArray, decoded.containers[0].Type)
	assert.Equal(t, typeBitmap, decoded.containers[1].Type)
	assert.Equal(t, typeRun, decoded.containers[2].Type)
	assert.Equal(t, collect(rb), collect(decoded))
}

// TestSerializeScenario covers the fifth concrete scenario: optimize picks
// the cheaper layout and the encoding reflects it.
func TestSerializeScenario(t *testing.T) {
	rb := New()
	for v := uint32(0); v < 5000; v++ {
		rb.Set(v) // a span that optimize compresses into a run
	}
	rb.Set(100000) // stays an array
	for v := uint32(1 << 17); v < 1<<17+50000; v += 2 {
		rb.Set(v) // too scattered for runs, too many for an array
	}

	before := len(rb.ToBytes())
	rb.Optimize()
	after := len(rb.ToBytes())
	assert.Less(t, after, before)

	decoded, err := FromBytes(rb.ToBytes())
	assert.NoError(t, err)
	assert.Equal(t, rb.Count(), decoded.Count())
	assert.Equal(t, collect(rb), collect(decoded))
}

func TestWriteToReadFrom(t *testing.T) {
	rb, _ := shaped(typeRun, 0)
	rb.SetRange(1<<20, 1<<20+100)

	var buf bytes.Buffer
	written, err := rb.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), written)

	decoded, err := ReadFrom(&buf)
	assert.NoError(t, err)
	assert.Equal(t, collect(rb), collect(decoded))
}

// TestReadFromReplaces verifies that decoding into an existing bitmap
// discards its previous contents.
func TestReadFromReplaces(t *testing.T) {
	rb, _ := testPair([]uint32{1, 2, 3})
	encoded := rb.ToBytes()

	dst, _ := testPair([]uint32{1 << 30})
	read, err := dst.ReadFrom(bytes.NewReader(encoded))
	assert.NoError(t, err)
	assert.Equal(t, int64(len(encoded)), read)
	assert.Equal(t, []uint32{1, 2, 3}, collect(dst))
}

func TestDecodeCorrupted(t *testing.T) {
	// a two-container encoding to corrupt: chunk 0 array [1 2 3],
	// chunk 16 array [7]
	source, _ := testPair([]uint32{1, 2, 3, 1 << 20})
	encoded := source.ToBytes()

	corrupt := func(mutate func(b []byte)) error {
		b := append([]byte(nil), encoded...)
		mutate(b)
		_, err := FromBytes(b)
		return err
	}

	t.Run("empty input", func(t *testing.T) {
		_, err := FromBytes(nil)
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := FromBytes(encoded[:len(encoded)-1])
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := FromBytes(encoded[:10])
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("container count exceeds key space", func(t *testing.T) {
		err := corrupt(func(b []byte) {
			binary.LittleEndian.PutUint32(b[0:4], 1<<16+1)
		})
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("unknown kind tag", func(t *testing.T) {
		err := corrupt(func(b []byte) {
			b[6] = 0xFF // kind byte of the first container
		})
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("keys out of order", func(t *testing.T) {
		err := corrupt(func(b []byte) {
			// second container header starts after the first record:
			// 4 count + 11 header + 6 payload
			binary.LittleEndian.PutUint16(b[21:23], 0)
		})
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("odd payload size", func(t *testing.T) {
		err := corrupt(func(b []byte) {
			binary.LittleEndian.PutUint32(b[11:15], 7)
		})
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("cardinality payload mismatch", func(t *testing.T) {
		err := corrupt(func(b []byte) {
			binary.LittleEndian.PutUint32(b[7:11], 2) // three values follow
		})
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("array values out of order", func(t *testing.T) {
		err := corrupt(func(b []byte) {
			binary.LittleEndian.PutUint16(b[15:17], 9) // [9 2 3]
		})
		assert.True(t, errors.Is(err, ErrCorrupted))
	})
}

// TestDecodeCorruptedBitmap covers validation specific to bitmap payloads.
func TestDecodeCorruptedBitmap(t *testing.T) {
	source, _ := shaped(typeBitmap, 0)
	encoded := source.ToBytes()

	t.Run("popcount mismatch", func(t *testing.T) {
		b := append([]byte(nil), encoded...)
		binary.LittleEndian.PutUint32(b[7:11], source.containers[0].Size+1)
		_, err := FromBytes(b)
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("short bitmap payload", func(t *testing.T) {
		b := append([]byte(nil), encoded...)
		binary.LittleEndian.PutUint32(b[11:15], bitmapBytes-2)
		_, err := FromBytes(b[:len(b)-2])
		assert.True(t, errors.Is(err, ErrCorrupted))
	})
}

// TestDecodeCorruptedRuns covers validation specific to run payloads, built
// by hand since the encoder never emits malformed runs.
func TestDecodeCorruptedRuns(t *testing.T) {
	record := func(pairs []uint16, size uint32) []byte {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, uint32(1))
		binary.Write(&buf, binary.LittleEndian, uint16(0)) // key
		buf.WriteByte(byte(typeRun))
		binary.Write(&buf, binary.LittleEndian, size)
		binary.Write(&buf, binary.LittleEndian, uint32(len(pairs)*2))
		binary.Write(&buf, binary.LittleEndian, pairs)
		return buf.Bytes()
	}

	t.Run("valid baseline", func(t *testing.T) {
		rb, err := FromBytes(record([]uint16{5, 10, 20, 30}, 17))
		assert.NoError(t, err)
		assert.Equal(t, 17, rb.Count())
	})

	t.Run("reversed pair", func(t *testing.T) {
		_, err := FromBytes(record([]uint16{10, 5}, 6))
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("overlapping pairs", func(t *testing.T) {
		_, err := FromBytes(record([]uint16{5, 10, 8, 12}, 11))
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("adjacent pairs not merged", func(t *testing.T) {
		_, err := FromBytes(record([]uint16{5, 10, 11, 12}, 8))
		assert.True(t, errors.Is(err, ErrCorrupted))
	})

	t.Run("length disagrees with cardinality", func(t *testing.T) {
		_, err := FromBytes(record([]uint16{5, 10}, 99))
		assert.True(t, errors.Is(err, ErrCorrupted))
	})
}
