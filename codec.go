package roaring

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrCorrupted is returned when a serialized bitmap fails validation during
// decoding. Failures wrap it with positional context; match with errors.Is.
// Corrupt input is always rejected whole, never silently truncated.
var ErrCorrupted = errors.New("roaring: corrupted bitmap data")

var isLittleEndian = binary.LittleEndian.Uint16([]byte{1, 0}) == 1

// ToBytes converts the bitmap to a byte slice
func (rb *Bitmap) ToBytes() []byte {
	var buf bytes.Buffer
	if _, err := rb.WriteTo(&buf); err != nil {
		panic(err) // a bytes.Buffer write cannot fail
	}
	return buf.Bytes()
}

// FromBytes decodes a roaring bitmap from a byte buffer.
func FromBytes(buffer []byte) (*Bitmap, error) {
	return ReadFrom(bytes.NewReader(buffer))
}

// ReadFrom reads a roaring bitmap from an io.Reader
func ReadFrom(r io.Reader) (*Bitmap, error) {
	rb := New()
	if _, err := rb.ReadFrom(r); err != nil {
		return nil, err
	}
	return rb, nil
}

// WriteTo writes the bitmap to a writer. Each container record carries the
// chunk key, the container kind, the cardinality and the payload size; the
// payload is the raw little-endian uint16 data.
func (rb *Bitmap) WriteTo(w io.Writer) (int64, error) {
	var n int64

	if err := binary.Write(w, binary.LittleEndian, uint32(len(rb.containers))); err != nil {
		return n, err
	}
	n += 4

	var header [11]byte
	for i := range rb.containers {
		c := &rb.containers[i]
		binary.LittleEndian.PutUint16(header[0:2], rb.index[i])
		header[2] = byte(c.Type)
		binary.LittleEndian.PutUint32(header[3:7], c.Size)
		binary.LittleEndian.PutUint32(header[7:11], uint32(len(c.Data)*2))
		if _, err := w.Write(header[:]); err != nil {
			return n, err
		}
		n += int64(len(header))

		if err := writeUint16s(w, c.Data); err != nil {
			return n, err
		}
		n += int64(len(c.Data) * 2)
	}
	return n, nil
}

// ReadFrom reads the bitmap from a reader, replacing the current contents.
// Every container record is validated before it is accepted: unknown kind
// tags, out-of-order keys, empty containers and payloads inconsistent with
// the declared cardinality all fail with ErrCorrupted.
func (rb *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	rb.Clear()
	var n int64

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return n, errors.Wrap(ErrCorrupted, "reading container count")
	}
	n += 4

	if count > 1<<16 {
		return n, errors.Wrapf(ErrCorrupted, "container count %d exceeds the key space", count)
	}

	var header [11]byte
	prev := -1
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return n, errors.Wrapf(ErrCorrupted, "reading header of container %d", i)
		}
		n += int64(len(header))

		key := binary.LittleEndian.Uint16(header[0:2])
		typ := ctype(header[2])
		size := binary.LittleEndian.Uint32(header[3:7])
		sizeBytes := binary.LittleEndian.Uint32(header[7:11])

		switch {
		case int(key) <= prev:
			return n, errors.Wrapf(ErrCorrupted, "container %d: key %d out of order", i, key)
		case typ != typeArray && typ != typeBitmap && typ != typeRun:
			return n, errors.Wrapf(ErrCorrupted, "container %d: unknown kind %d", i, typ)
		case size == 0 || size > 1<<16:
			return n, errors.Wrapf(ErrCorrupted, "container %d: cardinality %d out of bounds", i, size)
		case sizeBytes%2 != 0 || sizeBytes > bitmapBytes*2:
			return n, errors.Wrapf(ErrCorrupted, "container %d: payload size %d out of bounds", i, sizeBytes)
		}
		prev = int(key)

		payload, err := readUint16s(r, int(sizeBytes))
		if err != nil {
			return n, errors.Wrapf(ErrCorrupted, "reading payload of container %d", i)
		}
		n += int64(sizeBytes)

		c := container{Type: typ, Size: size, Data: payload}
		if err := validateContainer(&c); err != nil {
			return n, errors.Wrapf(err, "container %d", i)
		}
		rb.push(key, c)
	}
	return n, nil
}

// validateContainer checks that a decoded payload is well formed and matches
// the declared kind and cardinality.
func validateContainer(c *container) error {
	switch c.Type {
	case typeArray:
		if uint32(len(c.Data)) != c.Size || c.Size > maxArraySize {
			return errors.Wrapf(ErrCorrupted, "array payload of %d values, cardinality %d", len(c.Data), c.Size)
		}
		for i := 1; i < len(c.Data); i++ {
			if c.Data[i] <= c.Data[i-1] {
				return errors.Wrap(ErrCorrupted, "array values out of order")
			}
		}

	case typeBitmap:
		if len(c.Data) != bitmapWords*4 {
			return errors.Wrapf(ErrCorrupted, "bitmap payload of %d bytes", len(c.Data)*2)
		}
		size := 0
		for _, w := range c.bmp() {
			size += bits.OnesCount64(w)
		}
		if uint32(size) != c.Size {
			return errors.Wrapf(ErrCorrupted, "bitmap has %d bits set, cardinality %d", size, c.Size)
		}

	case typeRun:
		if len(c.Data)%2 != 0 {
			return errors.Wrapf(ErrCorrupted, "run payload of %d values", len(c.Data))
		}
		size, prev := uint32(0), -2
		for i := 0; i+1 < len(c.Data); i += 2 {
			s, e := int(c.Data[i]), int(c.Data[i+1])
			if s > e || s <= prev+1 {
				return errors.Wrap(ErrCorrupted, "runs overlapping or out of order")
			}
			size += uint32(e-s) + 1
			prev = e
		}
		if size != c.Size {
			return errors.Wrapf(ErrCorrupted, "runs cover %d values, cardinality %d", size, c.Size)
		}
	}
	return nil
}

// writeUint16s writes a slice of uint16s to a writer, aliasing it as []byte
// on little-endian machines.
func writeUint16s(w io.Writer, data []uint16) error {
	if len(data) == 0 {
		return nil
	}
	if isLittleEndian {
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
		_, err := w.Write(buf)
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// readUint16s reads sizeBytes worth of little-endian uint16s from a reader.
func readUint16s(r io.Reader, sizeBytes int) ([]uint16, error) {
	out := make([]uint16, sizeBytes/2)
	if sizeBytes == 0 {
		return out, nil
	}
	if isLittleEndian {
		buf := unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), sizeBytes)
		_, err := io.ReadFull(r, buf)
		return out, err
	}
	return out, binary.Read(r, binary.LittleEndian, out)
}
