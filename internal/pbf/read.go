package pbf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTruncated is returned when a read runs past the end of the data.
	ErrTruncated = errors.New("pbf: unexpected end of data")
	// ErrVarintOverflow is returned for varints longer than 10 bytes.
	ErrVarintOverflow = errors.New("pbf: expected varint not more than 10 bytes")
)

// WireTypeError reports a wire type the reader cannot skip.
type WireTypeError struct {
	Type int
}

func (e *WireTypeError) Error() string {
	return fmt.Sprintf("pbf: unimplemented wire type %d", e.Type)
}

// ReadFields calls readField for every field until end. Fields readField
// leaves untouched are skipped.
func (b *Buffer) ReadFields(readField func(field int, b *Buffer) error, end int) error {
	for b.pos < end {
		key, err := b.ReadVarint()
		if err != nil {
			return err
		}
		b.Type = int(key & 0x7)
		start := b.pos
		if err := readField(int(key>>3), b); err != nil {
			return err
		}
		if b.pos == start {
			if err := b.Skip(); err != nil {
				return err
			}
		}
	}
	if b.pos > end {
		return ErrTruncated
	}
	return nil
}

// ReadMessage reads a length-prefixed embedded message.
func (b *Buffer) ReadMessage(readField func(field int, b *Buffer) error) error {
	end, err := b.readEnd()
	if err != nil {
		return err
	}
	return b.ReadFields(readField, end)
}

// readEnd reads a length prefix and returns the position where the payload ends.
func (b *Buffer) readEnd() (int, error) {
	n, err := b.ReadVarint()
	if err != nil {
		return 0, err
	}
	if n > uint64(len(b.buf)-b.pos) {
		return 0, ErrTruncated
	}
	return b.pos + int(n), nil
}

func (b *Buffer) ReadVarint() (uint64, error) {
	var v uint64
	for i := 0; i < 10; i++ {
		if b.pos >= len(b.buf) {
			return 0, ErrTruncated
		}
		c := b.buf[b.pos]
		b.pos++
		if i == 9 && c > 1 {
			return 0, ErrVarintOverflow
		}
		v |= uint64(c&0x7f) << (7 * uint(i))
		if c < 0x80 {
			return v, nil
		}
	}
	return 0, ErrVarintOverflow
}

func (b *Buffer) ReadSVarint() (int64, error) {
	n, err := b.ReadVarint()
	return UnZigZag(n), err
}

func (b *Buffer) ReadBool() (bool, error) {
	n, err := b.ReadVarint()
	return n != 0, err
}

func (b *Buffer) ReadFixed32() (uint32, error) {
	if len(b.buf)-b.pos < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(b.buf[b.pos:])
	b.pos += 4
	return v, nil
}

func (b *Buffer) ReadSFixed32() (int32, error) {
	v, err := b.ReadFixed32()
	return int32(v), err
}

func (b *Buffer) ReadFixed64() (uint64, error) {
	if len(b.buf)-b.pos < 8 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(b.buf[b.pos:])
	b.pos += 8
	return v, nil
}

func (b *Buffer) ReadSFixed64() (int64, error) {
	v, err := b.ReadFixed64()
	return int64(v), err
}

func (b *Buffer) ReadFloat() (float32, error) {
	v, err := b.ReadFixed32()
	return math.Float32frombits(v), err
}

func (b *Buffer) ReadDouble() (float64, error) {
	v, err := b.ReadFixed64()
	return math.Float64frombits(v), err
}

func (b *Buffer) ReadString() (string, error) {
	p, err := b.ReadBytes()
	return string(p), err
}

// ReadBytes returns a length-prefixed byte slice. The result aliases the
// buffer's storage.
func (b *Buffer) ReadBytes() ([]byte, error) {
	end, err := b.readEnd()
	if err != nil {
		return nil, err
	}
	p := b.buf[b.pos:end]
	b.pos = end
	return p, nil
}

// ReadPackedVarint appends a packed (or, for wire type Varint, a single)
// repeated uint32 field to dst.
func (b *Buffer) ReadPackedVarint(dst []uint32) ([]uint32, error) {
	if b.Type != Bytes {
		v, err := b.ReadVarint()
		if err != nil {
			return dst, err
		}
		return append(dst, uint32(v)), nil
	}
	end, err := b.readEnd()
	if err != nil {
		return dst, err
	}
	for b.pos < end {
		v, err := b.ReadVarint()
		if err != nil {
			return dst, err
		}
		dst = append(dst, uint32(v))
	}
	if b.pos != end {
		return dst, ErrTruncated
	}
	return dst, nil
}

// Skip advances past the value of the current field.
func (b *Buffer) Skip() error {
	switch b.Type {
	case Varint:
		_, err := b.ReadVarint()
		return err
	case Bytes:
		end, err := b.readEnd()
		if err != nil {
			return err
		}
		b.pos = end
	case Fixed32:
		if len(b.buf)-b.pos < 4 {
			return ErrTruncated
		}
		b.pos += 4
	case Fixed64:
		if len(b.buf)-b.pos < 8 {
			return ErrTruncated
		}
		b.pos += 8
	default:
		return &WireTypeError{Type: b.Type}
	}
	return nil
}
