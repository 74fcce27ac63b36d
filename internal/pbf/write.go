package pbf

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
)

// WriteTag writes a field key.
func (b *Buffer) WriteTag(field, wireType int) {
	b.WriteVarint(uint64(field)<<3 | uint64(wireType))
}

// WriteVarint writes v 7 bits per byte, least significant group first.
func (b *Buffer) WriteVarint(v uint64) {
	if v > 0xfffffff {
		b.writeBigVarint(v)
		return
	}

	b.realloc(4)
	for v > 0x7f {
		b.buf[b.pos] = byte(v&0x7f) | 0x80
		b.pos++
		v >>= 7
	}
	b.buf[b.pos] = byte(v)
	b.pos++
}

// writeBigVarint handles values above 28 bits by splitting them into 32-bit
// halves: the first four bytes carry the low 28 bits, the fifth mixes the
// remaining 4 low bits with the 3 lowest high bits.
func (b *Buffer) writeBigVarint(v uint64) {
	low, high := uint32(v), uint32(v>>32)

	b.realloc(10)
	for i := 0; i < 4; i++ {
		b.buf[b.pos] = byte(low&0x7f) | 0x80
		b.pos++
		low >>= 7
	}
	c := byte(low&0x0f) | byte(high&0x07)<<4
	high >>= 3
	for high != 0 {
		b.buf[b.pos] = c | 0x80
		b.pos++
		c = byte(high & 0x7f)
		high >>= 7
	}
	b.buf[b.pos] = c
	b.pos++
}

// WriteSVarint writes v zig-zag encoded.
func (b *Buffer) WriteSVarint(v int64) {
	b.WriteVarint(ZigZag(v))
}

// WriteBool writes v as a 0/1 varint.
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteVarint(1)
		return
	}
	b.WriteVarint(0)
}

func (b *Buffer) WriteFixed32(v uint32) {
	b.realloc(4)
	binary.LittleEndian.PutUint32(b.buf[b.pos:], v)
	b.pos += 4
}

func (b *Buffer) WriteSFixed32(v int32) {
	b.WriteFixed32(uint32(v))
}

func (b *Buffer) WriteFixed64(v uint64) {
	b.realloc(8)
	binary.LittleEndian.PutUint64(b.buf[b.pos:], v)
	b.pos += 8
}

func (b *Buffer) WriteSFixed64(v int64) {
	b.WriteFixed64(uint64(v))
}

func (b *Buffer) WriteFloat(v float32) {
	b.WriteFixed32(math.Float32bits(v))
}

func (b *Buffer) WriteDouble(v float64) {
	b.WriteFixed64(math.Float64bits(v))
}

// WriteString writes a length-prefixed UTF-8 string. Invalid UTF-8 sequences
// are replaced by U+FFFD.
func (b *Buffer) WriteString(s string) {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	b.realloc(len(s) + 1)

	// reserve 1 byte for a short length
	b.pos++
	start := b.pos
	b.pos += copy(b.buf[b.pos:], s)
	b.backfillLength(start)
}

// WriteBytes writes a length-prefixed byte slice.
func (b *Buffer) WriteBytes(p []byte) {
	b.WriteVarint(uint64(len(p)))
	b.realloc(len(p))
	b.pos += copy(b.buf[b.pos:], p)
}

// WriteRawMessage writes the length-prefixed output of fn.
func (b *Buffer) WriteRawMessage(fn func(*Buffer)) {
	b.realloc(1)
	b.pos++
	start := b.pos
	fn(b)
	b.backfillLength(start)
}

// WriteMessage writes fn's output as embedded message field.
func (b *Buffer) WriteMessage(field int, fn func(*Buffer)) {
	b.WriteTag(field, Bytes)
	b.WriteRawMessage(fn)
}

// backfillLength writes the length of the payload between start and the
// cursor into the byte reserved at start-1. If the length needs more than one
// byte the payload is shifted right to make room.
func (b *Buffer) backfillLength(start int) {
	n := b.pos - start
	if n >= 0x80 {
		extra := varintSize(uint64(n)) - 1
		b.realloc(extra)
		copy(b.buf[start+extra:], b.buf[start:b.pos])
	}
	b.pos = start - 1
	b.WriteVarint(uint64(n))
	b.pos += n
}

func (b *Buffer) WriteVarintField(field int, v uint64) {
	b.WriteTag(field, Varint)
	b.WriteVarint(v)
}

func (b *Buffer) WriteSVarintField(field int, v int64) {
	b.WriteTag(field, Varint)
	b.WriteSVarint(v)
}

func (b *Buffer) WriteBoolField(field int, v bool) {
	b.WriteTag(field, Varint)
	b.WriteBool(v)
}

func (b *Buffer) WriteFixed32Field(field int, v uint32) {
	b.WriteTag(field, Fixed32)
	b.WriteFixed32(v)
}

func (b *Buffer) WriteSFixed32Field(field int, v int32) {
	b.WriteTag(field, Fixed32)
	b.WriteSFixed32(v)
}

func (b *Buffer) WriteFixed64Field(field int, v uint64) {
	b.WriteTag(field, Fixed64)
	b.WriteFixed64(v)
}

func (b *Buffer) WriteSFixed64Field(field int, v int64) {
	b.WriteTag(field, Fixed64)
	b.WriteSFixed64(v)
}

func (b *Buffer) WriteFloatField(field int, v float32) {
	b.WriteTag(field, Fixed32)
	b.WriteFloat(v)
}

func (b *Buffer) WriteDoubleField(field int, v float64) {
	b.WriteTag(field, Fixed64)
	b.WriteDouble(v)
}

func (b *Buffer) WriteStringField(field int, s string) {
	b.WriteTag(field, Bytes)
	b.WriteString(s)
}

func (b *Buffer) WriteBytesField(field int, p []byte) {
	b.WriteTag(field, Bytes)
	b.WriteBytes(p)
}

// Packed repeated fields. Empty slices write nothing.

func (b *Buffer) WritePackedVarint(field int, vs []uint32) {
	if len(vs) == 0 {
		return
	}
	b.WriteMessage(field, func(b *Buffer) {
		for _, v := range vs {
			b.WriteVarint(uint64(v))
		}
	})
}

func (b *Buffer) WritePackedSVarint(field int, vs []int32) {
	if len(vs) == 0 {
		return
	}
	b.WriteMessage(field, func(b *Buffer) {
		for _, v := range vs {
			b.WriteSVarint(int64(v))
		}
	})
}

func (b *Buffer) WritePackedBool(field int, vs []bool) {
	if len(vs) == 0 {
		return
	}
	b.WriteMessage(field, func(b *Buffer) {
		for _, v := range vs {
			b.WriteBool(v)
		}
	})
}

func (b *Buffer) WritePackedFloat(field int, vs []float32) {
	if len(vs) == 0 {
		return
	}
	b.WriteMessage(field, func(b *Buffer) {
		for _, v := range vs {
			b.WriteFloat(v)
		}
	})
}

func (b *Buffer) WritePackedDouble(field int, vs []float64) {
	if len(vs) == 0 {
		return
	}
	b.WriteMessage(field, func(b *Buffer) {
		for _, v := range vs {
			b.WriteDouble(v)
		}
	})
}

func (b *Buffer) WritePackedFixed32(field int, vs []uint32) {
	if len(vs) == 0 {
		return
	}
	b.WriteMessage(field, func(b *Buffer) {
		for _, v := range vs {
			b.WriteFixed32(v)
		}
	})
}

func (b *Buffer) WritePackedFixed64(field int, vs []uint64) {
	if len(vs) == 0 {
		return
	}
	b.WriteMessage(field, func(b *Buffer) {
		for _, v := range vs {
			b.WriteFixed64(v)
		}
	})
}
