// Package pbf implements the Protocol Buffers wire encoding on a growable
// byte buffer. It is schema-less: callers write tags and values directly.
package pbf

// Wire types.
const (
	Varint  = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	Fixed64 = 1 // double, fixed64, sfixed64
	Bytes   = 2 // string, bytes, embedded messages, packed repeated fields
	Fixed32 = 5 // float, fixed32, sfixed32
)

const initialSize = 16

// Buffer is a protobuf read/write buffer with a single cursor.
//
// The zero value is an empty buffer ready for writing.
type Buffer struct {
	buf []byte
	pos int

	// Type is the wire type of the field currently being read.
	Type int
}

// NewBuffer returns an empty buffer for writing.
func NewBuffer() *Buffer {
	return &Buffer{buf: make([]byte, initialSize)}
}

// NewBufferBytes returns a buffer positioned at the start of data, for reading.
func NewBufferBytes(data []byte) *Buffer {
	return &Buffer{buf: data}
}

// Pos returns the cursor position.
func (b *Buffer) Pos() int { return b.pos }

// Len returns the length of the underlying storage.
func (b *Buffer) Len() int { return len(b.buf) }

// realloc makes sure at least min bytes fit after the cursor, doubling the
// storage until they do.
func (b *Buffer) realloc(min int) {
	length := len(b.buf)
	if length == 0 {
		length = initialSize
	}
	for length < b.pos+min {
		length *= 2
	}
	if length != len(b.buf) {
		buf := make([]byte, length)
		copy(buf, b.buf)
		b.buf = buf
	}
}

// Finish returns the written bytes and resets the cursor. The returned slice
// shares storage with the buffer, so a buffer must not be written again
// while the result is in use.
func (b *Buffer) Finish() []byte {
	n := b.pos
	b.pos = 0
	return b.buf[:n:n]
}

// ZigZag maps signed integers to unsigned so that small magnitudes stay small.
func ZigZag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// UnZigZag is the inverse of ZigZag.
func UnZigZag(n uint64) int64 {
	return int64(n>>1) ^ -int64(n&1)
}

// varintSize returns the number of bytes v occupies as a varint.
func varintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
