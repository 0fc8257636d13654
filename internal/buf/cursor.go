// Package buf contains the seekable byte cursor and bounds helpers shared by
// the archive decoders.
package buf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Cursor is a seekable reader over an in-memory byte source. Reads without an
// explicit order use the cursor's order; the *BE variants always read
// big-endian regardless of it.
//
// Every read that runs past the end of the data returns io.ErrUnexpectedEOF
// and leaves the position unchanged.
type Cursor struct {
	data  []byte
	pos   int
	order binary.ByteOrder
}

// NewCursor returns a cursor positioned at offset 0.
func NewCursor(data []byte, order binary.ByteOrder) *Cursor {
	if order == nil {
		order = binary.BigEndian
	}
	return &Cursor{data: data, order: order}
}

// Order returns the byte order used by the unqualified reads.
func (c *Cursor) Order() binary.ByteOrder { return c.order }

// SetOrder switches the byte order used by the unqualified reads.
func (c *Cursor) SetOrder(order binary.ByteOrder) { c.order = order }

// Len returns the size of the underlying data.
func (c *Cursor) Len() int { return len(c.data) }

// Tell returns the current absolute position.
func (c *Cursor) Tell() int64 { return int64(c.pos) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Seek moves to an absolute position. Seeking to exactly Len() is allowed.
func (c *Cursor) Seek(off int64) error {
	if off < 0 || off > int64(len(c.data)) {
		return fmt.Errorf("seek to %d (len %d): %w", off, len(c.data), io.ErrUnexpectedEOF)
	}
	c.pos = int(off)
	return nil
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int) error {
	if _, err := c.take(n); err != nil {
		return err
	}
	return nil
}

func (c *Cursor) take(n int) ([]byte, error) {
	b, ok := Slice(c.data, c.pos, n)
	if !ok {
		return nil, fmt.Errorf("read %d bytes at %d (len %d): %w", n, c.pos, len(c.data), io.ErrUnexpectedEOF)
	}
	c.pos += n
	return b, nil
}

// Bytes returns the next n bytes. The returned slice aliases the source.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n)
}

// Array4 returns the next four bytes as a fixed-size array.
func (c *Cursor) Array4() ([4]byte, error) {
	var out [4]byte
	b, err := c.take(4)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U32 reads a uint32 in the cursor's order.
func (c *Cursor) U32() (uint32, error) { return c.U32In(c.order) }

// U16BE reads a big-endian uint16.
func (c *Cursor) U16BE() (uint16, error) { return c.U16In(binary.BigEndian) }

// U32BE reads a big-endian uint32.
func (c *Cursor) U32BE() (uint32, error) { return c.U32In(binary.BigEndian) }

// I16BE reads a big-endian int16.
func (c *Cursor) I16BE() (int16, error) {
	v, err := c.U16In(binary.BigEndian)
	return int16(v), err
}

// U16In reads a uint16 in the given order.
func (c *Cursor) U16In(order binary.ByteOrder) (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// U32In reads a uint32 in the given order.
func (c *Cursor) U32In(order binary.ByteOrder) (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}
