package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxStringLength bounds string fields, in bytes (32767 UTF-16 units * 4).
const MaxStringLength = 32767 * 4

// Cursor reads protocol fields from an immutable byte slice, advancing a
// position index. It never copies or shrinks the underlying slice.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Rest returns the unread bytes without advancing.
func (c *Cursor) Rest() []byte { return c.buf[c.pos:] }

// Expect returns an error if any bytes remain unread.
func (c *Cursor) Expect() error {
	if n := c.Remaining(); n != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrProtocolMismatch, n)
	}
	return nil
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, c.pos, c.Remaining(), io.ErrUnexpectedEOF)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Bytes reads n raw bytes.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n)
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.take(n)
	return err
}

// Byte reads one unsigned byte.
func (c *Cursor) Byte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads a one-byte boolean.
func (c *Cursor) Bool() (bool, error) {
	b, err := c.Byte()
	return b != 0, err
}

// VarInt reads a VarInt.
func (c *Cursor) VarInt() (int32, error) {
	v, n, err := DecodeVarInt(c.Rest())
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}

// Int32 reads a big-endian int32.
func (c *Cursor) Int32() (int32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// Int64 reads a big-endian int64.
func (c *Cursor) Int64() (int64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// UUID reads a 128-bit identifier.
func (c *Cursor) UUID() (uuid.UUID, error) {
	b, err := c.take(16)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.UUID(b), nil
}

// String reads a VarInt length-prefixed UTF-8 string. Invalid UTF-8 is
// reported as ErrDecode after the bytes are consumed, so the cursor stays aligned.
func (c *Cursor) String() (string, error) {
	n, err := c.VarInt()
	if err != nil {
		return "", err
	}
	if n < 0 || n > MaxStringLength {
		return "", fmt.Errorf("%w: string length %d", ErrProtocolMismatch, n)
	}
	b, err := c.take(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid utf-8 in string field", ErrDecode)
	}
	return string(b), nil
}

// SkipString consumes a string field without validating it.
func (c *Cursor) SkipString() error {
	n, err := c.VarInt()
	if err != nil {
		return err
	}
	return c.Skip(int(n))
}
