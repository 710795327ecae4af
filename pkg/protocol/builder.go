package protocol

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Builder accumulates a packet body. Methods return the builder so fields can be chained.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Bytes returns the accumulated body.
func (b *Builder) Bytes() []byte { return b.buf }

// VarInt appends a VarInt.
func (b *Builder) VarInt(v int32) *Builder {
	b.buf = AppendVarInt(b.buf, v)
	return b
}

// String appends a VarInt length-prefixed string.
func (b *Builder) String(s string) *Builder {
	b.buf = AppendVarInt(b.buf, int32(len(s)))
	b.buf = append(b.buf, s...)
	return b
}

// Uint16 appends a big-endian uint16.
func (b *Builder) Uint16(v uint16) *Builder {
	b.buf = binary.BigEndian.AppendUint16(b.buf, v)
	return b
}

// Int32 appends a big-endian int32.
func (b *Builder) Int32(v int32) *Builder {
	b.buf = binary.BigEndian.AppendUint32(b.buf, uint32(v))
	return b
}

// Int64 appends a big-endian int64.
func (b *Builder) Int64(v int64) *Builder {
	b.buf = binary.BigEndian.AppendUint64(b.buf, uint64(v))
	return b
}

// Bool appends a one-byte boolean.
func (b *Builder) Bool(v bool) *Builder {
	if v {
		b.buf = append(b.buf, 1)
	} else {
		b.buf = append(b.buf, 0)
	}
	return b
}

// Byte appends a single byte.
func (b *Builder) Byte(v byte) *Builder {
	b.buf = append(b.buf, v)
	return b
}

// UUID appends a 128-bit identifier.
func (b *Builder) UUID(id uuid.UUID) *Builder {
	b.buf = append(b.buf, id[:]...)
	return b
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}
