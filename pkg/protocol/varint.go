package protocol

import (
	"io"
)

const (
	segmentBits  = 0x7F
	continueBit  = 0x80
	maxVarIntLen = 5
)

// AppendVarInt appends the VarInt encoding of value to dst.
// Negative values always take the full 5 bytes.
func AppendVarInt(dst []byte, value int32) []byte {
	uval := uint32(value)
	for {
		if uval&^uint32(segmentBits) == 0 {
			return append(dst, byte(uval))
		}
		dst = append(dst, byte(uval&segmentBits)|continueBit)
		uval >>= 7
	}
}

// EncodeVarInt returns the VarInt encoding of value.
func EncodeVarInt(value int32) []byte {
	return AppendVarInt(make([]byte, 0, VarIntSize(value)), value)
}

// VarIntSize returns the number of bytes needed to encode value.
func VarIntSize(value int32) int {
	uval := uint32(value)
	size := 1
	for uval&^uint32(segmentBits) != 0 {
		size++
		uval >>= 7
	}
	return size
}

// DecodeVarInt decodes a VarInt from the start of b and returns the value
// and the number of bytes consumed.
func DecodeVarInt(b []byte) (int32, int, error) {
	var result int32
	for i := 0; ; i++ {
		if i >= maxVarIntLen {
			return 0, i, ErrMalformedVarInt
		}
		if i >= len(b) {
			return 0, i, io.ErrUnexpectedEOF
		}
		cur := b[i]
		result |= int32(cur&segmentBits) << (7 * i)
		if cur&continueBit == 0 {
			return result, i + 1, nil
		}
	}
}

// ReadVarInt reads a VarInt one byte at a time from r.
func ReadVarInt(r io.ByteReader) (int32, int, error) {
	var result int32
	for i := 0; ; i++ {
		if i >= maxVarIntLen {
			return 0, i, ErrMalformedVarInt
		}
		cur, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && i > 0 {
				err = io.ErrUnexpectedEOF
			}
			return 0, i, err
		}
		result |= int32(cur&segmentBits) << (7 * i)
		if cur&continueBit == 0 {
			return result, i + 1, nil
		}
	}
}

// WriteVarInt writes the VarInt encoding of value to w.
func WriteVarInt(w io.Writer, value int32) (int, error) {
	var buf [maxVarIntLen]byte
	return w.Write(AppendVarInt(buf[:0], value))
}
