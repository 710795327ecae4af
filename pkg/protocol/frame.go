package protocol

import (
	"fmt"
	"io"
)

// MaxFrameLength is the largest frame body a 3-byte VarInt length can describe.
const MaxFrameLength = 2097151

// Frame is one unframed packet: the decoded packet ID and the ID-specific body.
type Frame struct {
	ID   int32
	Body []byte
}

// Cursor returns a read cursor over the frame body.
func (f Frame) Cursor() *Cursor {
	return NewCursor(f.Body)
}

// AppendPacket appends a complete frame (length, id, body) to dst.
func AppendPacket(dst []byte, id int32, body []byte) []byte {
	total := int32(VarIntSize(id) + len(body))
	dst = AppendVarInt(dst, total)
	dst = AppendVarInt(dst, id)
	return append(dst, body...)
}

// WritePacket frames id and body and writes them with a single Write call.
func WritePacket(w io.Writer, id int32, body []byte) error {
	size := VarIntSize(id) + len(body)
	buf := AppendPacket(make([]byte, 0, VarIntSize(int32(size))+size), id, body)
	if _, err := w.Write(buf); err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}
	return nil
}

// ReadPacket reads one frame from r. The length prefix is consumed a byte at
// a time; the body is read in full before the packet ID is decoded from it.
func ReadPacket(r io.Reader) (Frame, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = byteReader{r}
	}

	length, _, err := ReadVarInt(br)
	if err != nil {
		if err == ErrMalformedVarInt {
			return Frame{}, fmt.Errorf("frame length: %w", err)
		}
		return Frame{}, &ConnectionError{Op: "read", Err: err}
	}
	if length < 1 || length > MaxFrameLength {
		return Frame{}, fmt.Errorf("%w: %d", ErrMalformedFrame, length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Frame{}, &ConnectionError{Op: "read", Err: err}
	}

	id, n, err := DecodeVarInt(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("packet id: %w", err)
	}
	return Frame{ID: id, Body: payload[n:]}, nil
}

type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
