package protocol

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestVarInt(t *testing.T) {
	tests := []struct {
		value    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{2, []byte{0x02}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{25565, []byte{0xDD, 0xC7, 0x01}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, tt := range tests {
		got := EncodeVarInt(tt.value)
		if !bytes.Equal(got, tt.expected) {
			t.Errorf("EncodeVarInt(%d) = % X, want % X", tt.value, got, tt.expected)
		}
		if size := VarIntSize(tt.value); size != len(tt.expected) {
			t.Errorf("VarIntSize(%d) = %d, want %d", tt.value, size, len(tt.expected))
		}

		val, n, err := DecodeVarInt(tt.expected)
		if err != nil {
			t.Fatalf("DecodeVarInt(% X) error: %v", tt.expected, err)
		}
		if val != tt.value || n != len(tt.expected) {
			t.Errorf("DecodeVarInt(% X) = %d (%d bytes), want %d (%d bytes)", tt.expected, val, n, tt.value, len(tt.expected))
		}

		val, n, err = ReadVarInt(bytes.NewReader(tt.expected))
		if err != nil {
			t.Fatalf("ReadVarInt(% X) error: %v", tt.expected, err)
		}
		if val != tt.value || n != len(tt.expected) {
			t.Errorf("ReadVarInt(% X) = %d (%d bytes), want %d", tt.expected, val, n, tt.value)
		}

		var buf bytes.Buffer
		if _, err := WriteVarInt(&buf, tt.value); err != nil {
			t.Fatalf("WriteVarInt(%d) error: %v", tt.value, err)
		}
		if !bytes.Equal(buf.Bytes(), tt.expected) {
			t.Errorf("WriteVarInt(%d) = % X, want % X", tt.value, buf.Bytes(), tt.expected)
		}
	}
}

func TestVarIntRoundTripSweep(t *testing.T) {
	values := []int32{math.MinInt32, math.MinInt32 + 1, -300, -128, -2, 0, 3, 300, 1 << 14, 1<<21 - 1, 1 << 28, math.MaxInt32 - 1, math.MaxInt32}
	for v := int64(math.MinInt32); v <= math.MaxInt32; v += 7919 * 104729 {
		values = append(values, int32(v))
	}
	for _, v := range values {
		got, _, err := DecodeVarInt(EncodeVarInt(v))
		if err != nil {
			t.Fatalf("DecodeVarInt(EncodeVarInt(%d)) error: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d = %d", v, got)
		}
	}
}

func TestVarIntTooLong(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}

	if _, _, err := DecodeVarInt(data); !errors.Is(err, ErrMalformedVarInt) {
		t.Errorf("DecodeVarInt error = %v, want ErrMalformedVarInt", err)
	}

	r := bytes.NewReader(data)
	_, n, err := ReadVarInt(r)
	if !errors.Is(err, ErrMalformedVarInt) {
		t.Errorf("ReadVarInt error = %v, want ErrMalformedVarInt", err)
	}
	if n != 5 || r.Len() != 1 {
		t.Errorf("ReadVarInt consumed %d bytes (%d left), want 5 consumed", n, r.Len())
	}
}

func TestVarIntFifthByteHighBits(t *testing.T) {
	// bits beyond the 32nd are dropped, not rejected
	got, n, err := DecodeVarInt([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x7F})
	if err != nil {
		t.Fatalf("DecodeVarInt error: %v", err)
	}
	if got != -1 || n != 5 {
		t.Errorf("DecodeVarInt = %d (%d bytes), want -1 (5 bytes)", got, n)
	}
}

func TestVarIntTruncated(t *testing.T) {
	if _, _, err := DecodeVarInt([]byte{0x80, 0x80}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("DecodeVarInt error = %v, want io.ErrUnexpectedEOF", err)
	}
	if _, _, err := ReadVarInt(bytes.NewReader([]byte{0xDD})); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadVarInt error = %v, want io.ErrUnexpectedEOF", err)
	}
	if _, _, err := ReadVarInt(bytes.NewReader(nil)); err != io.EOF {
		t.Errorf("ReadVarInt on empty input error = %v, want io.EOF", err)
	}
}
