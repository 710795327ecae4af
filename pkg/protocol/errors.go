package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedVarInt means a VarInt needed a 6th byte; the stream can't be trusted.
	ErrMalformedVarInt = errors.New("malformed varint: more than 5 bytes")
	// ErrMalformedFrame means the frame length prefix is out of range.
	ErrMalformedFrame = errors.New("malformed frame length")
	// ErrProtocolMismatch means the peer answered with something other than what was expected.
	ErrProtocolMismatch = errors.New("protocol mismatch")
	// ErrDecode means a text field held invalid UTF-8 or JSON. Callers may recover from it.
	ErrDecode = errors.New("decode error")
	// ErrUnsupported means the server asked for a protocol phase this client doesn't implement.
	ErrUnsupported = errors.New("unsupported protocol feature")
)

// ConnectionError wraps a dial, read or write failure on the transport.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
