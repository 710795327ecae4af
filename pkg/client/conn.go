package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-mclib/mclient/pkg/protocol"
)

// session is one TCP connection and its protocol state. Only the goroutine
// that created it reads, writes or changes state; close is safe from any
// goroutine.
type session struct {
	conn        net.Conn
	r           *bufio.Reader
	state       protocol.State
	host        string
	port        uint16
	readTimeout time.Duration
	log         zerolog.Logger

	stopWatch func() bool
	closeOnce sync.Once
	closeErr  error
}

// splitAddress returns host and port of a server address. A missing port
// means DefaultPort.
func splitAddress(address string) (string, uint16, error) {
	if !strings.Contains(address, ":") {
		return address, DefaultPort, nil
	}
	host, p, err := net.SplitHostPort(address)
	if err != nil {
		return "", 0, fmt.Errorf("invalid server address %q: %w", address, err)
	}
	port, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid server port %q: %w", p, err)
	}
	return host, uint16(port), nil
}

// connect dials the server and returns a session in the Handshake state.
// Cancelling ctx closes the connection, which unblocks any pending read.
func (c *Client) connect(ctx context.Context) (*session, error) {
	host, port, err := splitAddress(c.Address)
	if err != nil {
		return nil, err
	}

	dial := c.Dial
	if dial == nil {
		d := &net.Dialer{Timeout: c.DialTimeout}
		dial = d.DialContext
	}
	conn, err := dial(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return nil, &protocol.ConnectionError{Op: "dial", Err: err}
	}
	c.Logger.Debug().Str("address", c.Address).Msg("connected")

	s := &session{
		conn:        conn,
		r:           bufio.NewReader(conn),
		state:       protocol.StateHandshake,
		host:        host,
		port:        port,
		readTimeout: c.ReadTimeout,
		log:         c.Logger,
	}
	s.stopWatch = context.AfterFunc(ctx, func() { conn.Close() })
	c.setSession(s)
	return s, nil
}

// handshake sends the Handshake packet and moves to the state selected by intent.
func (s *session) handshake(intent int32) error {
	next, ok := protocol.Next(intent)
	if !ok {
		return fmt.Errorf("%w: unknown handshake intent %d", protocol.ErrProtocolMismatch, intent)
	}
	err := s.send(protocol.Handshake{
		ProtocolVersion: protocol.ProtocolVersion,
		Host:            s.host,
		Port:            s.port,
		NextState:       intent,
	})
	if err != nil {
		return err
	}
	s.log.Debug().Stringer("from", s.state).Stringer("to", next).Msg("state transition")
	s.state = next
	return nil
}

func (s *session) send(p protocol.Serverbound) error {
	s.log.Trace().Str("packet", fmt.Sprintf("%T", p)).Msg("send")
	return protocol.Send(s.conn, p)
}

// readFrame reads the next frame, applying the read timeout if one is set.
func (s *session) readFrame() (protocol.Frame, error) {
	if s.readTimeout > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			return protocol.Frame{}, &protocol.ConnectionError{Op: "read", Err: err}
		}
	}
	f, err := protocol.ReadPacket(s.r)
	if err != nil {
		return protocol.Frame{}, err
	}
	s.log.Trace().Stringer("state", s.state).Int32("id", f.ID).Int("len", len(f.Body)).Msg("recv")
	return f, nil
}

// next reads and decodes one packet in the current state.
func (s *session) next() (protocol.Frame, protocol.Clientbound, error) {
	f, err := s.readFrame()
	if err != nil {
		return f, nil, err
	}
	pkt, err := protocol.Decode(s.state, f)
	return f, pkt, err
}

func (s *session) close() error {
	s.closeOnce.Do(func() {
		if s.stopWatch != nil {
			s.stopWatch()
		}
		s.closeErr = s.conn.Close()
	})
	if errors.Is(s.closeErr, net.ErrClosed) {
		return nil
	}
	return s.closeErr
}
