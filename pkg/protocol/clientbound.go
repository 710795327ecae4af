package protocol

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Clientbound is a decoded packet received from the server. The set of
// implementations is closed; dispatch with a type switch.
type Clientbound interface {
	clientbound()
}

// Unknown is a packet whose ID isn't interpreted in the current state.
type Unknown struct {
	State State
	ID    int32
	Body  []byte
}

// Status state.

// StatusResponse carries the raw server list JSON.
type StatusResponse struct {
	JSON string
}

// PongResponse echoes the payload of a PingRequest.
type PongResponse struct {
	Payload int64
}

// Login state.

// LoginDisconnect rejects the login with a chat JSON reason.
type LoginDisconnect struct {
	Reason string
}

// EncryptionRequest starts online-mode encryption. Not supported by this client.
type EncryptionRequest struct {
	ServerID string
}

// LoginSuccess ends the login and moves the connection to Play.
type LoginSuccess struct {
	UUID     uuid.UUID
	Username string
}

// SetCompression enables compression. Not supported by this client.
type SetCompression struct {
	Threshold int32
}

// LoginPluginRequest is a custom login query from the server.
type LoginPluginRequest struct {
	MessageID int32
	Channel   string
	Data      []byte
}

// Play state.

// ChatReceived is a chat message with its JSON payload, position and sender.
type ChatReceived struct {
	JSON     string
	Position byte
	Sender   uuid.UUID
}

// Disconnect ends the play session with a chat JSON reason.
type Disconnect struct {
	Reason string
}

// KeepAlive must be echoed back verbatim to avoid a timeout kick.
type KeepAlive struct {
	Payload []byte
}

// Ping must be answered with a Pong carrying the same payload.
type Ping struct {
	Payload []byte
}

func (Unknown) clientbound()            {}
func (StatusResponse) clientbound()     {}
func (PongResponse) clientbound()       {}
func (LoginDisconnect) clientbound()    {}
func (EncryptionRequest) clientbound()  {}
func (LoginSuccess) clientbound()       {}
func (SetCompression) clientbound()     {}
func (LoginPluginRequest) clientbound() {}
func (ChatReceived) clientbound()       {}
func (Disconnect) clientbound()         {}
func (KeepAlive) clientbound()          {}
func (Ping) clientbound()               {}
func (PlayerInfo) clientbound()         {}

// Decode interprets a frame received in state s.
func Decode(s State, f Frame) (Clientbound, error) {
	var (
		pkt Clientbound
		err error
	)
	switch s {
	case StateStatus:
		pkt, err = decodeStatus(f)
	case StateLogin:
		pkt, err = decodeLogin(f)
	case StatePlay:
		pkt, err = decodePlay(f)
	default:
		return Unknown{State: s, ID: f.ID, Body: f.Body}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s packet 0x%02X: %w", s, f.ID, err)
	}
	return pkt, nil
}

func decodeStatus(f Frame) (Clientbound, error) {
	c := f.Cursor()
	switch f.ID {
	case ClientboundStatusResponse:
		s, err := c.String()
		if err != nil {
			return nil, err
		}
		return StatusResponse{JSON: s}, nil
	case ClientboundPongResponse:
		v, err := c.Int64()
		if err != nil {
			return nil, err
		}
		return PongResponse{Payload: v}, nil
	}
	return Unknown{State: StateStatus, ID: f.ID, Body: f.Body}, nil
}

func decodeLogin(f Frame) (Clientbound, error) {
	c := f.Cursor()
	switch f.ID {
	case ClientboundLoginDisconnect:
		s, err := c.String()
		if err != nil && !errors.Is(err, ErrDecode) {
			return nil, err
		}
		return LoginDisconnect{Reason: s}, nil
	case ClientboundEncryptionRequest:
		s, err := c.String()
		if err != nil {
			return nil, err
		}
		return EncryptionRequest{ServerID: s}, nil
	case ClientboundLoginSuccess:
		id, err := c.UUID()
		if err != nil {
			return nil, err
		}
		name, err := c.String()
		if err != nil {
			return nil, err
		}
		return LoginSuccess{UUID: id, Username: name}, nil
	case ClientboundSetCompression:
		v, err := c.VarInt()
		if err != nil {
			return nil, err
		}
		return SetCompression{Threshold: v}, nil
	case ClientboundLoginPluginRequest:
		id, err := c.VarInt()
		if err != nil {
			return nil, err
		}
		channel, err := c.String()
		if err != nil {
			return nil, err
		}
		return LoginPluginRequest{MessageID: id, Channel: channel, Data: c.Rest()}, nil
	}
	return Unknown{State: StateLogin, ID: f.ID, Body: f.Body}, nil
}

func decodePlay(f Frame) (Clientbound, error) {
	c := f.Cursor()
	switch f.ID {
	case ClientboundChatMessage:
		s, err := c.String()
		if err != nil {
			return nil, err
		}
		pos, err := c.Byte()
		if err != nil {
			return nil, err
		}
		sender, err := c.UUID()
		if err != nil {
			return nil, err
		}
		return ChatReceived{JSON: s, Position: pos, Sender: sender}, nil
	case ClientboundDisconnect:
		// an unreadable reason must not keep the session alive
		s, err := c.String()
		if err != nil && !errors.Is(err, ErrDecode) {
			return nil, err
		}
		return Disconnect{Reason: s}, nil
	case ClientboundKeepAlive:
		return KeepAlive{Payload: f.Body}, nil
	case ClientboundPing:
		return Ping{Payload: f.Body}, nil
	case ClientboundPlayerInfo:
		return DecodePlayerInfo(c)
	}
	return Unknown{State: StatePlay, ID: f.ID, Body: f.Body}, nil
}
