package protocol

import (
	"fmt"
	"io"
)

// Maximum lengths enforced by vanilla servers for client-sent strings.
const (
	MaxUsernameLength = 16
	MaxChatLength     = 256
)

// Serverbound is a packet the client sends.
type Serverbound interface {
	PacketID() int32
	AppendBody(b *Builder)
}

// Handshake selects the next state. It is the only Handshake-state packet.
type Handshake struct {
	ProtocolVersion int32
	Host            string
	Port            uint16
	NextState       int32
}

func (Handshake) PacketID() int32 { return ServerboundHandshake }

func (p Handshake) AppendBody(b *Builder) {
	b.VarInt(p.ProtocolVersion).String(p.Host).Uint16(p.Port).VarInt(p.NextState)
}

// StatusRequest asks for the server list JSON.
type StatusRequest struct{}

func (StatusRequest) PacketID() int32       { return ServerboundStatusRequest }
func (StatusRequest) AppendBody(b *Builder) {}

// PingRequest carries a payload the server must echo in its pong.
type PingRequest struct {
	Payload int64
}

func (PingRequest) PacketID() int32         { return ServerboundPingRequest }
func (p PingRequest) AppendBody(b *Builder) { b.Int64(p.Payload) }

// LoginStart begins an offline-mode login.
type LoginStart struct {
	Name string
}

func (LoginStart) PacketID() int32         { return ServerboundLoginStart }
func (p LoginStart) AppendBody(b *Builder) { b.String(p.Name) }

// LoginPluginResponse answers a plugin request. Successful=false means "not understood".
type LoginPluginResponse struct {
	MessageID  int32
	Successful bool
}

func (LoginPluginResponse) PacketID() int32 { return ServerboundLoginPluginResponse }

func (p LoginPluginResponse) AppendBody(b *Builder) {
	b.VarInt(p.MessageID).Bool(p.Successful)
}

// ChatMessage sends a line of chat (or a /command) in Play state.
type ChatMessage struct {
	Message string
}

func (ChatMessage) PacketID() int32         { return ServerboundChatMessage }
func (p ChatMessage) AppendBody(b *Builder) { b.String(p.Message) }

// KeepAliveResponse echoes a clientbound keep-alive payload verbatim.
type KeepAliveResponse struct {
	Payload []byte
}

func (KeepAliveResponse) PacketID() int32         { return ServerboundKeepAlive }
func (p KeepAliveResponse) AppendBody(b *Builder) { b.Raw(p.Payload) }

// Pong echoes a clientbound Play ping payload verbatim.
type Pong struct {
	Payload []byte
}

func (Pong) PacketID() int32         { return ServerboundPong }
func (p Pong) AppendBody(b *Builder) { b.Raw(p.Payload) }

// Marshal returns the packet ID and encoded body of p.
func Marshal(p Serverbound) (int32, []byte) {
	b := NewBuilder()
	p.AppendBody(b)
	return p.PacketID(), b.Bytes()
}

// Send encodes p and writes it as a single frame.
func Send(w io.Writer, p Serverbound) error {
	id, body := Marshal(p)
	if err := WritePacket(w, id, body); err != nil {
		return fmt.Errorf("send %T: %w", p, err)
	}
	return nil
}
