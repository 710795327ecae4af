package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-mclib/mclient/pkg/chat"
	"github.com/go-mclib/mclient/pkg/protocol"
)

// play runs the main loop: drain queued commands, read one frame, handle it.
// It returns nil when the server disconnects or the user quits.
func (c *Client) play(s *session) error {
	for {
		quit, err := c.runCommands(s)
		if quit || err != nil {
			return err
		}

		f, err := s.readFrame()
		if err != nil {
			if c.isStopped() {
				return nil
			}
			return err
		}

		pkt, err := protocol.Decode(s.state, f)
		if err != nil {
			if f.ID == protocol.ClientboundDisconnect {
				c.Logger.Warn().Err(err).Msg("unreadable disconnect packet")
				return nil
			}
			if errors.Is(err, protocol.ErrDecode) {
				c.Logger.Debug().Err(err).Msg("dropping undecodable packet")
				continue
			}
			return err
		}

		done, err := c.handlePlay(s, pkt)
		if done || err != nil {
			return err
		}
	}
}

func (c *Client) handlePlay(s *session, pkt protocol.Clientbound) (done bool, err error) {
	switch p := pkt.(type) {
	case protocol.KeepAlive:
		err = s.send(protocol.KeepAliveResponse{Payload: p.Payload})
	case protocol.Ping:
		err = s.send(protocol.Pong{Payload: p.Payload})
	case protocol.ChatReceived:
		c.handleChat(p)
	case protocol.PlayerInfo:
		c.handlePlayerInfo(p)
	case protocol.Disconnect:
		c.printf("Disconnected: %s", reasonText(p.Reason))
		c.Logger.Info().Str("reason", p.Reason).Msg("disconnected by server")
		done = true
	case protocol.Unknown:
		// ignored
	default:
		c.Logger.Debug().Str("packet", fmt.Sprintf("%T", p)).Msg("unexpected packet in play state")
	}

	for _, h := range c.handlers {
		h(c, pkt)
	}
	return done, err
}

func (c *Client) handleChat(p protocol.ChatReceived) {
	msg, err := chat.Decode(p.JSON)
	if err != nil {
		c.Logger.Debug().Err(err).Str("json", p.JSON).Msg("undecodable chat message")
		return
	}

	entry := chat.Entry{
		Sender:   p.Sender,
		Position: p.Position,
		Received: time.Now(),
		Message:  msg,
	}
	c.History.Add(entry)
	ev := c.Logger.Debug().Str("text", msg.Text).Uint8("position", p.Position)
	if name, ok := c.Players.Name(p.Sender); ok {
		ev = ev.Str("sender", name)
	}
	ev.Msg("chat received")
	if msg.Text != "" {
		c.print(c.Formatter.Format(msg))
	}
	for _, cb := range c.onChat {
		cb(entry)
	}
}

func (c *Client) handlePlayerInfo(p protocol.PlayerInfo) {
	if p.Skipped {
		c.Logger.Warn().Int32("action", p.Action).Msg("ignoring unknown player info action")
		return
	}

	switch p.Action {
	case protocol.PlayerInfoAdd:
		for _, e := range p.Entries {
			if c.Players.Add(e.UUID, e.Name) {
				c.Logger.Debug().Str("name", e.Name).Stringer("uuid", e.UUID).Int("online", c.Players.Len()).Msg("player added")
			}
		}
	case protocol.PlayerInfoRemove:
		for _, e := range p.Entries {
			if c.Players.Remove(e.UUID) {
				c.Logger.Debug().Stringer("uuid", e.UUID).Int("online", c.Players.Len()).Msg("player removed")
			}
		}
	}
}
