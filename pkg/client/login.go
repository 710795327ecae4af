package client

import (
	"fmt"

	"github.com/go-mclib/mclient/pkg/chat"
	"github.com/go-mclib/mclient/pkg/protocol"
)

// resolveUsername applies the offline-mode default and checks the length limit.
func (c *Client) resolveUsername() (string, error) {
	if c.Username == "" {
		c.Username = DefaultUsername
		c.Logger.Warn().Str("username", DefaultUsername).Msg("no username provided, using default")
	}
	if len(c.Username) > protocol.MaxUsernameLength {
		return "", fmt.Errorf("username %q is longer than %d bytes", c.Username, protocol.MaxUsernameLength)
	}
	return c.Username, nil
}

// login drives s from Handshake through Login into Play.
func (c *Client) login(s *session) error {
	name, err := c.resolveUsername()
	if err != nil {
		return err
	}
	if err := s.handshake(protocol.IntentLogin); err != nil {
		return err
	}
	if err := s.send(protocol.LoginStart{Name: name}); err != nil {
		return err
	}

	for {
		_, pkt, err := s.next()
		if err != nil {
			return err
		}

		switch p := pkt.(type) {
		case protocol.LoginSuccess:
			c.PlayerUUID = p.UUID
			s.state = protocol.StatePlay
			c.Logger.Info().Str("username", p.Username).Stringer("uuid", p.UUID).Msg("login successful")
			return nil
		case protocol.LoginDisconnect:
			return fmt.Errorf("%w during login: %s", ErrDisconnected, reasonText(p.Reason))
		case protocol.EncryptionRequest:
			return fmt.Errorf("%w: server requested encryption (online mode)", protocol.ErrUnsupported)
		case protocol.SetCompression:
			return fmt.Errorf("%w: server enabled compression (threshold %d)", protocol.ErrUnsupported, p.Threshold)
		case protocol.LoginPluginRequest:
			c.Logger.Debug().Str("channel", p.Channel).Int32("id", p.MessageID).Msg("declining login plugin request")
			if err := s.send(protocol.LoginPluginResponse{MessageID: p.MessageID}); err != nil {
				return err
			}
		case protocol.Unknown:
			c.Logger.Debug().Int32("id", p.ID).Msg("ignoring login packet")
		}
	}
}

// reasonText renders a disconnect reason, falling back to the raw JSON.
func reasonText(raw string) string {
	msg, err := chat.Decode(raw)
	if err != nil || msg.Text == "" {
		return raw
	}
	return msg.Text
}
