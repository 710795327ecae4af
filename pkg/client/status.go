package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-mclib/mclient/pkg/protocol"
	"github.com/go-mclib/mclient/pkg/status"
)

// QueryStatus opens a separate Status session, fetches the server list JSON
// and verifies a ping round trip. The response is cached in c.Status, raw
// bytes included, even when the JSON does not decode into a Response.
func (c *Client) QueryStatus(ctx context.Context) (*status.Response, error) {
	s, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer c.closeSession(s)

	if err := s.handshake(protocol.IntentStatus); err != nil {
		return nil, err
	}
	if err := s.send(protocol.StatusRequest{}); err != nil {
		return nil, err
	}

	var raw string
	for found := false; !found; {
		_, pkt, err := s.next()
		if err != nil {
			return nil, err
		}
		if r, ok := pkt.(protocol.StatusResponse); ok {
			raw, found = r.JSON, true
		}
	}

	resp, err := status.Parse(raw)
	c.Status = resp
	if err != nil {
		c.Logger.Warn().Err(err).Msg("status response kept raw")
	} else {
		c.Logger.Info().
			Str("version", resp.Version.Name).
			Int("online", resp.Players.Online).
			Int("max", resp.Players.Max).
			Msg("server status received")
	}
	c.Logger.Debug().Str("json", raw).Msg("status response")

	if err := c.ping(s); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) ping(s *session) error {
	start := time.Now()
	payload := start.UnixMilli()
	if err := s.send(protocol.PingRequest{Payload: payload}); err != nil {
		return err
	}

	for {
		_, pkt, err := s.next()
		if err != nil {
			return err
		}
		pong, ok := pkt.(protocol.PongResponse)
		if !ok {
			continue
		}
		if pong.Payload != payload {
			return fmt.Errorf("%w: pong payload %d, sent %d", protocol.ErrProtocolMismatch, pong.Payload, payload)
		}
		c.Logger.Debug().Dur("latency", time.Since(start)).Msg("ping")
		return nil
	}
}
