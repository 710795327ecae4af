package client

import "github.com/go-mclib/mclient/pkg/protocol"

// Handler is a lightweight packet callback for one-off matching. It runs on
// the session goroutine after the built-in handling of the packet.
type Handler func(c *Client, pkt protocol.Clientbound)
