package client

import (
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/go-mclib/mclient/pkg/chat"
	"github.com/go-mclib/mclient/pkg/protocol"
	"github.com/go-mclib/mclient/pkg/status"
)

// Local commands. Any other input line is sent as chat.
const (
	CommandList    = "list"
	CommandHelp    = "help"
	CommandStatus  = "status"
	CommandHistory = "history"
	CommandQuit    = "quit"
)

// historyLines is how many received messages the history command shows.
const historyLines = 20

// runCommands executes every queued line in order. It reports quit when the
// user asked to leave; lines queued after quit are discarded.
func (c *Client) runCommands(s *session) (quit bool, err error) {
	for _, line := range c.Commands.Drain() {
		switch line {
		case CommandList:
			c.printPlayers()
		case CommandHelp:
			c.printHelp()
		case CommandStatus:
			c.printStatus()
		case CommandHistory:
			c.printHistory()
		case CommandQuit:
			c.print("Ok, quitting")
			return true, nil
		default:
			if err := c.sendChat(s, line); err != nil {
				return false, err
			}
		}
	}
	return false, nil
}

func (c *Client) sendChat(s *session, msg string) error {
	if len(msg) > protocol.MaxChatLength {
		c.Logger.Warn().Int("len", len(msg)).Int("max", protocol.MaxChatLength).Msg("chat message too long, not sent")
		return nil
	}
	return s.send(protocol.ChatMessage{Message: msg})
}

func (c *Client) printPlayers() {
	list := c.Players.Sorted()
	c.printf("Online players (%d):", len(list))
	if len(list) == 0 {
		return
	}

	table := tablewriter.NewWriter(c.Out)
	table.SetHeader([]string{"Name", "UUID"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, p := range list {
		table.Append([]string{p.Name, p.UUID.String()})
	}
	table.Render()
}

func (c *Client) printHelp() {
	c.print("Commands:")
	c.print("list: shows the online players")
	c.print("status: prints the server status and downloads the server icon")
	c.print("history: shows the latest received chat messages")
	c.print("help: shows the commands")
	c.print("quit: disconnects from the server")
	c.print("any other commands: sends a chat message to the server with the string")
}

func (c *Client) printHistory() {
	recent := c.History.Recent(historyLines)
	c.printf("Recent messages (%d):", len(recent))
	for _, e := range recent {
		c.printf("[%s] %s", e.Received.Format(time.TimeOnly), c.Formatter.Format(e.Message))
	}
}

func (c *Client) printStatus() {
	if c.Status == nil {
		c.print("No server status available")
		return
	}
	c.printf("Server status: %s", c.Status.Summary())

	saved, err := status.NewFileStore(c.StatusDir).Save(c.Status)
	if err != nil {
		c.Logger.Error().Err(err).Msg("failed to save server status")
		return
	}
	c.Logger.Debug().Str("dir", c.StatusDir).Msg("status response saved")
	if saved {
		c.print(c.Formatter.Format(chat.Message{
			Text:  "Server icon saved!",
			Style: chat.Style{Color: "light_purple"},
		}))
	}
}
