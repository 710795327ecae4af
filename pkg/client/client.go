package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-mclib/mclient/pkg/chat"
	"github.com/go-mclib/mclient/pkg/commands"
	"github.com/go-mclib/mclient/pkg/players"
	"github.com/go-mclib/mclient/pkg/protocol"
	"github.com/go-mclib/mclient/pkg/status"
	"github.com/go-mclib/mclient/pkg/tui"
)

// Defaults applied by New.
const (
	DefaultAddress     = "127.0.0.1:25565"
	DefaultUsername    = "GoMclibPlayer"
	DefaultPort        = 25565
	DefaultDialTimeout = 10 * time.Second
)

// ErrDisconnected is returned when the server ends the login with a reason.
var ErrDisconnected = errors.New("disconnected by server")

// DialFunc opens the transport to the server.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

type Client struct {
	// connection
	Address     string
	Username    string
	DialTimeout time.Duration
	// ReadTimeout bounds every frame read; 0 disables it.
	ReadTimeout time.Duration
	Dial        DialFunc

	// status
	SkipStatus bool
	StatusDir  string

	// reconnection
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration

	// TUI
	Interactive bool
	MaxLogLines int

	Logger zerolog.Logger
	// LogWriters are extra log sinks, such as a log file, kept when the
	// interactive UI takes over the console output.
	LogWriters []io.Writer
	// Out receives chat lines, tables and help text.
	Out       io.Writer
	Formatter *chat.Formatter

	Players  *players.Registry
	Commands *commands.Queue
	History  *chat.History

	// cached by QueryStatus
	Status *status.Response

	// populated after login
	PlayerUUID uuid.UUID

	handlers []Handler
	onChat   []func(chat.Entry)
	onLogin  []func()

	mu      sync.Mutex
	sess    *session
	stopped bool

	tuiProgram *tea.Program
}

// New creates a client with default settings. Adjust the exported fields
// before calling ConnectAndStart.
func New(address, username string) *Client {
	if address == "" {
		address = DefaultAddress
	}
	return &Client{
		Address:        address,
		Username:       username,
		DialTimeout:    DefaultDialTimeout,
		ReconnectDelay: 3 * time.Second,
		MaxLogLines:    1000,
		Logger:         zerolog.New(os.Stderr).With().Timestamp().Str("component", "client").Logger(),
		Out:            os.Stdout,
		Formatter:      chat.NewFormatter(os.Stdout),
		Players:        players.NewRegistry(),
		Commands:       commands.NewQueue(),
		History:        chat.NewHistory(chat.MaxHistory),
	}
}

// RegisterHandler appends a callback invoked for every decoded Play packet.
func (c *Client) RegisterHandler(h Handler) {
	c.handlers = append(c.handlers, h)
}

// OnChat registers a callback for every received chat message.
func (c *Client) OnChat(cb func(chat.Entry)) {
	c.onChat = append(c.onChat, cb)
}

// OnLogin registers a callback run once the connection reaches Play.
func (c *Client) OnLogin(cb func()) {
	c.onLogin = append(c.onLogin, cb)
}

// Submit queues a line of user input. Satisfies tui.ClientInterface.
func (c *Client) Submit(line string) bool { return c.Commands.Push(line) }

// GetUsername returns the client's username (satisfies tui.ClientInterface).
func (c *Client) GetUsername() string { return c.Username }

// GetAddress returns the server address (satisfies tui.ClientInterface).
func (c *Client) GetAddress() string { return c.Address }

// GetMaxLogLines returns the maximum log lines setting (satisfies tui.ClientInterface).
func (c *Client) GetMaxLogLines() int { return c.MaxLogLines }

// Disconnect closes the active connection. If force is true, the session
// ends cleanly and no reconnect is attempted.
func (c *Client) Disconnect(force bool) error {
	c.mu.Lock()
	if force {
		c.stopped = true
	}
	s := c.sess
	c.mu.Unlock()

	if s == nil {
		return nil
	}
	return s.close()
}

func (c *Client) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *Client) setSession(s *session) {
	c.mu.Lock()
	c.sess = s
	c.mu.Unlock()
}

// ConnectAndStart queries the server status, logs in and runs the play loop
// until the server disconnects, the user quits or ctx is cancelled.
func (c *Client) ConnectAndStart(ctx context.Context) error {
	if c.Interactive {
		tuiProgram, writer := tui.Start(c)
		c.tuiProgram = tuiProgram
		c.Logger = c.interactiveLogger(writer)
		c.Out = writer
		c.Formatter = chat.NewFormatter(writer)
		c.OnLogin(func() { tui.EnableInput(c.tuiProgram) })

		defer func() {
			if c.tuiProgram != nil {
				c.tuiProgram.Quit()
				c.tuiProgram = nil
			}
		}()

		tuiDone := make(chan error, 1)
		go func() {
			_, err := tuiProgram.Run()
			tuiDone <- err
		}()

		clientDone := make(chan error, 1)
		go func() {
			clientDone <- c.run(ctx)
		}()

		select {
		case err := <-tuiDone:
			if err != nil {
				return err
			}
			c.Disconnect(true)
			return <-clientDone
		case err := <-clientDone:
			return err
		}
	}

	return c.run(ctx)
}

// interactiveLogger sends console logs to the TUI and keeps LogWriters.
func (c *Client) interactiveLogger(w io.Writer) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	if len(c.LogWriters) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{out}, c.LogWriters...)...)
	}
	return c.Logger.Output(out)
}

func (c *Client) run(ctx context.Context) error {
	if !c.SkipStatus {
		if _, err := c.QueryStatus(ctx); err != nil {
			if ctx.Err() != nil || c.isStopped() {
				return nil
			}
			if !statusRecoverable(err) {
				return err
			}
			c.Logger.Warn().Err(err).Msg("status query failed")
		}
	}
	return c.runConnectionLoop(ctx)
}

// statusRecoverable reports whether login may go ahead after a failed status
// query: the status server was unreachable or its JSON did not decode.
func statusRecoverable(err error) bool {
	var ce *protocol.ConnectionError
	if errors.As(err, &ce) && ce.Op == "dial" {
		return true
	}
	return errors.Is(err, protocol.ErrDecode)
}

// retryable reports whether err came from the transport rather than from the
// protocol exchange itself.
func retryable(err error) bool {
	var ce *protocol.ConnectionError
	return errors.As(err, &ce)
}

func (c *Client) runConnectionLoop(ctx context.Context) error {
	attempts := 0
	maxAttempts := c.MaxReconnectAttempts

	for {
		err := c.connectAndStartOnce(ctx)
		if err == nil || ctx.Err() != nil || c.isStopped() {
			return nil
		}

		c.Logger.Error().Err(err).Msg("connection error")

		if !retryable(err) || maxAttempts == 0 {
			return err
		}

		attempts++
		if maxAttempts > 0 && attempts > maxAttempts {
			c.Logger.Error().Int("max", maxAttempts).Msg("max reconnect attempts reached, giving up")
			return err
		}
		c.Logger.Info().
			Int("attempt", attempts).
			Int("max", maxAttempts).
			Dur("delay", c.ReconnectDelay).
			Msg("reconnecting")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.ReconnectDelay):
		}
	}
}

func (c *Client) connectAndStartOnce(ctx context.Context) error {
	c.Players.Reset()

	s, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer c.closeSession(s)

	if err := c.login(s); err != nil {
		return err
	}
	for _, cb := range c.onLogin {
		cb()
	}
	return c.play(s)
}

func (c *Client) closeSession(s *session) {
	c.setSession(nil)
	if err := s.close(); err != nil && !errors.Is(err, net.ErrClosed) {
		c.Logger.Debug().Err(err).Msg("close connection")
	}
}

func (c *Client) print(a ...any) {
	fmt.Fprintln(c.Out, a...)
}

func (c *Client) printf(format string, a ...any) {
	fmt.Fprintf(c.Out, format+"\n", a...)
}
