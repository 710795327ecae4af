package helpers

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/go-mclib/mclient/pkg/client"
)

// Flags holds the CLI flags of the client.
type Flags struct {
	Address              string
	Username             string
	Verbose              bool
	Interactive          bool
	StatusDir            string
	ReadTimeout          time.Duration
	MaxReconnectAttempts int
	SkipStatus           bool
	LogFile              string
}

// RegisterFlags registers the standard CLI flags on the default flag set.
func RegisterFlags(f *Flags) {
	RegisterFlagSet(flag.CommandLine, f)
}

// RegisterFlagSet registers the standard CLI flags on fs.
func RegisterFlagSet(fs *flag.FlagSet, f *Flags) {
	fs.StringVar(&f.Address, "s", client.DefaultAddress, "server address (host:port)")
	fs.StringVar(&f.Username, "u", client.DefaultUsername, "offline username (max 16 bytes)")
	fs.BoolVar(&f.Verbose, "v", false, "verbose logging")
	fs.BoolVar(&f.Interactive, "i", false, "enable interactive mode with chat input")
	fs.StringVar(&f.StatusDir, "status-dir", ".", "directory for status_response.json and server-icon.png")
	fs.DurationVar(&f.ReadTimeout, "read-timeout", 0, "fail if the server sends nothing for this long (0 = wait forever)")
	fs.IntVar(&f.MaxReconnectAttempts, "reconnects", 0, "max reconnect attempts after connection errors (-1 = infinite, 0 = none)")
	fs.BoolVar(&f.SkipStatus, "skip-status", false, "do not query the server status before logging in")
	fs.StringVar(&f.LogFile, "log-file", "", "also write JSON logs to this file")
}

// NewLogger returns a console logger writing to w, plus a JSON copy to each
// of extra. Debug level is enabled by verbose.
func NewLogger(w io.Writer, verbose bool, extra ...io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}
	var out io.Writer = console
	if len(extra) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{console}, extra...)...)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// OpenLogFile opens path for appending JSON log lines.
func OpenLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// NewClient creates a client from parsed flags.
func NewClient(f Flags, logger zerolog.Logger) *client.Client {
	c := client.New(f.Address, f.Username)
	c.Interactive = f.Interactive
	c.StatusDir = f.StatusDir
	c.ReadTimeout = f.ReadTimeout
	c.MaxReconnectAttempts = f.MaxReconnectAttempts
	c.SkipStatus = f.SkipStatus
	c.Logger = logger.With().Str("component", "client").Logger()
	return c
}

// Run connects and starts the client, logging the error that ended it.
func Run(ctx context.Context, c *client.Client) error {
	err := c.ConnectAndStart(ctx)
	if err != nil {
		c.Logger.Error().Err(err).Msg("client stopped")
	}
	return err
}
