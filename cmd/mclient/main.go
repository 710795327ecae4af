package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-mclib/mclient/pkg/commands"
	"github.com/go-mclib/mclient/pkg/helpers"
)

func main() {
	os.Exit(run())
}

func run() int {
	var f helpers.Flags
	helpers.RegisterFlags(&f)
	flag.Parse()

	var extra []io.Writer
	if f.LogFile != "" {
		file, err := helpers.OpenLogFile(f.LogFile)
		if err != nil {
			l := helpers.NewLogger(os.Stderr, f.Verbose)
			l.Error().Err(err).Msg("open log file")
			return 1
		}
		defer file.Close()
		extra = append(extra, file)
	}
	logger := helpers.NewLogger(os.Stderr, f.Verbose, extra...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := helpers.NewClient(f, logger)
	c.LogWriters = extra
	if !f.Interactive {
		go commands.Capture(ctx, os.Stdin, c.Commands, logger.With().Str("component", "console").Logger())
	}

	if err := helpers.Run(ctx, c); err != nil {
		return 1
	}
	return 0
}
