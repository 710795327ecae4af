// Package commands carries user input lines from a reader goroutine to the
// session goroutine.
package commands

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Queue is an ordered list of pending input lines. Push and Drain may be
// called from different goroutines.
type Queue struct {
	mu    sync.Mutex
	lines []string
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends line after trimming surrounding whitespace. Empty lines are
// dropped. It reports whether the line was queued.
func (q *Queue) Push(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	q.mu.Lock()
	q.lines = append(q.lines, line)
	q.mu.Unlock()
	return true
}

// Drain removes and returns every queued line in push order.
func (q *Queue) Drain() []string {
	q.mu.Lock()
	lines := q.lines
	q.lines = nil
	q.mu.Unlock()
	return lines
}

// Capture reads r line by line into q until EOF, a read error or ctx is done.
// It never touches the network connection.
func Capture(ctx context.Context, r io.Reader, q *Queue, log zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		q.Push(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("error reading from console")
		return
	}
	log.Debug().Msg("console input closed")
}
