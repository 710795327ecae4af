package commands

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestQueuePushDrain(t *testing.T) {
	q := NewQueue()
	for _, line := range []string{"  list ", "", "   ", "hello world\n", "quit"} {
		q.Push(line)
	}

	got := q.Drain()
	want := []string{"list", "hello world", "quit"}
	if len(got) != len(want) {
		t.Fatalf("Drain = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Drain[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if again := q.Drain(); len(again) != 0 {
		t.Errorf("second Drain = %q, want empty", again)
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				q.Push("x")
			}
		}()
	}

	total := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-done:
			total += len(q.Drain())
			if total != 800 {
				t.Errorf("drained %d lines, want 800", total)
			}
			return
		default:
			total += len(q.Drain())
		}
	}
}

func TestCapture(t *testing.T) {
	q := NewQueue()
	Capture(context.Background(), strings.NewReader("help\n\n  status  \r\nhi there"), q, zerolog.Nop())

	got := q.Drain()
	want := []string{"help", "status", "hi there"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("captured %q, want %q", got, want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestCaptureStops(t *testing.T) {
	q := NewQueue()
	Capture(context.Background(), failingReader{}, q, zerolog.Nop())
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("queued %q after failed read", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	Capture(ctx, strings.NewReader("a\nb\n"), q, zerolog.Nop())
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("queued %q after cancelled capture", got)
	}
}
