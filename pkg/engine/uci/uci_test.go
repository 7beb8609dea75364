package uci_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/engine/uci"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainUntil(t *testing.T, out <-chan string, want string, timeout time.Duration) []string {
	t.Helper()

	var lines []string
	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				t.Fatalf("output closed before seeing %q; got %v", want, lines)
			}
			lines = append(lines, line)
			if line == want {
				return lines
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q; got %v", want, lines)
		}
	}
}

func TestUCIHandshakeAnnouncesIdentityAndOptions(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	in := make(chan string, 10)
	d, out := uci.NewDriver(context.Background(), e, in)
	defer d.Close()

	in <- "uci"
	lines := drainUntil(t, out, "uciok", time.Second)

	assert.Contains(t, lines, "id name "+e.Name())
	assert.Contains(t, lines, "id author corvidchess")
}

func TestUCIIsReadyRespondsReadyOK(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	in := make(chan string, 10)
	d, out := uci.NewDriver(context.Background(), e, in)
	defer d.Close()

	in <- "uci"
	drainUntil(t, out, "uciok", time.Second)

	in <- "isready"
	drainUntil(t, out, "readyok", time.Second)
}

func TestUCIPositionAndGoProducesBestMove(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	in := make(chan string, 10)
	d, out := uci.NewDriver(context.Background(), e, in)
	defer d.Close()

	in <- "uci"
	drainUntil(t, out, "uciok", time.Second)

	in <- "position startpos"
	in <- "go depth 2"

	var last string
	deadline := time.After(5 * time.Second)
loop:
	for {
		select {
		case line, ok := <-out:
			require.True(t, ok)
			last = line
			if len(last) >= 8 && last[:8] == "bestmove" {
				break loop
			}
		case <-deadline:
			t.Fatal("timed out waiting for bestmove")
		}
	}
	assert.Contains(t, last, "bestmove")
}

func TestUCIQuitClosesDriver(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	in := make(chan string, 10)
	d, out := uci.NewDriver(context.Background(), e, in)

	in <- "uci"
	drainUntil(t, out, "uciok", time.Second)

	in <- "quit"

	select {
	case <-d.Closed():
	case <-time.After(time.Second):
		t.Fatal("driver did not close after quit")
	}
}
