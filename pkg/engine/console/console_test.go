package console_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/engine/console"
)

func drainFor(out <-chan string, d time.Duration) []string {
	var lines []string
	deadline := time.After(d)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				return lines
			}
			lines = append(lines, line)
		case <-deadline:
			return lines
		}
	}
}

func containsSubstring(lines []string, sub string) bool {
	for _, l := range lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestConsolePrintsBoardOnStartup(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	in := make(chan string, 10)
	d, out := console.NewDriver(context.Background(), e, in)
	defer d.Close()

	lines := drainFor(out, 200*time.Millisecond)
	if !containsSubstring(lines, "fen:") {
		t.Fatalf("expected board printout with fen line, got %v", lines)
	}
}

func TestConsolePerftReportsNodeCount(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	in := make(chan string, 10)
	d, out := console.NewDriver(context.Background(), e, in)
	defer d.Close()

	drainFor(out, 100*time.Millisecond)
	in <- "perft 1"

	lines := drainFor(out, time.Second)
	if !containsSubstring(lines, "perft(1)") {
		t.Fatalf("expected perft(1) output, got %v", lines)
	}
	// from the initial position there are 20 legal moves at depth 1.
	if !containsSubstring(lines, "20 nodes") {
		t.Fatalf("expected 20 nodes from the initial position, got %v", lines)
	}
}

func TestConsoleMoveAdvancesBoard(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	in := make(chan string, 10)
	d, out := console.NewDriver(context.Background(), e, in)
	defer d.Close()

	drainFor(out, 100*time.Millisecond)
	in <- "e2e4"

	lines := drainFor(out, time.Second)
	if containsSubstring(lines, "invalid move") {
		t.Fatalf("expected e2e4 to be accepted, got %v", lines)
	}
}

func TestConsoleRejectsIllegalMove(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	in := make(chan string, 10)
	d, out := console.NewDriver(context.Background(), e, in)
	defer d.Close()

	drainFor(out, 100*time.Millisecond)
	in <- "e2e5"

	lines := drainFor(out, time.Second)
	if !containsSubstring(lines, "invalid move") {
		t.Fatalf("expected invalid move message, got %v", lines)
	}
}
