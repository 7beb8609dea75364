// Package search contains move ordering, static exchange evaluation,
// negamax/quiescence search with standard pruning, and the Lazy-SMP
// thread pool driving it.
package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/tt"
)

// ErrHalted is returned by Search when the search was stopped (via the
// shared atomic stop flag or context cancellation) before completing.
var ErrHalted = errors.New("search halted")

// PV represents the principal variation found by a completed iteration.
type PV struct {
	Depth int
	Moves []board.Move
	Score board.Score
	Nodes uint64
	Time  time.Duration
	Hash  int // permille, see tt.Table.HashFull
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Hash/10, printMoves(p.Moves))
}

func printMoves(moves []board.Move) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}

// StopFlag reports whether a search should halt as soon as possible.
// go.uber.org/atomic.Bool satisfies this directly.
type StopFlag interface {
	Load() bool
}

// Shared is the state every searcher in a Lazy-SMP thread pool shares: the
// transposition table, the pawn-structure cache, and the atomic stop
// signal. It carries no per-searcher mutable state (killers/history/board
// are private to each Searcher), so sharing it across goroutines is safe.
type Shared struct {
	TT     *tt.Table
	Pawns  *eval.PawnCache
	Stop   StopFlag
	Ponder []board.Move // not read by Searcher or ThreadPool: the root move list is never restricted

	// NoiseLimit and Seed configure each searcher's own eval.Random (derived
	// per-searcher, not shared directly: math/rand.Rand is not safe for
	// concurrent use, and Random embeds one).
	NoiseLimit int
	Seed       int64
}
