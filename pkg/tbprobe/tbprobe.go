// Package tbprobe defines the engine's interface to an endgame tablebase
// oracle (e.g. Syzygy), kept thin so the engine is fully runnable without
// one configured.
package tbprobe

import "github.com/corvidchess/corvid/pkg/board"

// WDL is a win/draw/loss verdict from a tablebase, from the perspective of
// the side to move.
type WDL int8

const (
	Loss WDL = iota - 2
	BlessedLoss
	Draw
	CursedWin
	Win
)

// Oracle probes an endgame tablebase for exact results once the position is
// simple enough to be covered (typically <= 7 men).
type Oracle interface {
	// ProbeWDL returns the win/draw/loss verdict for pos, if tabulated.
	ProbeWDL(pos *board.Position, turn board.Color) (WDL, bool)
	// ProbeDTZ returns the distance-to-zeroing-move count for pos, if
	// tabulated: the number of plies until a capture or pawn move that
	// resets the fifty-move counter while preserving the WDL verdict.
	ProbeDTZ(pos *board.Position, turn board.Color) (int, bool)
	// RankRootMoves filters and orders moves at the search root by their
	// tablebase WDL/DTZ, for root-move restriction once inside tablebase
	// range; returns false if the root position itself is not tabulated.
	RankRootMoves(pos *board.Position, turn board.Color, moves []board.Move) ([]board.Move, bool)
}

// NopOracle reports no tablebase available for every probe.
type NopOracle struct{}

func (NopOracle) ProbeWDL(*board.Position, board.Color) (WDL, bool) { return Draw, false }
func (NopOracle) ProbeDTZ(*board.Position, board.Color) (int, bool) { return 0, false }

func (NopOracle) RankRootMoves(_ *board.Position, _ board.Color, moves []board.Move) ([]board.Move, bool) {
	return moves, false
}
