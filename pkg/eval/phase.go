package eval

import "github.com/corvidchess/corvid/pkg/board"

// Per-piece phase weight. Pawns and kings don't count; MaxPhase is reached
// with a full initial set of knights/bishops/rooks/queens on board.
var phaseWeight = [board.NumPieces]int{
	board.Pawn:   0,
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
	board.King:   0,
}

// MaxPhase is the phase value of the full initial material set:
// 4 knights + 4 bishops + 4 rooks + 2 queens = 4+4+8+8 = 24.
const MaxPhase = 4*1 + 4*1 + 4*2 + 2*4

// Phase computes the game-phase counter for the position: MaxPhase at the
// start of the game, trending to zero as major/minor pieces are traded off.
func Phase(pos *board.Position) int {
	phase := 0
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for p := board.ZeroPiece; p < board.NumPieces; p++ {
			phase += phaseWeight[p] * pos.PieceBitboard(c, p).PopCount()
		}
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return phase
}
