package eval

import "github.com/corvidchess/corvid/pkg/board"

// Mobility bonus per reachable square, tapered. Rooks/queens earn more per
// square in the endgame than in the middlegame, matching the common
// chess-engine convention that majors want open lines late; knights/bishops
// earn the same in both phases.
var mobilityBonus = [board.NumPieces]TermScore{
	board.Knight: {MG: 4, EG: 4},
	board.Bishop: {MG: 3, EG: 3},
	board.Rook:   {MG: 2, EG: 4},
	board.Queen:  {MG: 1, EG: 2},
}

// mobility scores reachable-square counts per side, excluding squares
// defended by enemy pawns ("mobility area") so pieces aren't credited for
// squares they can't safely sit on.
func mobility(pos *board.Position) TermScore {
	var sum TermScore
	for c := board.ZeroColor; c < board.NumColors; c++ {
		opp := c.Opponent()
		unsafe := board.PawnCaptureboard(opp, pos.PieceBitboard(opp, board.Pawn))
		area := ^pos.Occupancy(c) &^ unsafe

		var count int
		for _, p := range [...]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
			pieces := pos.PieceBitboard(c, p)
			for pieces != 0 {
				sq := pieces.LastPopSquare()
				pieces &= pieces - 1

				n := (board.Attackboard(pos.Rotated(), sq, p) & area).PopCount()
				term := TermScore{MG: mobilityBonus[p].MG * board.Score(n), EG: mobilityBonus[p].EG * board.Score(n)}
				if c == board.Black {
					term = term.Neg()
				}
				sum = sum.Add(term)
				count++
			}
		}
	}
	return sum
}
