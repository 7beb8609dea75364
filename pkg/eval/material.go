package eval

import "github.com/corvidchess/corvid/pkg/board"

// Material values in centipawns, tapered by game phase. Grounded on
// original_source/src/evaluation/material_scoring.h.
var materialValue = [board.NumPieces]TermScore{
	board.Pawn:   {MG: 82, EG: 94},
	board.Knight: {MG: 337, EG: 281},
	board.Bishop: {MG: 365, EG: 297},
	board.Rook:   {MG: 477, EG: 512},
	board.Queen:  {MG: 1025, EG: 936},
	board.King:   {MG: 0, EG: 0},
}

// material returns the material balance (white minus black) for pos.
func material(pos *board.Position) TermScore {
	var sum TermScore
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		w := pos.PieceBitboard(board.White, p).PopCount()
		b := pos.PieceBitboard(board.Black, p).PopCount()
		sum = sum.Add(TermScore{
			MG: board.Score(w-b) * materialValue[p].MG,
			EG: board.Score(w-b) * materialValue[p].EG,
		})
	}
	return sum
}

// NonPawnMaterial returns the side's material excluding pawns and kings, used
// by search's null-move pruning guard and by ScaleFactor.
func NonPawnMaterial(pos *board.Position, c board.Color) board.Score {
	var s board.Score
	for _, p := range [...]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		s += board.Score(pos.PieceBitboard(c, p).PopCount()) * materialValue[p].MG
	}
	return s
}
