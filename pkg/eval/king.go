package eval

import "github.com/corvidchess/corvid/pkg/board"

var (
	shieldBonus     = TermScore{MG: 6, EG: 0}
	openFilePenalty = TermScore{MG: -20, EG: -5}
)

// kingSafety scores the three pawns in front of each king (shield) and
// penalizes open/half-open files in front of the king, a cheap proxy for
// attacker-weight king safety.
func kingSafety(pos *board.Position) TermScore {
	var sum TermScore
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sq := pos.King(c)
		f := sq.File()

		own := pos.PieceBitboard(c, board.Pawn)
		opp := pos.PieceBitboard(c.Opponent(), board.Pawn)

		term := TermScore{}
		for _, file := range shieldFiles(f) {
			if own&fileMask[file] != 0 {
				term = term.Add(shieldBonus)
			}
			if own&fileMask[file] == 0 && opp&fileMask[file] == 0 {
				term = term.Add(openFilePenalty)
			}
		}

		if c == board.Black {
			term = term.Neg()
		}
		sum = sum.Add(term)
	}
	return sum
}

func shieldFiles(f board.File) []board.File {
	switch {
	case f == board.FileA:
		return []board.File{board.FileA, board.FileB}
	case f == board.FileH:
		return []board.File{board.FileG, board.FileH}
	default:
		return []board.File{f - 1, f, f + 1}
	}
}
