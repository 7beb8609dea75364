package search

import "github.com/corvidchess/corvid/pkg/board"

const (
	correctionHistSize = 1 << 14
	correctionHistMax  = 32 * 256
)

// CorrectionHistory nudges static evaluation toward the signed difference
// between recent search-proven scores and the static eval that preceded
// them, indexed by pawn structure so the correction generalizes across
// positions sharing a pawn skeleton rather than relearning per position.
// Grounded on original_source/src/evaluation/correction_history.h.
type CorrectionHistory struct {
	table [board.NumColors][correctionHistSize]int32
}

func (c *CorrectionHistory) index(pawnHash board.ZobristHash) uint64 {
	return uint64(pawnHash) & (correctionHistSize - 1)
}

// Correct applies the learned correction to a static evaluation.
func (c *CorrectionHistory) Correct(turn board.Color, pawnHash board.ZobristHash, static board.Score) board.Score {
	corr := c.table[turn][c.index(pawnHash)] / 256
	return static + board.Score(corr)
}

// Update nudges the correction entry toward the gap between a search result
// and the static eval that preceded it, scaled by depth and decayed like the
// quiet history heuristic.
func (c *CorrectionHistory) Update(turn board.Color, pawnHash board.ZobristHash, static, result board.Score, depth int) {
	bonus := int32(result-static) * int32(depth)
	e := &c.table[turn][c.index(pawnHash)]
	*e += bonus - *e*absInt32(bonus)/correctionHistMax
	if *e > correctionHistMax {
		*e = correctionHistMax
	}
	if *e < -correctionHistMax {
		*e = -correctionHistMax
	}
}
