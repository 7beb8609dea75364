package search

import (
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// historyMax caps the history heuristic score to prevent overflow and to
// keep a single quiet beta cutoff from dominating move ordering forever.
const historyMax = 1 << 14

// HistoryTable scores quiet moves by how often they have caused a beta
// cutoff at a given [color][from][to], decaying competing entries on every
// update (the "history gravity" technique) so stale bonuses fade out.
// Grounded on original_source/src/evaluation/history_moves.h.
type HistoryTable struct {
	score [board.NumColors][board.NumSquares][board.NumSquares]int32
}

func (h *HistoryTable) Score(c board.Color, m board.Move) int32 {
	return h.score[c][m.From()][m.To()]
}

// Update rewards m and proportionally penalizes the other quiets tried at
// this node and rejected, scaled by depth.
func (h *HistoryTable) Update(c board.Color, m board.Move, others []board.Move, depth int) {
	bonus := int32(depth * depth)
	h.add(c, m, bonus)
	for _, o := range others {
		h.add(c, o, -bonus)
	}
}

func (h *HistoryTable) add(c board.Color, m board.Move, bonus int32) {
	e := &h.score[c][m.From()][m.To()]
	*e += bonus - *e*absInt32(bonus)/historyMax
	if *e > historyMax {
		*e = historyMax
	}
	if *e < -historyMax {
		*e = -historyMax
	}
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// KillerTable stores up to two quiet moves per ply that have caused a beta
// cutoff, tried early at sibling nodes of the same ply on the assumption
// that a refutation in one branch often refutes a sibling too.
type KillerTable struct {
	moves [eval.MaxPly][2]board.Move
}

func (k *KillerTable) Update(ply int, m board.Move) {
	if ply >= len(k.moves) {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *KillerTable) Get(ply int) (board.Move, board.Move) {
	if ply >= len(k.moves) {
		return board.NullMove, board.NullMove
	}
	return k.moves[ply][0], k.moves[ply][1]
}

// CounterTable stores, for each opponent move just played, the quiet reply
// that most recently caused a beta cutoff in response to it.
type CounterTable struct {
	move [board.NumColors][board.NumSquares][board.NumSquares]board.Move
}

func (c *CounterTable) Update(side board.Color, last board.Move, reply board.Move) {
	if last.IsNull() {
		return
	}
	c.move[side][last.From()][last.To()] = reply
}

func (c *CounterTable) Get(side board.Color, last board.Move) board.Move {
	if last.IsNull() {
		return board.NullMove
	}
	return c.move[side][last.From()][last.To()]
}
