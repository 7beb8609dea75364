package search

import "github.com/corvidchess/corvid/pkg/board"

type pickerStage int

const (
	stageTT pickerStage = iota
	stageGoodCaptures
	stageGoodPromotions
	stageKiller1
	stageKiller2
	stageCounter
	stageQuiets
	stageBadPromotions
	stageBadCaptures
	stageDone
)

// Picker is an explicit finite-state machine over a position's pseudo-legal
// moves, not a priority queue: it visits moves in stages most likely to be
// best first (TT move, then winning captures, ...), nulling consumed slots
// of the underlying MoveList in place rather than re-sorting on every pull.
// Grounded on original_source/src/evaluation/move_picker.h.
type Picker struct {
	pos  *board.Position
	turn board.Color
	ml   *board.MoveList

	ttMove  board.Move
	killer1 board.Move
	killer2 board.Move
	counter board.Move

	history *HistoryTable

	stage pickerStage
}

// NewPicker generates pseudo-legal moves for turn and prepares a staged
// picker over them. ttMove, killer1/2 and counter may be NullMove if absent.
func NewPicker(pos *board.Position, turn board.Color, ttMove, killer1, killer2, counter board.Move, history *HistoryTable) *Picker {
	return &Picker{
		pos:     pos,
		turn:    turn,
		ml:      pos.PseudoLegalMoves(turn),
		ttMove:  ttMove,
		killer1: killer1,
		killer2: killer2,
		counter: counter,
		history: history,
		stage:   stageTT,
	}
}

// Next returns the next move to try, or false once every stage is exhausted.
func (p *Picker) Next() (board.Move, bool) {
	for {
		switch p.stage {
		case stageTT:
			p.stage = stageGoodCaptures
			if p.ttMove != board.NullMove && p.take(p.ttMove) {
				return p.ttMove, true
			}

		case stageGoodCaptures:
			if m, ok := p.best(isCapture, func(m board.Move) int { return SEE(p.pos, m, p.turn) }, 0, true); ok {
				return m, true
			}
			p.stage = stageGoodPromotions

		case stageGoodPromotions:
			if m, ok := p.pull(isQueenPromotion); ok {
				return m, true
			}
			p.stage = stageKiller1

		case stageKiller1:
			p.stage = stageKiller2
			if p.killer1 != board.NullMove && p.take(p.killer1) && isQuiet(p.killer1) {
				return p.killer1, true
			}

		case stageKiller2:
			p.stage = stageCounter
			if p.killer2 != board.NullMove && p.take(p.killer2) && isQuiet(p.killer2) {
				return p.killer2, true
			}

		case stageCounter:
			p.stage = stageQuiets
			if p.counter != board.NullMove && p.take(p.counter) && isQuiet(p.counter) {
				return p.counter, true
			}

		case stageQuiets:
			score := func(m board.Move) int { return int(p.history.Score(p.turn, m)) }
			if m, ok := p.best(isQuiet, score, minInt, false); ok {
				return m, true
			}
			p.stage = stageBadPromotions

		case stageBadPromotions:
			if m, ok := p.pull(isUnderPromotion); ok {
				return m, true
			}
			p.stage = stageBadCaptures

		case stageBadCaptures:
			if m, ok := p.pull(isCapture); ok {
				return m, true
			}
			p.stage = stageDone

		case stageDone:
			return board.NullMove, false
		}
	}
}

const minInt = -1 << 31

// take removes m from the list if present (already returned via an earlier
// stage) and reports whether it was found; used to dequeue the TT move,
// killers and counter-move before their generic stage runs, so they are not
// returned twice.
func (p *Picker) take(m board.Move) bool {
	for i := 0; i < p.ml.Len; i++ {
		if p.ml.Moves[i] == m {
			p.ml.Moves[i] = board.NullMove
			return true
		}
	}
	return false
}

// pull returns and consumes the first remaining move matching pred.
func (p *Picker) pull(pred func(board.Move) bool) (board.Move, bool) {
	for i := 0; i < p.ml.Len; i++ {
		m := p.ml.Moves[i]
		if m == board.NullMove || !pred(m) {
			continue
		}
		p.ml.Moves[i] = board.NullMove
		return m, true
	}
	return board.NullMove, false
}

// best picks, scores and consumes exactly one move matching pred: the
// highest-scoring move if goodOnly requires score >= threshold, or simply
// the highest-scoring remaining move of that predicate otherwise.
func (p *Picker) best(pred func(board.Move) bool, score func(board.Move) int, threshold int, goodOnly bool) (board.Move, bool) {
	bestIdx := -1
	bestScore := minInt
	for i := 0; i < p.ml.Len; i++ {
		m := p.ml.Moves[i]
		if m == board.NullMove || !pred(m) {
			continue
		}
		s := score(m)
		if goodOnly && s < threshold {
			continue
		}
		if bestIdx == -1 || s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	if bestIdx == -1 {
		return board.NullMove, false
	}
	m := p.ml.Moves[bestIdx]
	p.ml.Moves[bestIdx] = board.NullMove
	return m, true
}

func isCapture(m board.Move) bool {
	return m.Flag().IsCapture()
}

func isQuiet(m board.Move) bool {
	return !m.Flag().IsCapture() && !m.Flag().IsPromotion()
}

func isQueenPromotion(m board.Move) bool {
	return m.Flag().IsPromotion() && m.Flag().PromotionPiece() == board.Queen && !m.Flag().IsCapture()
}

func isUnderPromotion(m board.Move) bool {
	return m.Flag().IsPromotion() && m.Flag().PromotionPiece() != board.Queen && !m.Flag().IsCapture()
}
