package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// deltaMargin is the headroom added to a capture's material gain before
// concluding it cannot possibly raise alpha and skipping it outright.
const deltaMargin = board.Score(200)

// quiescence resolves tactical noise at the horizon: out of check, only
// captures (SEE >= 0, delta-pruned) are tried, with the static evaluation as
// a stand-pat floor; in check, every evasion is tried and there is no stand
// pat, since the side to move may have no way to avoid losing material or
// worse. Grounded on original_source/src/evaluation/searcher.h and the
// teacher's pkg/search/quiescence.go control flow.
func (s *Searcher) quiescence(ctx context.Context, ply int, alpha, beta board.Score) (board.Score, error) {
	if s.timeUp(ctx) {
		return 0, ErrHalted
	}
	if s.b.Result().Outcome == board.Draw {
		return drawScore(s.nodes), nil
	}

	s.nodes++
	if ply > s.seldepth {
		s.seldepth = ply
	}
	if ply >= maxPly-1 {
		return eval.Evaluate(s.b.Position(), s.b.Turn(), s.shared.Pawns), nil
	}

	turn := s.b.Turn()
	pos := s.b.Position()
	inCheck := pos.IsChecked(turn)

	best := eval.MatedByPly(ply)
	if !inCheck {
		best = eval.Evaluate(pos, turn, s.shared.Pawns) + s.noise.Noise()
		if best >= beta {
			return best, nil
		}
		if best > alpha {
			alpha = best
		}
	}

	picker := NewPicker(pos, turn, board.NullMove, board.NullMove, board.NullMove, board.NullMove, s.history)
	any := false
	for {
		m, ok := picker.Next()
		if !ok {
			break
		}

		if !inCheck {
			if !m.Flag().IsCapture() {
				continue // out of check, only chase captures
			}
			if SEE(pos, m, turn) < 0 {
				continue // losing captures never raise a fail-soft stand pat
			}
			if best+board.Score(capturedValue(pos, m))+deltaMargin < alpha {
				continue // delta pruning: even winning the piece can't reach alpha
			}
		}

		if !s.b.PushMove(m) {
			continue
		}
		any = true

		score, err := s.quiescence(ctx, ply+1, -beta, -alpha)
		s.b.PopMove()
		if err != nil {
			return 0, err
		}
		score = -score

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				if alpha >= beta {
					break
				}
			}
		}
	}

	if inCheck && !any {
		return eval.MatedByPly(ply), nil
	}
	return best, nil
}
