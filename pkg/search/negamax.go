package search

import (
	"context"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/tt"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// checkEvery is the node interval at which the hard time limit and stop
// signal are polled; the time manager never interrupts mid-node via a
// timer. See pkg/search/searchctl.
const checkEvery = 2048

const maxPly = eval.MaxPly

// Searcher runs one Lazy-SMP worker's view of a search against its own
// forked Board and private move-ordering tables, reading and writing the
// Shared transposition table, pawn cache and stop flag.
type Searcher struct {
	id     int
	shared *Shared
	b      *board.Board

	killers    *KillerTable
	history    *HistoryTable
	counters   *CounterTable
	correction *CorrectionHistory
	noise      eval.Random

	evalStack [maxPly]board.Score

	nodes    uint64
	seldepth int
	timedOut bool
}

// NewSearcher forks b for this searcher's exclusive use. Each searcher gets
// its own eval.Random, seeded off shared.Seed and id, since math/rand.Rand
// is not safe for concurrent use and Shared must stay safe to read from
// every goroutine in the pool.
func NewSearcher(id int, shared *Shared, b *board.Board) *Searcher {
	return &Searcher{
		id:         id,
		shared:     shared,
		b:          b.Fork(),
		killers:    &KillerTable{},
		history:    &HistoryTable{},
		counters:   &CounterTable{},
		correction: &CorrectionHistory{},
		noise:      eval.NewRandom(shared.NoiseLimit, shared.Seed+int64(id)+1),
	}
}

func (s *Searcher) Board() *board.Board { return s.b }
func (s *Searcher) Nodes() uint64       { return s.nodes }
func (s *Searcher) SelDepth() int       { return s.seldepth }

// drawScore jitters the nominal draw value by a couple centipawns, keyed off
// the node count, so repeated draws along different lines don't all look
// identically scored and destabilize move ordering near the root.
func drawScore(nodes uint64) board.Score {
	return board.Score(nodes&0x3) - 1
}

func maxScore(a, b board.Score) board.Score {
	if a > b {
		return a
	}
	return b
}

func minScore(a, b board.Score) board.Score {
	if a < b {
		return a
	}
	return b
}

// timeUp polls the shared stop flag and the context every checkEvery nodes,
// caching a positive result so subsequent calls this iteration are free.
func (s *Searcher) timeUp(ctx context.Context) bool {
	if s.timedOut {
		return true
	}
	if s.nodes%checkEvery != 0 {
		return false
	}
	if s.shared.Stop != nil && s.shared.Stop.Load() {
		s.timedOut = true
	} else if contextx.IsCancelled(ctx) {
		s.timedOut = true
	}
	return s.timedOut
}

// Search runs one iterative-deepening iteration at depth, widening an
// aspiration window around prevScore until the result falls strictly inside
// it. Shallow iterations (depth<=4) and the very first search at a given
// root always use the full width, since a tight window around an unreliable
// guess would just thrash.
func (s *Searcher) Search(ctx context.Context, depth int, prevScore board.Score) (PV, error) {
	start := time.Now()
	s.timedOut = false
	s.seldepth = 0

	alpha, beta := -eval.Infinite, eval.Infinite
	window := board.Score(25)
	if depth > 4 && !eval.IsMate(prevScore) {
		alpha = maxScore(prevScore-window, -eval.Infinite)
		beta = minScore(prevScore+window, eval.Infinite)
	}

	var pvBuf [maxPly]board.Move
	for {
		pvLen := 0
		score, err := s.negamax(ctx, depth, 0, alpha, beta, pvBuf[:], &pvLen)
		if err != nil {
			return PV{}, err
		}

		if score <= alpha && alpha > -eval.Infinite {
			window *= 2
			alpha = maxScore(alpha-window, -eval.Infinite)
			continue
		}
		if score >= beta && beta < eval.Infinite {
			window *= 2
			beta = minScore(beta+window, eval.Infinite)
			continue
		}

		return PV{
			Depth: depth,
			Moves: append([]board.Move(nil), pvBuf[:pvLen]...),
			Score: score,
			Nodes: s.nodes,
			Time:  time.Since(start),
			Hash:  s.shared.TT.HashFull(),
		}, nil
	}
}

// negamax searches depth plies (after any extension), returning a score
// from the perspective of the side to move at ply and filling pv/pvLen with
// the principal variation below this node.
func (s *Searcher) negamax(ctx context.Context, depth, ply int, alpha, beta board.Score, pv []board.Move, pvLen *int) (board.Score, error) {
	*pvLen = 0
	pvNode := beta-alpha > 1
	root := ply == 0

	if !root {
		if s.b.Result().Outcome == board.Draw {
			return drawScore(s.nodes), nil
		}
		alpha = maxScore(alpha, eval.MatedByPly(ply))
		beta = minScore(beta, eval.MateByPly(ply+1))
		if alpha >= beta {
			return alpha, nil
		}
	}

	if s.timeUp(ctx) {
		return 0, ErrHalted
	}

	turn := s.b.Turn()
	pos := s.b.Position()
	inCheck := pos.IsChecked(turn)

	if inCheck {
		depth++ // check extension: never let a king hunt fall into qsearch
	}
	if depth <= 0 {
		return s.quiescence(ctx, ply, alpha, beta)
	}

	s.nodes++
	if ply > s.seldepth {
		s.seldepth = ply
	}
	if ply >= maxPly-1 {
		return eval.Evaluate(pos, turn, s.shared.Pawns), nil
	}

	hash := s.b.Hash()
	ttMove := board.NullMove
	if e, ok := s.shared.TT.Probe(hash, ply); ok {
		ttMove = e.Move
		if e.Depth >= depth && !pvNode {
			switch {
			case e.Bound == tt.ExactBound:
				return e.Score, nil
			case e.Bound == tt.LowerBound && e.Score >= beta:
				return e.Score, nil
			case e.Bound == tt.UpperBound && e.Score <= alpha:
				return e.Score, nil
			}
		}
	} else if depth >= 4 && !root {
		depth-- // internal iterative reduction: no TT move to trust here
	}

	static := eval.Evaluate(pos, turn, s.shared.Pawns)
	static = s.correction.Correct(turn, eval.PawnHash(pos), static)
	s.evalStack[ply] = static
	improving := !inCheck && ply >= 2 && static > s.evalStack[ply-2]

	if !pvNode && !inCheck {
		// Razoring: a static eval far below alpha at shallow depth is
		// unlikely to recover; confirm with a quiescence search before
		// committing to a full-width search that probably won't help either.
		if depth <= 3 {
			margin := board.Score(200 * depth)
			if static+margin <= alpha {
				score, err := s.quiescence(ctx, ply, alpha, beta)
				if err != nil {
					return 0, err
				}
				if score <= alpha {
					return score, nil
				}
			}
		}

		// Reverse futility pruning: a static eval far above beta at shallow
		// depth is unlikely to be refuted by anything the opponent can do.
		if depth <= 8 {
			margin := board.Score(85*depth) - board.Score(boolToInt(improving)*50)
			if static-margin >= beta && !eval.IsMate(beta) {
				return static, nil
			}
		}

		// Null-move pruning: passing and still failing high means the
		// position is so good a real move will too, skip checking which.
		// Guarded against zugzwang by requiring non-pawn material.
		if depth >= 3 && static >= beta && eval.NonPawnMaterial(pos, turn) > 0 {
			r := 3 + depth/6
			nd := depth - 1 - r
			if nd < 0 {
				nd = 0
			}

			s.b.PushNullMove()
			var nullPV [maxPly]board.Move
			nullLen := 0
			score, err := s.negamax(ctx, nd, ply+1, -beta, -beta+1, nullPV[:], &nullLen)
			s.b.PopNullMove()
			if err != nil {
				return 0, err
			}
			score = -score

			if score >= beta && !eval.IsMate(score) {
				return score, nil
			}
		}
	}

	killer1, killer2 := s.killers.Get(ply)
	last, _ := s.b.LastMove()
	counter := s.counters.Get(turn, last)

	picker := NewPicker(pos, turn, ttMove, killer1, killer2, counter, s.history)

	best := -eval.Infinite
	bestMove := board.NullMove
	bound := tt.UpperBound
	legal := 0
	var quiets []board.Move
	var childPV [maxPly]board.Move

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		quiet := !m.Flag().IsCapture() && !m.Flag().IsPromotion()

		// Late move pruning: at shallow depth, once many quiets have been
		// tried without a cutoff, stop bothering with the long tail.
		if !root && !pvNode && !inCheck && quiet && depth <= 6 && legal >= 4+depth*depth {
			continue
		}

		if !s.b.PushMove(m) {
			continue
		}
		legal++

		givesCheck := s.b.Position().IsChecked(s.b.Turn())
		childPVLen := 0

		var score board.Score
		var err error

		switch {
		case legal == 1:
			score, err = s.negamax(ctx, depth-1, ply+1, -beta, -alpha, childPV[:], &childPVLen)
			score = -score

		default:
			// Late move reduction: search later, quiet, non-critical moves
			// to a shallower depth first, re-searching at full depth only if
			// they beat alpha.
			reduction := 0
			if quiet && depth >= 3 && legal > 3 && !inCheck && !givesCheck {
				reduction = lmrTable(depth, legal)
				if !improving {
					reduction++
				}
				if pvNode {
					reduction--
				}
				if reduction < 0 {
					reduction = 0
				}
				if depth-1-reduction < 1 {
					reduction = depth - 2
				}
			}

			score, err = s.negamax(ctx, depth-1-reduction, ply+1, -alpha-1, -alpha, childPV[:], &childPVLen)
			score = -score
			if err == nil && score > alpha && reduction > 0 {
				score, err = s.negamax(ctx, depth-1, ply+1, -alpha-1, -alpha, childPV[:], &childPVLen)
				score = -score
			}
			if err == nil && score > alpha && score < beta {
				score, err = s.negamax(ctx, depth-1, ply+1, -beta, -alpha, childPV[:], &childPVLen)
				score = -score
			}
		}

		s.b.PopMove()
		if err != nil {
			return 0, err
		}

		if quiet {
			quiets = append(quiets, m)
		}

		if score > best {
			best = score
			bestMove = m
			if score > alpha {
				alpha = score
				bound = tt.ExactBound
				pv[0] = m
				copy(pv[1:], childPV[:childPVLen])
				*pvLen = childPVLen + 1
			}
			if alpha >= beta {
				bound = tt.LowerBound
				if quiet {
					s.killers.Update(ply, m)
					s.counters.Update(turn, last, m)
					s.history.Update(turn, m, quiets[:len(quiets)-1], depth)
				}
				break
			}
		}
	}

	if legal == 0 {
		result := s.b.AdjudicateNoLegalMoves()
		if result.Reason == board.Checkmate {
			return eval.MatedByPly(ply), nil
		}
		return drawScore(s.nodes), nil
	}

	s.shared.TT.Store(hash, ply, depth, bound, best, bestMove)

	if !inCheck && bestMove != board.NullMove && !bestMove.Flag().IsCapture() && !eval.IsMate(best) {
		s.correction.Update(turn, eval.PawnHash(pos), static, best, depth)
	}

	return best, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// lmrTable returns the base late-move-reduction amount for the given depth
// and move index, a logarithmic curve flattening at deep/late moves so the
// reduction never collapses the remaining depth to nothing in one step.
func lmrTable(depth, moveIndex int) int {
	r := 0
	d, m := depth, moveIndex
	for d > 1 && m > 1 {
		r++
		d /= 2
		m /= 2
	}
	return r
}
