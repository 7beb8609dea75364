package eval

import (
	"sync"

	"github.com/corvidchess/corvid/pkg/board"
)

// tempoBonus rewards the side to move a little, reflecting the first-move
// advantage.
const tempoBonus board.Score = 10

// pawnCacheSize is the number of entries in the pawn-structure cache, a
// power of two for cheap masking.
const pawnCacheSize = 1 << 14

type pawnEntry struct {
	key   board.ZobristHash
	score TermScore
	valid bool
}

// PawnCache memoizes pawn-structure scoring keyed by a hash of the pawns and
// kings on the board, since that term is by far the most expensive to
// recompute and changes on only a fraction of moves. Safe for concurrent use
// by multiple Lazy-SMP searchers; a race only risks a cache miss, never a
// wrong read, since entries are written whole under the lock.
type PawnCache struct {
	mu      sync.Mutex
	entries []pawnEntry
}

// NewPawnCache allocates a pawn-structure cache.
func NewPawnCache() *PawnCache {
	return &PawnCache{entries: make([]pawnEntry, pawnCacheSize)}
}

func (c *PawnCache) lookup(key board.ZobristHash) (TermScore, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &c.entries[uint64(key)&(pawnCacheSize-1)]
	if e.valid && e.key == key {
		return e.score, true
	}
	return TermScore{}, false
}

func (c *PawnCache) store(key board.ZobristHash, score TermScore) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &c.entries[uint64(key)&(pawnCacheSize-1)]
	e.key, e.score, e.valid = key, score, true
}

// pawnKingHash is a cheap, cache-only hash of the pawns and kings on board,
// independent of the full Zobrist table (which also folds in castling/en
// passant/turn, and would thrash the cache on every irrelevant change).
func pawnKingHash(pos *board.Position) board.ZobristHash {
	var h board.ZobristHash
	for c := board.ZeroColor; c < board.NumColors; c++ {
		h ^= board.ZobristHash(pos.PieceBitboard(c, board.Pawn)) * board.ZobristHash(31+c)
		h ^= board.ZobristHash(pos.King(c)) * board.ZobristHash(131+c)
	}
	return h
}

// PawnHash exposes pawnKingHash for pkg/search's correction history, which
// keys its corrections by pawn structure so they generalize across
// positions sharing a pawn skeleton.
func PawnHash(pos *board.Position) board.ZobristHash {
	return pawnKingHash(pos)
}

// Evaluate returns the static evaluation of pos from the perspective of turn
// (the side to move), in centipawns, tapered across the middlegame/endgame piece-square and term
// tables by the position's game phase. A nil cache disables pawn-structure
// memoization.
func Evaluate(pos *board.Position, turn board.Color, cache *PawnCache) board.Score {
	phase := Phase(pos)

	sum := material(pos).Add(psqt(pos)).Add(mobility(pos)).Add(kingSafety(pos))

	pawns, ok := TermScore{}, false
	if cache != nil {
		pawns, ok = cache.lookup(pawnKingHash(pos))
	}
	if !ok {
		pawns = pawnStructure(pos)
		if cache != nil {
			cache.store(pawnKingHash(pos), pawns)
		}
	}
	sum = sum.Add(pawns)

	score := sum.Taper(phase)
	score = board.Score(int(score) * int(ScaleFactor(pos)) / 64)

	if turn == board.Black {
		score = -score
	}
	return score + tempoBonus
}

// ScaleFactor attenuates opposite colored bishop endings (one bishop each and
// no other non-pawn material), which are much more likely to be drawn than the
// raw material count suggests. Every other position, single-pawn endings
// included, keeps the full factor. Returned in [0;64], applied as
// score*factor/64.
func ScaleFactor(pos *board.Position) int {
	wb, bb := pos.PieceBitboard(board.White, board.Bishop), pos.PieceBitboard(board.Black, board.Bishop)
	if wb.PopCount() == 1 && bb.PopCount() == 1 {
		wsq, bsq := wb.LastPopSquare(), bb.LastPopSquare()
		if squareColor(wsq) != squareColor(bsq) {
			wp := pos.PieceBitboard(board.White, board.Pawn).PopCount()
			bp := pos.PieceBitboard(board.Black, board.Pawn).PopCount()
			if NonPawnMaterial(pos, board.White) == materialValue[board.Bishop].MG &&
				NonPawnMaterial(pos, board.Black) == materialValue[board.Bishop].MG {
				if abs(wp-bp) <= 1 {
					return 16
				}
				return 32
			}
		}
	}
	return 64
}

func squareColor(sq board.Square) int {
	return (int(sq.Rank()) + int(sq.File())) & 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
