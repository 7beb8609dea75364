package search

import "github.com/corvidchess/corvid/pkg/board"

// seeValue gives each piece kind a simple, untapered value for the swap-off
// calculation; SEE cares about "is this exchange profitable", not positional
// nuance. Grounded on original_source/src/evaluation/see_swap.h.
var seeValue = [board.NumPieces]int{
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   20000,
}

var rookDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDeltas = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func step(sq board.Square, df, dr int) (board.Square, bool) {
	f := int(sq.File()) + df
	r := int(sq.Rank()) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return 0, false
	}
	return board.NewSquare(board.File(f), board.Rank(r)), true
}

// rayAttacks casts rays from sq in the given directions, occlusion-aware
// against occ, stopping (inclusive) at the first occupied square. Used only
// by SEE, which must recompute sliding attacks against a hypothetical
// occupancy as pieces are removed from the exchange; the position's
// incrementally-maintained rotated-bitboard cache only reflects the actual
// board, not these hypothetical intermediate states.
func rayAttacks(sq board.Square, occ board.Bitboard, deltas [4][2]int) board.Bitboard {
	var bb board.Bitboard
	for _, d := range deltas {
		cur := sq
		for {
			next, ok := step(cur, d[0], d[1])
			if !ok {
				break
			}
			bb |= board.BitMask(next)
			if occ.IsSet(next) {
				break
			}
			cur = next
		}
	}
	return bb
}

// attackersTo returns every square (both colors) from which a piece attacks
// sq, given the hypothetical occupancy occ.
func attackersTo(pos *board.Position, sq board.Square, occ board.Bitboard) board.Bitboard {
	var att board.Bitboard
	att |= board.KnightAttackboard(sq) & (pos.PieceBitboard(board.White, board.Knight) | pos.PieceBitboard(board.Black, board.Knight))
	att |= board.KingAttackboard(sq) & (pos.PieceBitboard(board.White, board.King) | pos.PieceBitboard(board.Black, board.King))

	diag := rayAttacks(sq, occ, bishopDeltas)
	att |= diag & (pos.PieceBitboard(board.White, board.Bishop) | pos.PieceBitboard(board.Black, board.Bishop) |
		pos.PieceBitboard(board.White, board.Queen) | pos.PieceBitboard(board.Black, board.Queen))

	ortho := rayAttacks(sq, occ, rookDeltas)
	att |= ortho & (pos.PieceBitboard(board.White, board.Rook) | pos.PieceBitboard(board.Black, board.Rook) |
		pos.PieceBitboard(board.White, board.Queen) | pos.PieceBitboard(board.Black, board.Queen))

	for _, c := range [...]board.Color{board.White, board.Black} {
		att |= board.PawnCaptureboard(c.Opponent(), board.BitMask(sq)) & pos.PieceBitboard(c, board.Pawn)
	}

	return att & occ
}

func leastValuableAttacker(pos *board.Position, attackers board.Bitboard, side board.Color) (board.Square, board.Piece, bool) {
	own := attackers & pos.Occupancy(side)
	if own == 0 {
		return 0, 0, false
	}
	for _, p := range [...]board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		bb := own & pos.PieceBitboard(side, p)
		if bb != 0 {
			return bb.LastPopSquare(), p, true
		}
	}
	return 0, 0, false
}

// capturedValue returns the piece value a capture move removes from the
// board, used by quiescence search's delta-pruning margin.
func capturedValue(pos *board.Position, m board.Move) int {
	if m.Flag() == board.EnPassant {
		return seeValue[board.Pawn]
	}
	_, captured, _ := pos.Square(m.To())
	return seeValue[captured]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SEE performs static exchange evaluation of the capture m made by turn:
// the net material gain (in simple piece-value centipawns) after every
// profitable recapture on m.To(), via serial least-valuable-attacker swap-off
// with Fabien Letouzey's gain[] backpropagation. Does not verify that a
// recapturing king would not itself be moving into check, a standard SEE
// simplification.
func SEE(pos *board.Position, m board.Move, turn board.Color) int {
	to, from := m.To(), m.From()
	_, movingPiece, _ := pos.Square(from)

	var captured board.Piece
	if m.Flag() == board.EnPassant {
		captured = board.Pawn
	} else {
		_, captured, _ = pos.Square(to)
	}

	occ := pos.AllOccupancy() &^ board.BitMask(from)

	var gain [32]int
	d := 0
	gain[0] = seeValue[captured]

	side := turn.Opponent()
	piece := movingPiece

	for d < len(gain)-1 {
		attackers := attackersTo(pos, to, occ)
		sq, p, ok := leastValuableAttacker(pos, attackers, side)
		if !ok {
			break
		}

		d++
		gain[d] = seeValue[piece] - gain[d-1]
		if maxInt(-gain[d-1], gain[d]) < 0 {
			break
		}

		occ &^= board.BitMask(sq)
		piece = p
		side = side.Opponent()
	}

	for d > 0 {
		gain[d-1] = -maxInt(-gain[d-1], -gain[d])
		d--
	}
	return gain[0]
}
