package eval

import "github.com/corvidchess/corvid/pkg/board"

var (
	isolatedPenalty = TermScore{MG: -5, EG: -10}
	doubledPenalty  = TermScore{MG: -11, EG: -56}
	passedBonus     = [8]TermScore{
		{}, {MG: 5, EG: 10}, {MG: 10, EG: 18}, {MG: 20, EG: 32},
		{MG: 35, EG: 55}, {MG: 60, EG: 95}, {MG: 90, EG: 140}, {},
	}
	connectedBonus = TermScore{MG: 4, EG: 3}
)

var fileMask [8]board.Bitboard

func init() {
	for f := board.FileA; f < board.NumFiles; f++ {
		for r := board.ZeroRank; r < board.NumRanks; r++ {
			fileMask[f] |= board.BitMask(board.NewSquare(f, r))
		}
	}
}

func adjacentFiles(f board.File) board.Bitboard {
	var m board.Bitboard
	if f > board.FileA {
		m |= fileMask[f-1]
	}
	if f < board.FileH {
		m |= fileMask[f+1]
	}
	return m
}

// pawnStructure scores isolated, doubled, connected and passed pawns. Pawn
// structure recomputation is the most expensive static-eval term, which is
// why Evaluate caches it keyed by pawnKingHash.
func pawnStructure(pos *board.Position) TermScore {
	var sum TermScore
	for c := board.ZeroColor; c < board.NumColors; c++ {
		own := pos.PieceBitboard(c, board.Pawn)
		opp := pos.PieceBitboard(c.Opponent(), board.Pawn)

		pawns := own
		for pawns != 0 {
			sq := pawns.LastPopSquare()
			pawns &= pawns - 1

			f := sq.File()

			term := TermScore{}
			if own&adjacentFiles(f) == 0 {
				term = term.Add(isolatedPenalty)
			}
			if (own & fileMask[f]).PopCount() > 1 {
				term = term.Add(doubledPenalty)
			}
			if isPassed(sq, c, opp) {
				rank := sq.Rank()
				if c == board.Black {
					rank = rank.Flip()
				}
				term = term.Add(passedBonus[rank])
			}
			if board.PawnCaptureboard(c.Opponent(), board.BitMask(sq))&own != 0 {
				term = term.Add(connectedBonus)
			}

			if c == board.Black {
				term = term.Neg()
			}
			sum = sum.Add(term)
		}
	}
	return sum
}

// isPassed returns true iff the pawn on sq has no opposing pawn able to
// block or capture it on its file or the two adjacent files ahead of it.
func isPassed(sq board.Square, c board.Color, oppPawns board.Bitboard) bool {
	f := sq.File()
	front := fileMask[f] | adjacentFiles(f)

	ahead := board.Bitboard(0)
	for r := board.ZeroRank; r < board.NumRanks; r++ {
		rank := r
		isAhead := (c == board.White && rank > sq.Rank()) || (c == board.Black && rank < sq.Rank())
		if !isAhead {
			continue
		}
		for file := board.FileA; file < board.NumFiles; file++ {
			ahead |= board.BitMask(board.NewSquare(file, rank))
		}
	}
	return oppPawns&front&ahead == 0
}
