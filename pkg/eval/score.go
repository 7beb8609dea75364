// Package eval contains static position evaluation: tapered material/
// positional scoring, mobility, pawn structure and king safety.
package eval

import "github.com/corvidchess/corvid/pkg/board"

// Infinite bounds every legal search score; kept strictly inside board.Score's
// +/-30000 range so aspiration windows can add/subtract margins without
// overflow.
const Infinite board.Score = 29000

// MateScore is the score of delivering mate on the move. Scores in
// (MateScore-MaxPly; MateScore] represent "mate in N" at increasing distance.
const MateScore board.Score = 28000

// MaxPly bounds search depth/ply and therefore mate-distance encoding.
const MaxPly = 128

// IsMate returns true iff s encodes a forced mate (for or against the side
// to move), as opposed to a heuristic material/positional evaluation.
func IsMate(s board.Score) bool {
	return s >= MateScore-MaxPly || s <= -(MateScore - MaxPly)
}

// MatePlies returns the number of plies to mate for a mate score s (positive:
// side to move mates; negative: side to move gets mated). Only meaningful if
// IsMate(s).
func MatePlies(s board.Score) int {
	if s > 0 {
		return int(MateScore - s)
	}
	return -int(MateScore + s)
}

// MateIn returns the mate distance in full moves, signed, for UCI "score mate".
func MateIn(s board.Score) int {
	plies := MatePlies(s)
	if s > 0 {
		return (plies + 1) / 2
	}
	return -((-plies + 1) / 2)
}

// MateByPly returns the mate score for delivering mate in the given number of
// plies from the current node.
func MateByPly(ply int) board.Score {
	return MateScore - board.Score(ply)
}

// MatedByPly returns the mate score for being mated in the given number of
// plies from the current node.
func MatedByPly(ply int) board.Score {
	return -MateScore + board.Score(ply)
}

// TermScore packs a middlegame and endgame centipawn term together so every
// evaluation term is computed once and tapered at the end, rather than
// threading a phase value through every helper.
type TermScore struct {
	MG, EG board.Score
}

func (t TermScore) Add(o TermScore) TermScore {
	return TermScore{t.MG + o.MG, t.EG + o.EG}
}

func (t TermScore) Sub(o TermScore) TermScore {
	return TermScore{t.MG - o.MG, t.EG - o.EG}
}

func (t TermScore) Neg() TermScore {
	return TermScore{-t.MG, -t.EG}
}

// Taper interpolates the middlegame/endgame halves by the game phase, where
// phase is clamped to [0;MaxPhase] and MaxPhase is fully middlegame.
func (t TermScore) Taper(phase int) board.Score {
	if phase > MaxPhase {
		phase = MaxPhase
	}
	mg := int(t.MG) * phase
	eg := int(t.EG) * (MaxPhase - phase)
	return board.Score((mg + eg) / MaxPhase)
}
