package board

import "fmt"

// MaxMoves bounds the number of pseudo-legal moves reachable from any
// position; 218 is the highest known count for a legal chess position.
const MaxMoves = 218

// MoveList is a fixed-capacity, stack-allocatable list of moves. It avoids
// the heap allocation a slice-based move list would incur on every node
// visited during search.
type MoveList struct {
	Moves [MaxMoves]Move
	Len   int
}

// Add appends a move to the list. Callers must not exceed MaxMoves.
func (ml *MoveList) Add(m Move) {
	ml.Moves[ml.Len] = m
	ml.Len++
}

// Slice returns the populated prefix of the list.
func (ml *MoveList) Slice() []Move {
	return ml.Moves[:ml.Len]
}

// Contains returns true iff the list contains a move with the same from, to
// and promotion piece as m, ignoring any other flag bits.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.Len; i++ {
		c := ml.Moves[i]
		if c.From() == m.From() && c.To() == m.To() && c.Flag().PromotionPiece() == m.Flag().PromotionPiece() {
			return true
		}
	}
	return false
}

// Find returns the list's move with the same from, to and promotion piece
// as m, ignoring any other flag bits -- the full move, including the
// Capture/EnPassant/castle flags coordinate notation doesn't carry. Used to
// resolve a move parsed from UCI/console input against actual board context.
func (ml *MoveList) Find(m Move) (Move, bool) {
	for i := 0; i < ml.Len; i++ {
		c := ml.Moves[i]
		if c.From() == m.From() && c.To() == m.To() && c.Flag().PromotionPiece() == m.Flag().PromotionPiece() {
			return c, true
		}
	}
	return NullMove, false
}

func (ml *MoveList) String() string {
	return fmt.Sprintf("%v", ml.Slice())
}
