// Package book implements a simple Zobrist-hash-keyed opening book.
package book

import (
	"fmt"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
)

// Book is an opening book consulted by hash of the current position. Once
// Lookup reports no entry, the caller should stop consulting the book for
// the rest of the game, rather than re-probing every move. Adapted from the
// teacher's pkg/engine/book.go, keyed by Zobrist hash instead of a cropped
// FEN string so lookup never has to re-encode the board.
type Book interface {
	Lookup(hash board.ZobristHash) (board.Move, bool)
}

// NopBook never has an entry.
type NopBook struct{}

func (NopBook) Lookup(board.ZobristHash) (board.Move, bool) { return board.NullMove, false }

// Line is a named sequence of moves in pure coordinate notation, e.g.
// {"Italian Game", []string{"e2e4", "e7e5", "g1f3", "b8c6"}}.
type Line struct {
	Name  string
	Moves []string
}

type memBook struct {
	moves map[board.ZobristHash][]board.Move
}

// Lookup returns the earliest-added reply recorded for hash, so that when
// multiple lines disagree on a transposition the first one loaded wins.
func (b *memBook) Lookup(hash board.ZobristHash) (board.Move, bool) {
	moves, ok := b.moves[hash]
	if !ok || len(moves) == 0 {
		return board.NullMove, false
	}
	return moves[0], true
}

// New builds an opening book by replaying lines from the initial position
// under zt, so every stored hash matches how the engine hashes its own
// Board. Grounded on the teacher's pkg/engine/book.go NewBook.
func New(zt *board.ZobristTable, lines []Line) (Book, error) {
	m := map[board.ZobristHash][]board.Move{}

	for _, line := range lines {
		pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
		if err != nil {
			return nil, fmt.Errorf("book: invalid initial position: %w", err)
		}
		b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)

		for _, str := range line.Moves {
			candidate, err := board.ParseMove(str)
			if err != nil {
				return nil, fmt.Errorf("book: line %q: invalid move %q: %w", line.Name, str, err)
			}

			ml := b.Position().PseudoLegalMoves(b.Turn())
			actual, ok := ml.Find(candidate)
			if !ok {
				return nil, fmt.Errorf("book: line %q: move %q not found", line.Name, str)
			}

			hash := b.Hash()
			if !containsMove(m[hash], actual) {
				m[hash] = append(m[hash], actual)
			}

			if !b.PushMove(actual) {
				return nil, fmt.Errorf("book: line %q: move %q not legal", line.Name, str)
			}
		}
	}

	return &memBook{moves: m}, nil
}

func containsMove(moves []board.Move, m board.Move) bool {
	for _, c := range moves {
		if c == m {
			return true
		}
	}
	return false
}
