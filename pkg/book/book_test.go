package book_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopBookNeverHasAnEntry(t *testing.T) {
	_, ok := book.NopBook{}.Lookup(board.ZobristHash(1))
	assert.False(t, ok)
}

func TestBookLooksUpFirstMoveOfALine(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := book.New(zt, []book.Line{
		{Name: "Italian Game", Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6"}},
	})
	require.NoError(t, err)

	hash := initialHash(t, zt)
	m, ok := b.Lookup(hash)
	require.True(t, ok)
	assert.Equal(t, "e2e4", m.String())
}

func TestBookFirstLoadedLineWinsOnTranspose(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := book.New(zt, []book.Line{
		{Name: "English", Moves: []string{"c2c4"}},
		{Name: "Queen's Pawn", Moves: []string{"d2d4"}},
	})
	require.NoError(t, err)

	hash := initialHash(t, zt)
	m, ok := b.Lookup(hash)
	require.True(t, ok)
	assert.Equal(t, "c2c4", m.String())
}

func TestBookRejectsUnknownMove(t *testing.T) {
	zt := board.NewZobristTable(0)
	_, err := book.New(zt, []book.Line{
		{Name: "Bogus", Moves: []string{"e2e5"}},
	})
	assert.Error(t, err)
}

func TestBookHasNoEntryPastBookDepth(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := book.New(zt, []book.Line{
		{Name: "Italian Game", Moves: []string{"e2e4"}},
	})
	require.NoError(t, err)

	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	bd := board.NewBoard(zt, pos, turn, noprogress, fullmoves)
	require.True(t, bd.PushMove(board.NewMove(board.E2, board.E4, board.DoublePawnPush)))

	_, ok := b.Lookup(bd.Hash())
	assert.False(t, ok)
}

func initialHash(t *testing.T, zt *board.ZobristTable) board.ZobristHash {
	t.Helper()

	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	bd := board.NewBoard(zt, pos, turn, noprogress, fullmoves)
	return bd.Hash()
}
