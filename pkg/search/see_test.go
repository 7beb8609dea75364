package search_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPos(t *testing.T, f string) (*board.Position, board.Color) {
	t.Helper()
	pos, turn, _, _, err := fen.Decode(f)
	require.NoError(t, err)
	return pos, turn
}

func TestSEEPawnTakesUndefendedQueenIsWinning(t *testing.T) {
	pos, turn := mustPos(t, "4k3/8/8/8/3q4/4P3/8/4K3 w - - 0 1")
	m := board.NewMove(board.E3, board.D4, board.Capture)

	assert.Greater(t, search.SEE(pos, m, turn), 0)
}

func TestSEELosingExchangeIsNegative(t *testing.T) {
	// White queen takes a pawn defended by a knight: the queen is lost for a pawn.
	pos, turn := mustPos(t, "4k3/8/1n6/3p4/8/8/8/3QK3 w - - 0 1")
	m := board.NewMove(board.D1, board.D5, board.Capture)

	assert.Less(t, search.SEE(pos, m, turn), 0)
}

func TestSEEEqualTradeIsZero(t *testing.T) {
	// exd5 is met by exd5 (the e6 pawn recaptures): pawn for pawn, net zero.
	pos, turn := mustPos(t, "4k3/8/4p3/3p4/4P3/8/8/4K3 w - - 0 1")
	m := board.NewMove(board.E4, board.D5, board.Capture)

	assert.Equal(t, 0, search.SEE(pos, m, turn))
}
