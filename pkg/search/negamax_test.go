package search_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/corvidchess/corvid/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func newSearcher(t *testing.T, f string) *search.Searcher {
	t.Helper()

	zt := board.NewZobristTable(0)
	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)

	shared := &search.Shared{
		TT:    tt.New(context.Background(), 1<<20),
		Pawns: eval.NewPawnCache(),
		Stop:  atomic.NewBool(false),
	}
	return search.NewSearcher(0, shared, b)
}

func TestSearchFindsMateInOne(t *testing.T) {
	// Classic back-rank mate: Re1-e8 is checkmate, the black king boxed in by its own pawns.
	s := newSearcher(t, "6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1")

	pv, err := s.Search(context.Background(), 1, 0)
	require.NoError(t, err)
	require.NotEmpty(t, pv.Moves)

	assert.True(t, eval.IsMate(pv.Score))
	assert.Equal(t, board.NewMove(board.E1, board.E8, board.Quiet), pv.Moves[0])
}

func TestSearchPrefersWinningMaterial(t *testing.T) {
	// White to move can capture a hanging black rook with the bishop.
	s := newSearcher(t, "4k3/8/8/8/3r4/4B3/8/4K3 w - - 0 1")

	pv, err := s.Search(context.Background(), 3, 0)
	require.NoError(t, err)
	require.NotEmpty(t, pv.Moves)

	want := board.NewMove(board.E3, board.D4, board.Capture)
	assert.Equal(t, want, pv.Moves[0])
}

func TestSearchStopsWhenHalted(t *testing.T) {
	zt := board.NewZobristTable(0)
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)

	stop := atomic.NewBool(true)
	shared := &search.Shared{
		TT:    tt.New(context.Background(), 1<<20),
		Pawns: eval.NewPawnCache(),
		Stop:  stop,
	}
	s := search.NewSearcher(0, shared, b)

	_, err = s.Search(context.Background(), 20, 0)
	assert.ErrorIs(t, err, search.ErrHalted)
}
