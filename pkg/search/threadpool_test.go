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

func newPoolBoard(t *testing.T) *board.Board {
	t.Helper()

	zt := board.NewZobristTable(0)
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	return board.NewBoard(zt, pos, turn, noprogress, fullmoves)
}

func TestThreadPoolSearchRootReturnsPrimaryPV(t *testing.T) {
	shared := &search.Shared{
		TT:    tt.New(context.Background(), 1<<20),
		Pawns: eval.NewPawnCache(),
		Stop:  atomic.NewBool(false),
	}
	pool := search.NewThreadPool(shared, newPoolBoard(t), 4)
	defer pool.Close()

	assert.Equal(t, 4, pool.Threads())

	pv, err := pool.SearchRoot(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, pv.Moves)
	assert.Greater(t, pool.TotalNodes(), uint64(0))
}

func TestThreadPoolSingleThreadIsPrimaryOnly(t *testing.T) {
	shared := &search.Shared{
		TT:    tt.New(context.Background(), 1<<20),
		Pawns: eval.NewPawnCache(),
		Stop:  atomic.NewBool(false),
	}
	pool := search.NewThreadPool(shared, newPoolBoard(t), 1)
	defer pool.Close()

	assert.Equal(t, 1, pool.Threads())
	assert.Same(t, pool.Primary(), pool.Primary())
}
