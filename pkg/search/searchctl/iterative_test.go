package searchctl_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/corvidchess/corvid/pkg/search/searchctl"
	"github.com/corvidchess/corvid/pkg/tt"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func newPool(t *testing.T, threads int) *search.ThreadPool {
	t.Helper()

	zt := board.NewZobristTable(0)
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)

	shared := &search.Shared{
		TT:    tt.New(context.Background(), 1<<20),
		Pawns: eval.NewPawnCache(),
		Stop:  atomic.NewBool(false),
	}
	return search.NewThreadPool(shared, b, threads)
}

func TestIterativeRespectsDepthLimit(t *testing.T) {
	pool := newPool(t, 1)
	defer pool.Close()

	it := &searchctl.Iterative{}
	_, out := it.Launch(context.Background(), pool, board.White, searchctl.Options{
		DepthLimit: lang.Some(uint(2)),
	})

	var last search.PV
	for pv := range out {
		last = pv
	}

	assert.Equal(t, 2, last.Depth)
	assert.NotEmpty(t, last.Moves)
}

func TestIterativeHaltReturnsLastPV(t *testing.T) {
	pool := newPool(t, 1)
	defer pool.Close()

	it := &searchctl.Iterative{}
	h, out := it.Launch(context.Background(), pool, board.White, searchctl.Options{})

	<-out // wait for at least one completed iteration

	pv := h.Halt()
	assert.NotEmpty(t, pv.Moves)

	for range out {
		// drain until the launch goroutine exits
	}
}
