package engine_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/search/searchctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineStartsAtInitialPosition(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineMoveAdvancesPosition(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	require.NoError(t, e.Move(context.Background(), "e2e4"))

	assert.NotEqual(t, fen.Initial, e.Position())
	assert.Equal(t, board.Black, e.Board().Turn())
}

func TestEngineMoveRejectsIllegalMove(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	assert.Error(t, e.Move(context.Background(), "e2e5"))
}

func TestEngineTakeBackUndoesLastMove(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	require.NoError(t, e.Move(context.Background(), "e2e4"))
	require.NoError(t, e.TakeBack(context.Background()))

	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineTakeBackErrorsWithNoMoves(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	assert.Error(t, e.TakeBack(context.Background()))
}

func TestEngineResetReplacesPosition(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	const after1e4 = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"

	require.NoError(t, e.Reset(context.Background(), after1e4))
	assert.Equal(t, after1e4, e.Position())
}

func TestEngineAnalyzeRejectsConcurrentSearch(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")

	_, err := e.Analyze(context.Background(), searchctl.Options{})
	require.NoError(t, err)

	_, err = e.Analyze(context.Background(), searchctl.Options{})
	assert.Error(t, err)

	_, _ = e.Halt(context.Background())
}

func TestEngineHaltErrorsWithNoActiveSearch(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	_, err := e.Halt(context.Background())
	assert.Error(t, err)
}

func TestEngineNameIncludesVersion(t *testing.T) {
	e := engine.New(context.Background(), "corvid", "corvidchess")
	assert.Contains(t, e.Name(), "corvid")
}
