package search_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuiescenceSearchResolvesHangingCapture(t *testing.T) {
	// Depth 0 drops straight into quiescence: white to move can win a free
	// rook, so the quiescence score should reflect that material swing well
	// above a quiet static evaluation.
	s := newSearcher(t, "4k3/8/8/8/3r4/4B3/8/4K3 w - - 0 1")

	pv, err := s.Search(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Greater(t, pv.Score, board.Score(300))
}

func TestQuiescenceSearchIgnoresLosingCapture(t *testing.T) {
	// The only capture available loses the queen for a pawn; quiescence
	// should prune it via SEE and fall back to the quiet stand-pat score.
	s := newSearcher(t, "4k3/8/1n6/3p4/8/8/8/3QK3 w - - 0 1")
	pos, turn := mustPos(t, "4k3/8/1n6/3p4/8/8/8/3QK3 w - - 0 1")

	pv, err := s.Search(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.False(t, eval.IsMate(pv.Score))
	assert.Equal(t, eval.Evaluate(pos, turn, nil), pv.Score)
}
