package eval_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateInitialPositionIsRoughlyBalanced(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)

	score := eval.Evaluate(pos, turn, nil)
	assert.InDelta(t, 0, int(score), 30) // tempo bonus only
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is up a whole queen.
	pos, turn, _, _, err := fen.Decode("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	assert.NoError(t, err)

	score := eval.Evaluate(pos, turn, nil)
	assert.Greater(t, int(score), 500)
}

func TestEvaluateUsesPawnCacheConsistently(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)

	cache := eval.NewPawnCache()
	uncached := eval.Evaluate(pos, turn, nil)
	cached := eval.Evaluate(pos, turn, cache)
	assert.Equal(t, uncached, cached)
	assert.Equal(t, cached, eval.Evaluate(pos, turn, cache)) // second probe hits the cache
}

func TestPhaseDecreasesAsMaterialIsTraded(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)
	assert.Equal(t, eval.MaxPhase, eval.Phase(pos))

	bare, _, _, _, err := fen.Decode("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.Equal(t, 0, eval.Phase(bare))
}

func TestMateScoreHelpers(t *testing.T) {
	s := eval.MateByPly(3)
	assert.True(t, eval.IsMate(s))
	assert.Equal(t, 2, eval.MateIn(s)) // mate in 3 plies == 2 full moves

	mated := eval.MatedByPly(4)
	assert.True(t, eval.IsMate(mated))
	assert.Less(t, eval.MateIn(mated), 0)
}
