package tt_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/tt"
	"github.com/stretchr/testify/assert"
)

func TestProbeMiss(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	_, ok := table.Probe(board.ZobristHash(12345), 0)
	assert.False(t, ok)
}

func TestStoreAndProbeRoundTrip(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	hash := board.ZobristHash(0xdeadbeef)
	move := board.NewMove(board.E2, board.E4, board.DoublePawnPush)
	table.Store(hash, 0, 6, tt.ExactBound, 123, move)

	e, ok := table.Probe(hash, 0)
	assert.True(t, ok)
	assert.Equal(t, board.Score(123), e.Score)
	assert.Equal(t, 6, e.Depth)
	assert.Equal(t, tt.ExactBound, e.Bound)
	assert.Equal(t, move, e.Move)
}

func TestReplacementPolicyKeepsDeeperExactEntry(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	hash := board.ZobristHash(0xcafef00d)
	move := board.NewMove(board.D2, board.D4, board.DoublePawnPush)
	table.Store(hash, 0, 10, tt.ExactBound, 50, move)

	// A shallower, non-exact entry for the same key must not overwrite it.
	table.Store(hash, 0, 3, tt.UpperBound, -999, board.NullMove)

	e, ok := table.Probe(hash, 0)
	assert.True(t, ok)
	assert.Equal(t, 10, e.Depth)
	assert.Equal(t, tt.ExactBound, e.Bound)
	assert.Equal(t, board.Score(50), e.Score)
}

func TestMateScoreSurvivesPlyShift(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	hash := board.ZobristHash(7)
	const rootPly = 4
	mateScore := board.Score(28000 - rootPly) // mate delivered at ply 4 from root

	table.Store(hash, rootPly, 2, tt.ExactBound, mateScore, board.NullMove)

	// Probed again at the same ply, the score should be unchanged.
	e, ok := table.Probe(hash, rootPly)
	assert.True(t, ok)
	assert.Equal(t, mateScore, e.Score)

	// Probed from a shallower ply (closer to the actual root), the mate lies
	// fewer plies from the root, so the score must rise.
	e2, ok := table.Probe(hash, 1)
	assert.True(t, ok)
	assert.Greater(t, int(e2.Score), int(mateScore))
}

func TestHashFullStartsEmpty(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)
	assert.Equal(t, 0, table.HashFull())
}
