package search_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestHistoryTableRewardsCutoffMoveOverOthers(t *testing.T) {
	h := &search.HistoryTable{}
	best := board.NewMove(board.E2, board.E4, board.DoublePawnPush)
	other := board.NewMove(board.D2, board.D4, board.DoublePawnPush)

	h.Update(board.White, best, []board.Move{other}, 4)

	assert.Greater(t, h.Score(board.White, best), h.Score(board.White, other))
	assert.Less(t, h.Score(board.White, other), int32(0))
}

func TestHistoryTableSaturates(t *testing.T) {
	h := &search.HistoryTable{}
	m := board.NewMove(board.G1, board.F3, board.Quiet)

	for i := 0; i < 10000; i++ {
		h.Update(board.White, m, nil, 20)
	}

	assert.LessOrEqual(t, h.Score(board.White, m), int32(1<<14))
}

func TestKillerTableTracksTwoMostRecent(t *testing.T) {
	k := &search.KillerTable{}
	m1 := board.NewMove(board.E2, board.E4, board.DoublePawnPush)
	m2 := board.NewMove(board.D2, board.D4, board.DoublePawnPush)
	m3 := board.NewMove(board.G1, board.F3, board.Quiet)

	k.Update(3, m1)
	k.Update(3, m2)
	first, second := k.Get(3)
	assert.Equal(t, m2, first)
	assert.Equal(t, m1, second)

	k.Update(3, m3)
	first, second = k.Get(3)
	assert.Equal(t, m3, first)
	assert.Equal(t, m2, second)
}

func TestKillerTableIgnoresDuplicateUpdate(t *testing.T) {
	k := &search.KillerTable{}
	m1 := board.NewMove(board.E2, board.E4, board.DoublePawnPush)

	k.Update(1, m1)
	k.Update(1, m1)

	first, second := k.Get(1)
	assert.Equal(t, m1, first)
	assert.Equal(t, board.NullMove, second)
}

func TestCounterTableRemembersReplyToLastMove(t *testing.T) {
	c := &search.CounterTable{}
	last := board.NewMove(board.E2, board.E4, board.DoublePawnPush)
	reply := board.NewMove(board.E7, board.E5, board.DoublePawnPush)

	assert.Equal(t, board.NullMove, c.Get(board.Black, last))

	c.Update(board.Black, last, reply)
	assert.Equal(t, reply, c.Get(board.Black, last))
}
