package search_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestCorrectionHistoryStartsNeutral(t *testing.T) {
	c := &search.CorrectionHistory{}
	assert.Equal(t, board.Score(50), c.Correct(board.White, board.ZobristHash(1), 50))
}

func TestCorrectionHistoryNudgesTowardSearchResult(t *testing.T) {
	c := &search.CorrectionHistory{}
	key := board.ZobristHash(42)

	for i := 0; i < 50; i++ {
		c.Update(board.White, key, 0, 100, 8)
	}

	corrected := c.Correct(board.White, key, 0)
	assert.Greater(t, corrected, board.Score(0))
}

func TestCorrectionHistoryIsPerColorAndPerKey(t *testing.T) {
	c := &search.CorrectionHistory{}
	for i := 0; i < 50; i++ {
		c.Update(board.White, board.ZobristHash(1), 0, 100, 8)
	}

	assert.Equal(t, board.Score(0), c.Correct(board.Black, board.ZobristHash(1), 0))
	assert.Equal(t, board.Score(0), c.Correct(board.White, board.ZobristHash(2), 0))
}
