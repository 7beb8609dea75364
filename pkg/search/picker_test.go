package search_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func drain(p *search.Picker) []board.Move {
	var out []board.Move
	for {
		m, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

func TestPickerReturnsEveryPseudoLegalMoveExactlyOnce(t *testing.T) {
	pos, turn := mustPos(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	want := pos.PseudoLegalMoves(turn).Slice()

	p := search.NewPicker(pos, turn, board.NullMove, board.NullMove, board.NullMove, board.NullMove, &search.HistoryTable{})
	got := drain(p)

	assert.ElementsMatch(t, want, got)
}

func TestPickerReturnsTTMoveFirst(t *testing.T) {
	pos, turn := mustPos(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	ttMove := board.NewMove(board.D7, board.D5, board.DoublePawnPush)

	p := search.NewPicker(pos, turn, ttMove, board.NullMove, board.NullMove, board.NullMove, &search.HistoryTable{})
	got := drain(p)

	assert.NotEmpty(t, got)
	assert.Equal(t, ttMove, got[0])
}

func TestPickerOrdersGoodCapturesBeforeQuiets(t *testing.T) {
	// Black queen hangs to the white pawn on e4; e4 should be tried well before any quiet move.
	pos, turn := mustPos(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	capture := board.NewMove(board.E4, board.D5, board.Capture)

	p := search.NewPicker(pos, turn, board.NullMove, board.NullMove, board.NullMove, board.NullMove, &search.HistoryTable{})
	got := drain(p)

	captureIdx, quietIdx := -1, -1
	for i, m := range got {
		if m == capture {
			captureIdx = i
		}
		if quietIdx == -1 && !m.Flag().IsCapture() && !m.Flag().IsPromotion() {
			quietIdx = i
		}
	}
	assert.GreaterOrEqual(t, captureIdx, 0)
	assert.GreaterOrEqual(t, quietIdx, 0)
	assert.Less(t, captureIdx, quietIdx)
}
