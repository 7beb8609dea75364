package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents UCI time control information: wtime/btime and,
// optionally, the moves remaining until the next time control.
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game
}

// Limits returns the soft and hard time budget for the given color. After
// the soft limit, no new iteration should be started; the hard limit is the
// absolute cutoff, enforced by EnforceTimeControl. Moves-to-go, when
// unknown, is estimated at 40 remaining.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft = remainder / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// EnforceTimeControl arms the hard limit via a one-shot timer that halts h
// once it fires, and returns the soft limit for the caller to additionally
// poll against after each completed iteration. The hard limit is deliberately
// enforced this way, and not via node-count polling inside search, so it can
// interrupt a search stuck deep in one runaway iteration; node polling (see
// pkg/search's checkEvery) only catches the stop flag this timer eventually
// sets.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}

// stabilityScale shrinks the soft limit once the PV's best move has stopped
// changing across consecutive iterations, the working assumption being that
// a long-stable best move is unlikely to change if given a little more time,
// so that time is better saved for a position where it keeps flipping.
func stabilityScale(stableIterations int) float64 {
	switch {
	case stableIterations >= 12:
		return 0.55
	case stableIterations >= 6:
		return 0.75
	case stableIterations >= 3:
		return 0.90
	default:
		return 1.0
	}
}
