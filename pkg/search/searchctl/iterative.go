package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative drives a search.ThreadPool through successively deeper
// iterations, applying time control and PV-stability soft-limit scaling
// between them; the zero value is ready to use.
type Iterative struct{}

func (it *Iterative) Launch(ctx context.Context, pool *search.ThreadPool, turn board.Color, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, pool, turn, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, pool *search.ThreadPool, turn board.Color, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, turn)

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	var prevScore board.Score
	var prevBest board.Move
	stableIterations := 0

	start := time.Now()
	depth := 1
	for !h.quit.IsClosed() {
		pv, err := pool.SearchRoot(wctx, depth, prevScore)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed at depth=%v: %v", depth, err)
			return
		}
		pv.Nodes = pool.TotalNodes()

		logw.Debugf(ctx, "Searched depth=%v: %v", depth, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		best := board.NullMove
		if len(pv.Moves) > 0 {
			best = pv.Moves[0]
		}
		if best == prevBest && best != board.NullMove {
			stableIterations++
		} else {
			stableIterations = 0
		}
		scoreStable := depth > 1 && absScore(pv.Score-prevScore) < 15
		prevBest, prevScore = best, pv.Score

		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if eval.IsMate(pv.Score) && eval.MatePlies(pv.Score) <= depth {
			return // halt: forced mate found within full-width search
		}
		if useSoft {
			scale := stabilityScale(stableIterations)
			if scoreStable {
				scale *= 0.92
			}
			if time.Duration(float64(soft)*scale) < time.Since(start) {
				return // halt: exceeded (scaled) soft time limit
			}
		}
		depth++
	}
}

func absScore(s board.Score) board.Score {
	if s < 0 {
		return -s
	}
	return s
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
