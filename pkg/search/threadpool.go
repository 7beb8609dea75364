package search

import (
	"context"
	"sync"

	"github.com/corvidchess/corvid/pkg/board"
	"go.uber.org/atomic"
)

// job is one iterative-deepening iteration dispatched to a helper searcher,
// completion reported back to the submitter's WaitGroup rather than a
// result channel -- a helper's own PV is never consulted, only its side
// effect of populating the shared transposition table.
type job struct {
	searcher  *Searcher
	ctx       context.Context
	depth     int
	prevScore board.Score
	wg        *sync.WaitGroup
}

// ThreadPool runs Lazy-SMP: N searchers share one Shared (transposition
// table, pawn cache, stop flag) and each forks its own Board and keeps
// private move-ordering tables, racing the same position to different
// depths/move orderings so they cross-pollinate through the shared TT.
// Jobs queue on a fixed-capacity LIFO, mirroring the original's
// s_jobScalar=2 sizing, guarded by a mutex/condvar rather than per-worker
// channels -- Submit never blocks, it just reports whether the job was
// accepted. Grounded on original_source/src/core/thread_pool.h and the
// teacher's pkg/engine/engine.go goroutine-per-searcher wiring.
type ThreadPool struct {
	shared    *Shared
	searchers []*Searcher

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []job
	capacity int
	closed   bool
}

// NewThreadPool forks threads copies of root (threads>=1) sharing shared,
// starting threads-1 helper workers that pull jobs off the queue for as
// long as the pool is open.
func NewThreadPool(shared *Shared, root *board.Board, threads int) *ThreadPool {
	if threads < 1 {
		threads = 1
	}

	p := &ThreadPool{
		shared:   shared,
		capacity: threads * 2,
	}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < threads; i++ {
		p.searchers = append(p.searchers, NewSearcher(i, shared, root))
	}
	for i := 1; i < threads; i++ {
		go p.worker()
	}
	return p
}

func (p *ThreadPool) worker() {
	for {
		j, ok := p.pop()
		if !ok {
			return // pool closed
		}
		_, _ = j.searcher.Search(j.ctx, j.depth, j.prevScore)
		j.wg.Done()
	}
}

// Primary returns the designated primary searcher; its root search's PV is
// the pool's result. Time control is applied by package searchctl around
// SearchRoot, and no searcher probes a tablebase.
func (p *ThreadPool) Primary() *Searcher {
	return p.searchers[0]
}

// Threads returns the number of searchers in the pool.
func (p *ThreadPool) Threads() int {
	return len(p.searchers)
}

// Submit enqueues a job for a helper searcher to pick up, returning false
// rather than blocking if the queue is already at capacity.
func (p *ThreadPool) Submit(j job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || len(p.queue) >= p.capacity {
		return false
	}
	p.queue = append(p.queue, j)
	p.cond.Signal()
	return true
}

func (p *ThreadPool) pop() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return job{}, false
	}

	n := len(p.queue) - 1
	j := p.queue[n]
	p.queue = p.queue[:n]
	return j, true
}

// Close stops accepting jobs and wakes every blocked worker, which then
// exit once the queue drains. Workers already running a job finish it.
func (p *ThreadPool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// SearchRoot runs depth synchronously on the primary searcher while helper
// searchers race the same position at nearby depths in the background,
// queued the same way any other job would be; unlike a normal job, the
// caller waits on their completion via wg before returning, and a shared
// stop signal -- raised once the primary concludes -- halts them promptly
// rather than leaving them to run to their own (deeper) depth.
func (p *ThreadPool) SearchRoot(ctx context.Context, depth int, prevScore board.Score) (PV, error) {
	var wg sync.WaitGroup
	for i, s := range p.searchers[1:] {
		helperDepth := depth + (i % 2)
		wg.Add(1)
		if !p.Submit(job{searcher: s, ctx: ctx, depth: helperDepth, prevScore: prevScore, wg: &wg}) {
			wg.Done() // queue briefly full; this iteration just runs with fewer helpers
		}
	}

	pv, err := p.Primary().Search(ctx, depth, prevScore)

	if stop, ok := p.shared.Stop.(*atomic.Bool); ok {
		stop.Store(true)
		wg.Wait()
		if err == nil {
			stop.Store(false)
		}
	} else {
		wg.Wait()
	}

	return pv, err
}

// TotalNodes sums the node counts of every searcher in the pool, the
// standard UCI "nodes" figure for a multi-threaded search.
func (p *ThreadPool) TotalNodes() uint64 {
	var n uint64
	for _, s := range p.searchers {
		n += s.Nodes()
	}
	return n
}
