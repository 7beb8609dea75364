// Package engine ties board, eval, search and their supporting interfaces
// (book, tablebase) into a single stateful UCI-playable entity.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/book"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/corvidchess/corvid/pkg/search/searchctl"
	"github.com/corvidchess/corvid/pkg/tbprobe"
	"github.com/corvidchess/corvid/pkg/tt"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine-wide, mutable runtime options (UCI "setoption").
type Options struct {
	// Depth is the default search depth limit. Zero means no limit.
	Depth uint
	// Hash is the transposition table size in MB. Zero is treated as 1 MB.
	Hash uint
	// Threads is the number of Lazy-SMP searchers. At least 1.
	Threads uint
	// MoveOverhead reserves a margin (ms) against communication lag so the
	// engine doesn't overrun the actual clock enforced by the GUI.
	MoveOverhead uint
	// Ponder enables pondering on the opponent's clock.
	Ponder bool
	// Noise adds centipawn randomness to leaf evaluations.
	Noise uint
	// SyzygyPath, if non-empty, is the filesystem path to Syzygy tablebases.
	SyzygyPath string
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB, threads=%v, overhead=%vms, ponder=%v, noise=%v, syzygy=%q}",
		o.Depth, o.Hash, o.Threads, o.MoveOverhead, o.Ponder, o.Noise, o.SyzygyPath)
}

// Engine encapsulates game-playing logic: the board under play, the
// Lazy-SMP thread pool and transposition table behind it, and the opening
// book consulted ahead of search. The tablebase oracle is held but never
// probed.
type Engine struct {
	name, author string

	launcher searchctl.Launcher
	book     book.Book
	oracle   tbprobe.Oracle
	zt       *board.ZobristTable
	seed     int64
	opts     Options

	b      *board.Board
	table  *tt.Table
	pawns  *eval.PawnCache
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithBook configures the engine's opening book.
func WithBook(b book.Book) Option {
	return func(e *Engine) { e.book = b }
}

// WithOracle configures the engine's endgame tablebase oracle.
func WithOracle(o tbprobe.Oracle) Option {
	return func(e *Engine) { e.oracle = o }
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// New constructs an engine and resets it to the initial position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		launcher: &searchctl.Iterative{},
		book:     book.NopBook{},
		oracle:   tbprobe.NopOracle{},
		opts:     Options{Threads: 1},
	}
	for _, fn := range opts {
		fn(e)
	}
	if e.opts.Threads == 0 {
		e.opts.Threads = 1
	}
	e.zt = board.NewZobristTable(e.seed)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

// SetHash resizes the transposition table to size MB. Takes effect on the
// next Reset, since the table is shared by every searcher mid-search.
func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
}

func (e *Engine) SetThreads(n uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n == 0 {
		n = 1
	}
	e.opts.Threads = n
}

func (e *Engine) SetMoveOverhead(ms uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.MoveOverhead = ms
}

func (e *Engine) SetPonder(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Ponder = on
}

func (e *Engine) SetNoise(limit uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = limit
}

func (e *Engine) SetSyzygyPath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.SyzygyPath = path
}

// Board returns a forked board, safe for the caller to inspect or mutate
// without racing the engine's own search or move-making.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Fork()
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b.Position(), e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
}

// Reset resets the engine to a new starting position in FEN format,
// reallocating the transposition table to the current Hash option size.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, options=%v", position, e.opts)

	_, _ = e.haltSearchIfActive(ctx)

	pos, turn, noprogress, fullmoves, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos, turn, noprogress, fullmoves)

	hash := uint64(e.opts.Hash)
	if hash == 0 {
		hash = 1
	}
	e.table = tt.New(ctx, hash<<20)
	e.pawns = eval.NewPawnCache()

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Move selects the given move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	ml := e.b.Position().PseudoLegalMoves(e.b.Turn())
	actual, ok := ml.Find(candidate)
	if !ok {
		return fmt.Errorf("invalid move: %v", candidate)
	}
	if !e.b.PushMove(actual) {
		return fmt.Errorf("illegal move: %v", actual)
	}

	logw.Infof(ctx, "Move %v: %v", actual, e.b)
	return nil
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// BookMove consults the opening book for the current position, if any.
func (e *Engine) BookMove(ctx context.Context) (board.Move, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.book.Lookup(e.b.Hash())
	if ok {
		logw.Infof(ctx, "Book move: %v", m)
	}
	return m, ok
}

// Analyze launches an iterative-deepening Lazy-SMP search of the current
// position.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	shared := &search.Shared{
		TT:         e.table,
		Pawns:      e.pawns,
		Stop:       atomic.NewBool(false),
		NoiseLimit: int(e.opts.Noise),
		Seed:       e.seed,
	}
	pool := search.NewThreadPool(shared, e.b.Fork(), int(e.opts.Threads))

	handle, out := e.launcher.Launch(ctx, pool, e.b.Turn(), opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
