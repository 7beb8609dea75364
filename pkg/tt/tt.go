// Package tt contains a lock-free, bucketed transposition table.
package tt

import (
	"context"
	"fmt"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// Bound represents the bound of a -- possibly inexact -- search score,
// relative to the alpha/beta window in effect when it was stored.
type Bound uint8

const (
	NoBound Bound = iota
	ExactBound
	LowerBound // fail-high: true score >= stored score
	UpperBound // fail-low: true score <= stored score
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	default:
		return "none"
	}
}

// bucketSize is the number of entries probed per key, giving the replacement
// policy a few candidate slots instead of forcing a single slot to always
// win or lose.
const bucketSize = 4

// mateThreshold mirrors eval.MateScore-eval.MaxPly. Duplicated as a constant
// rather than imported, since package eval does not (and should not) depend
// on pkg/tt.
const mateThreshold board.Score = 28000 - 128

// entry is one transposition table slot backed by two atomic words, so a
// concurrent reader never observes a torn write from a concurrent writer:
// key is stored as data XOR hash (Hyatt's lockless-hashing trick), so a
// matching (key XOR data == hash) check on read detects torn entries
// without ever taking a lock.
type entry struct {
	key  atomic.Uint64
	data atomic.Uint64
}

// data layout (64 bits): score:16 | depth:8 | bound:2 | move:16 | pad:22
func packData(score board.Score, depth int, bound Bound, move board.Move) uint64 {
	return uint64(uint16(score)) |
		uint64(uint8(depth))<<16 |
		uint64(bound)<<24 |
		uint64(uint16(move))<<32
}

func unpackData(d uint64) (score board.Score, depth int, bound Bound, move board.Move) {
	score = board.Score(uint16(d))
	depth = int(uint8(d >> 16))
	bound = Bound(d>>24) & 0x3
	move = board.Move(uint16(d >> 32))
	return
}

// Entry is a probed transposition table record.
type Entry struct {
	Score board.Score
	Depth int
	Bound Bound
	Move  board.Move
}

// Table is a fixed-size, lock-free transposition table shared by every
// searcher in the thread pool.
type Table struct {
	buckets []entry
	mask    uint64
}

// New allocates a table sized to approximately size bytes, rounded down to
// the nearest power-of-two number of buckets.
func New(ctx context.Context, size uint64) *Table {
	n := uint64(1)
	for (n<<1)*bucketSize*16 <= size {
		n <<= 1
	}

	logw.Infof(ctx, "Allocating %vMB TT with %v buckets", size>>20, n)

	return &Table{
		buckets: make([]entry, n*bucketSize),
		mask:    n - 1,
	}
}

// Size returns the table's allocation size in bytes.
func (t *Table) Size() uint64 {
	return uint64(len(t.buckets)) * 16
}

// HashFull estimates occupancy as a permille value, the standard UCI
// "hashfull" convention, by sampling the first 1000 buckets.
func (t *Table) HashFull() int {
	samples := 1000 * bucketSize
	if samples > len(t.buckets) {
		samples = len(t.buckets)
	}
	if samples == 0 {
		return 0
	}

	used := 0
	for i := 0; i < samples; i++ {
		if t.buckets[i].key.Load() != 0 {
			used++
		}
	}
	return used * 1000 / samples
}

func (t *Table) index(hash board.ZobristHash) int {
	return int(uint64(hash)&t.mask) * bucketSize
}

// Probe looks up hash and, if present, returns the record with any mate
// score un-shifted back to be relative to the search root, given ply.
func (t *Table) Probe(hash board.ZobristHash, ply int) (Entry, bool) {
	base := t.index(hash)
	for i := 0; i < bucketSize; i++ {
		e := &t.buckets[base+i]

		key := e.key.Load()
		data := e.data.Load()
		if key^data != uint64(hash) {
			continue
		}

		score, depth, bound, move := unpackData(data)
		return Entry{Score: fromTT(score, ply), Depth: depth, Bound: bound, Move: move}, true
	}
	return Entry{}, false
}

// Store writes an entry for hash. The bucket's slots are scanned in order and
// the first one that holds hash or is empty decides: an empty slot is taken;
// a slot holding hash is overwritten only if its stored move is null, or the
// new depth is >= its stored depth, or the new entry is exact and the stored
// one isn't, and otherwise the store is dropped. If no slot holds hash or is
// empty, the shallowest slot in the bucket is overwritten.
// Mate scores are stored ply-shifted (relative to the storing node rather
// than the search root) so a cached mate distance remains correct regardless
// of the probing node's ply.
func (t *Table) Store(hash board.ZobristHash, ply, depth int, bound Bound, score board.Score, move board.Move) {
	base := t.index(hash)

	var victim *entry
	victimDepth := 1 << 30

	for i := 0; i < bucketSize; i++ {
		e := &t.buckets[base+i]

		key := e.key.Load()
		data := e.data.Load()

		if key^data == uint64(hash) {
			_, oldDepth, oldBound, oldMove := unpackData(data)
			if oldMove == board.NullMove || depth >= oldDepth || (bound == ExactBound && oldBound != ExactBound) {
				victim = e
				break
			}
			return // keep the existing, more valuable entry for this key
		}

		if key == 0 && data == 0 {
			victim = e
			break
		}

		_, d, _, _ := unpackData(data)
		if d < victimDepth {
			victim, victimDepth = e, d
		}
	}

	if victim == nil {
		victim = &t.buckets[base]
	}

	stored := packData(toTT(score, ply), depth, bound, move)
	victim.data.Store(stored)
	victim.key.Store(stored ^ uint64(hash))
}

// toTT shifts a mate score from root-relative (as used throughout search) to
// relative to the storing node at ply (as stored in the table), the inverse
// of fromTT.
func toTT(score board.Score, ply int) board.Score {
	switch {
	case score >= mateThreshold:
		return score + board.Score(ply)
	case score <= -mateThreshold:
		return score - board.Score(ply)
	default:
		return score
	}
}

// fromTT shifts a stored node-relative mate score back to be relative to the
// search root, given the probing node's ply.
func fromTT(score board.Score, ply int) board.Score {
	switch {
	case score >= mateThreshold:
		return score - board.Score(ply)
	case score <= -mateThreshold:
		return score + board.Score(ply)
	default:
		return score
	}
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%vMB @ %v%%]", t.Size()>>20, t.HashFull()/10)
}
