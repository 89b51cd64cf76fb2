// Package pool provides the bounded buffer pool the searcher uses for
// decompressed chunk bodies. The work queue's in-flight byte budget is
// separate and lives in internal/workqueue.
package pool

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultBlockSize is the initial capacity given to a freshly allocated
// Block before any chunk has grown it.
const DefaultBlockSize = 1024 * 64 // 64KiB

// Block is a reusable, reference-counted byte buffer. A Block is returned
// to its pool only once its reference count drops to zero, which lets a
// chunk's decompressed body be shared read-only across every searcher
// goroutine scanning lines within it without copying.
type Block struct {
	B []byte

	pool *BlockPool
	refs atomic.Int32
}

// Bytes returns the underlying byte slice.
func (b *Block) Bytes() []byte {
	return b.B
}

// Reset empties the block while retaining its backing array.
func (b *Block) Reset() {
	b.B = b.B[:0]
}

// Grow ensures the block can hold n bytes total, reallocating if the
// current backing array is too small.
func (b *Block) Grow(n int) {
	if cap(b.B) >= n {
		b.B = b.B[:n]
		return
	}

	newBuf := make([]byte, n)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Retain increments the block's reference count. Call once per goroutine
// that will hold onto the block after the one that allocated it releases
// its own reference.
func (b *Block) Retain() {
	b.refs.Add(1)
}

// Release decrements the reference count and returns the block to its
// pool once the count reaches zero. Release must be called exactly once
// per Get and once per Retain.
func (b *Block) Release() {
	if b.refs.Add(-1) > 0 {
		return
	}

	b.pool.put(b)
}

// BlockPool is a sync.Pool of Blocks bounded by a semaphore weighted in
// bytes rather than block count, so a burst of oversized chunks throttles
// acquisition instead of growing memory use without limit. Searcher
// workers call Acquire before decompressing a chunk and the semaphore
// blocks until enough outstanding bytes have been Released.
type BlockPool struct {
	pool   sync.Pool
	sem    *semaphore.Weighted
	maxCap int64
}

// NewBlockPool creates a BlockPool that admits at most maxBytes worth of
// outstanding blocks at once, sized by their requested length rather than
// their allocated capacity.
func NewBlockPool(maxBytes int64) *BlockPool {
	return &BlockPool{
		pool: sync.Pool{
			New: func() any {
				return &Block{B: make([]byte, 0, DefaultBlockSize)}
			},
		},
		sem:    semaphore.NewWeighted(maxBytes),
		maxCap: maxBytes,
	}
}

// Acquire blocks until size bytes of budget are available, then returns a
// Block grown to exactly size bytes with one outstanding reference. The
// caller must call Block.Release when done, and Block.Retain first for
// every extra goroutine that needs to keep reading after that.
func (p *BlockPool) Acquire(ctx context.Context, size int) (*Block, error) {
	weight := int64(size)
	if weight > p.maxCap {
		// A single chunk larger than the entire budget is still served; it
		// just runs alone, starving concurrent acquisitions until released.
		weight = p.maxCap
	}

	if err := p.sem.Acquire(ctx, weight); err != nil {
		return nil, err
	}

	block, _ := p.pool.Get().(*Block)
	block.pool = p
	block.refs.Store(1)
	block.Grow(size)
	block.B = block.B[:size]

	return block, nil
}

func (p *BlockPool) put(b *Block) {
	weight := int64(len(b.B))
	if weight > p.maxCap {
		weight = p.maxCap
	}

	b.Reset()
	p.pool.Put(b)
	p.sem.Release(weight)
}
