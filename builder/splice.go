package builder

import (
	"errors"

	"github.com/qgdtools/qgd/format"
)

// ErrChunkSpliceRejected is returned by AppendChunk when the builder's
// pending buffer is not in a state where a foreign chunk can be spliced
// in cleanly. Callers should fall back to AppendFile for the data the
// foreign chunk would have represented.
var ErrChunkSpliceRejected = errors.New("builder: chunk splice rejected")

// AppendChunk splices a pre-formed chunk (header, compressed bytes,
// index bytes) directly into the output stream, bypassing the carving
// pipeline entirely. This exists for tools that recompute a subset of
// chunks out of band and want to reuse the rest unchanged.
//
// Before splicing, pending data is drained to a state where inserting
// the foreign chunk won't leave a badly-sized neighbor: if pending is
// more than twice the target, or less than 0.75x the target, the splice
// is rejected; if pending is more than 1.5x the target, it is pre-split
// into two chunks first. The target/min/max fractions here are frozen,
// not tunable per call, since the builder and its callers must agree on
// when a splice is safe.
func (b *Builder) AppendChunk(header format.ChunkHeader, compressed, index []byte, firstFileIsSuffix bool) error {
	if err := b.flushIfNeeded(); err != nil {
		return err
	}

	chunkMax := b.targetChunkSize * 3 / 2
	chunkMin := chunkMax / 2

	if b.pendingSize > 0 {
		if b.pendingSize > b.targetChunkSize*2 {
			return ErrChunkSpliceRejected
		}

		if b.pendingSize < chunkMin {
			return ErrChunkSpliceRejected
		}

		if b.pendingSize > chunkMax {
			if err := b.flushChunk(b.pendingSize / 2); err != nil {
				return err
			}
		}

		if err := b.flushChunk(b.pendingSize); err != nil {
			return err
		}
	}

	if b.pendingSize != 0 || len(b.pending) != 0 {
		panic("builder: pending buffer not drained before chunk splice")
	}

	return b.writeChunkRecord(header, index, compressed, firstFileIsSuffix)
}
