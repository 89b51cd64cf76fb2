// Package errs collects the sentinel errors a caller might want to
// compare against with errors.Is, across the builder, searcher, and
// on-disk format packages. Every exported error here is also defined
// and returned from its owning package; this package exists so a
// caller that only wants to branch on error identity doesn't need to
// import builder/format/compress just to reach the sentinel.
package errs

import (
	"github.com/qgdtools/qgd/builder"
	"github.com/qgdtools/qgd/compress"
	"github.com/qgdtools/qgd/format"
)

var (
	// ErrBadMagic means a file did not start with the archive's magic
	// bytes and is not a .qgd data file.
	ErrBadMagic = format.ErrBadMagic

	// ErrShortChunkHeader means fewer bytes than a full chunk header were
	// available where one was expected.
	ErrShortChunkHeader = format.ErrShortChunkHeader

	// ErrSizeMismatch means a codec's DecompressInto was called with a
	// destination buffer that did not match the recorded uncompressed size.
	ErrSizeMismatch = compress.ErrSizeMismatch

	// ErrChunkSpliceRejected means AppendChunk could not safely insert a
	// foreign chunk given the builder's current pending buffer state.
	ErrChunkSpliceRejected = builder.ErrChunkSpliceRejected
)
