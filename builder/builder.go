// Package builder implements the streaming packer: it buffers file
// fragments, carves them into fixed-target-size chunks on line
// boundaries, builds a bloom index over each chunk, compresses the
// chunk body, and appends the result to a .qgd data file.
package builder

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/qgdtools/qgd/compress"
	"github.com/qgdtools/qgd/format"
	"github.com/qgdtools/qgd/internal/options"
	"github.com/qgdtools/qgd/internal/transcode"
)

// DefaultTargetChunkSize is the nominal uncompressed size a carved chunk
// aims for; the carving algorithm puts at most target bytes of file data
// into a chunk, cutting at the last line boundary within that budget,
// except for the over-long-line exception (and AppendChunk's pre-splice
// drain, which may carve up to 1.5*target).
const DefaultTargetChunkSize = 1024 * 1024 // 1MiB

// record is one buffered file fragment, the Go equivalent of the
// original C++ Blob-backed File: contents is a slice view into a backing
// array that may be shared with a sibling record produced by splitting a
// donor file across a chunk boundary. Go's garbage collector keeps the
// backing array alive for as long as any view references it, so no
// explicit reference count is needed here.
type record struct {
	name      string
	startLine uint32
	timeStamp uint64
	fileSize  uint64
	contents  []byte
}

// Statistics are counters a caller can poll to report build progress.
// Derived only; they never affect the archive produced.
type Statistics struct {
	ChunkCount uint64
	FileCount  uint64
	FileSize   uint64
	ResultSize uint64
}

// Builder is a single-threaded streaming packer. It owns pending file
// fragments until they are carved into chunks and written out; it writes
// each chunk at most once and never rewrites earlier output.
type Builder struct {
	out  *bufio.Writer
	file *os.File

	codec compress.Codec

	targetChunkSize int
	progress        ProgressFunc

	pending      []record
	pendingSize  int
	lastProgress uint64

	stats Statistics

	// writeChunkFn overrides writeChunk in tests that exercise the carving
	// algorithm in chunk.go without needing a real codec or output file.
	writeChunkFn func(pendingChunk) error
}

// ProgressFunc is called after a mutation of the builder's statistics,
// but only when Statistics.ResultSize differs from the value last
// reported; the builder does this dedup itself, the way the original
// command-line tool's progress line does, to avoid flooding a terminal
// with redundant redraws.
type ProgressFunc func(Statistics)

// New creates a Builder that writes a fresh .qgd data file at path,
// starting with the magic header. Callers must call Close to flush
// pending fragments and finalize the file.
func New(path string, opts ...Option) (*Builder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("builder: create %s: %w", path, err)
	}

	b := &Builder{
		out:             bufio.NewWriter(f),
		file:            f,
		codec:           compress.LZ4{},
		targetChunkSize: DefaultTargetChunkSize,
		lastProgress:    ^uint64(0),
	}

	if err := options.Apply(b, opts...); err != nil {
		f.Close()
		return nil, fmt.Errorf("builder: apply option: %w", err)
	}

	if _, err := b.out.Write(format.WriteHeader()); err != nil {
		f.Close()
		return nil, fmt.Errorf("builder: write header: %w", err)
	}

	return b, nil
}

// AppendFile reads path from disk, normalizes its line endings,
// transcodes it to UTF-8 if necessary, and buffers the result as a new
// pending fragment starting at line 0. A read failure is returned to the
// caller rather than aborting the whole build, so a batch build can skip
// one unreadable file and keep going.
func (b *Builder) AppendFile(path string, mtime, fileSize uint64) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("builder: read %s: %w", path, err)
	}

	normalized := normalizeEOL(raw)

	utf8, err := transcode.ToUTF8(normalized)
	if err != nil {
		return fmt.Errorf("builder: transcode %s: %w", path, err)
	}

	return b.AppendFilePart(path, 0, utf8, mtime, fileSize)
}

// AppendFilePart appends one fragment of a logical source file. If the
// most recently buffered record has the same name, contents is appended
// to it in place (asserting startLine strictly increases and the file
// metadata agrees); otherwise a new pending record is started.
func (b *Builder) AppendFilePart(name string, startLine uint32, contents []byte, mtime, fileSize uint64) error {
	if n := len(b.pending); n > 0 {
		last := &b.pending[n-1]
		if last.name == name {
			if startLine <= last.startLine {
				panic("builder: startLine must strictly increase within a file")
			}
			if last.timeStamp != mtime || last.fileSize != fileSize {
				panic("builder: file metadata changed mid-file")
			}

			last.contents = append(last.contents, contents...)
			b.pendingSize += len(contents)

			return b.flushIfNeeded()
		}
	}

	b.pending = append(b.pending, record{
		name:      name,
		startLine: startLine,
		timeStamp: mtime,
		fileSize:  fileSize,
		contents:  contents,
	})
	b.pendingSize += len(contents)

	return b.flushIfNeeded()
}

// flushIfNeeded carves target-sized chunks while pending has accumulated
// at least two chunk targets' worth of data, keeping resident pending
// size bounded during a long build.
func (b *Builder) flushIfNeeded() error {
	for b.pendingSize >= b.targetChunkSize*2 {
		if err := b.flushChunk(b.targetChunkSize); err != nil {
			return err
		}
	}

	b.reportProgress()

	return nil
}

// Flush drains every remaining pending fragment, emitting target-sized
// chunks until less than a target remains, then a final chunk with
// whatever is left. Flush is idempotent once pending is empty.
func (b *Builder) Flush() error {
	for b.pendingSize > 0 {
		if err := b.flushChunk(b.targetChunkSize); err != nil {
			return err
		}
	}

	b.reportProgress()

	return nil
}

// Close flushes pending data and finalizes the underlying file. Callers
// that want an atomic rename into place should use BuildToFile instead of
// calling New/Close directly.
func (b *Builder) Close() error {
	if err := b.Flush(); err != nil {
		return err
	}

	if err := b.out.Flush(); err != nil {
		return err
	}

	return b.file.Close()
}

// Stats returns the builder's running statistics.
func (b *Builder) Stats() Statistics {
	return b.stats
}

func (b *Builder) reportProgress() {
	if b.progress == nil || b.stats.ResultSize == b.lastProgress {
		return
	}

	b.lastProgress = b.stats.ResultSize
	b.progress(b.stats)
}

// write appends raw bytes directly to the output stream, used for the
// index and compressed payload of a freshly carved chunk.
func (b *Builder) write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

var _ io.Closer = (*Builder)(nil)
