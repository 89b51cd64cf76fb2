package search

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"github.com/qgdtools/qgd/compress"
	"github.com/qgdtools/qgd/format"
	"github.com/qgdtools/qgd/internal/options"
	"github.com/qgdtools/qgd/internal/output"
	"github.com/qgdtools/qgd/internal/pool"
	"github.com/qgdtools/qgd/internal/workqueue"
)

// DefaultMaxInFlightBytes bounds the total compressed+uncompressed size
// of chunks the reader goroutine is allowed to hand to workers before it
// must wait for some to finish, so a fast reader racing ahead of slow
// consumers can't grow memory use without bound.
const DefaultMaxInFlightBytes = 256 * 1024 * 1024 // 256MiB

// DefaultBlockPoolBudget bounds the total bytes of decompression scratch
// space live at once, independent of the in-flight-bytes budget above
// (which also counts the still-compressed bytes waiting on a worker).
const DefaultBlockPoolBudget = 128 * 1024 * 1024 // 128MiB

// Searcher streams a .qgd data file and reports every match of one
// pattern, decompressing and scanning chunks in parallel while writing
// results to the caller's output in the archive's original chunk order.
type Searcher struct {
	pattern string
	opts    Options

	workers          int
	maxInFlightBytes int64
	blockPoolBudget  int64

	scanner   *scanner
	prefilter *literalPrefilter

	codecMu    sync.Mutex
	codecCache map[format.CompressionType]compress.Codec
}

// New compiles pattern and returns a Searcher ready to run against any
// number of data files.
func New(pattern string, opts ...Option) (*Searcher, error) {
	s := &Searcher{
		pattern:          pattern,
		workers:          workqueue.IdealWorkerCount(),
		maxInFlightBytes: DefaultMaxInFlightBytes,
		blockPoolBudget:  DefaultBlockPoolBudget,
		codecCache:       make(map[format.CompressionType]compress.Codec),
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	sc, err := compile(pattern, s.opts.IgnoreCase, s.opts.Literal)
	if err != nil {
		return nil, err
	}
	s.scanner = sc

	effective := pattern
	if s.opts.Literal {
		effective = regexp.QuoteMeta(pattern)
	}
	s.prefilter = newLiteralPrefilter(effective)

	return s, nil
}

// SearchFile opens path and runs Search against it.
func (s *Searcher) SearchFile(ctx context.Context, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("search: open data file: %w", err)
	}
	defer f.Close()

	if err := s.Search(ctx, f, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// Search streams r, a complete .qgd data file, and writes every
// formatted match to out in archive order. Chunks are decompressed and
// scanned concurrently across s.workers goroutines; Search itself only
// returns once every chunk's output has been flushed or an error has
// aborted the stream.
func (s *Searcher) Search(ctx context.Context, r io.Reader, out io.Writer) error {
	br := bufio.NewReaderSize(r, 1<<20)

	magic := make([]byte, format.HeaderSize)
	if _, err := io.ReadFull(br, magic); err != nil {
		return fmt.Errorf("search: read header: %w", err)
	}
	if err := format.ReadHeader(magic); err != nil {
		return err
	}

	blocks := pool.NewBlockPool(s.blockPoolBudget)
	queue := workqueue.New(s.workers, s.maxInFlightBytes)
	writer := output.New(out)

	chunkIndex := 0
	readErr := s.readLoop(ctx, br, blocks, queue, writer, &chunkIndex)

	waitErr := queue.Wait()
	if readErr != nil {
		return readErr
	}
	if waitErr != nil {
		return waitErr
	}

	return writer.Err()
}

// readLoop pulls (header, index, compressed payload) records off br one
// at a time and either short-circuits a chunk whose bloom index proves
// the pattern absent, or hands it to queue for decompression and
// scanning. It never runs concurrently with itself, so it is the only
// place chunkIndex is incremented.
func (s *Searcher) readLoop(ctx context.Context, br *bufio.Reader, blocks *pool.BlockPool, queue *workqueue.Queue, writer *output.Writer, chunkIndex *int) error {
	headerBuf := make([]byte, format.ChunkHeaderSize)

	for {
		_, err := io.ReadFull(br, headerBuf)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("search: read chunk header: %w", err)
		}

		header, err := format.ParseChunkHeader(headerBuf)
		if err != nil {
			return err
		}

		index := make([]byte, header.IndexSize)
		if _, err := io.ReadFull(br, index); err != nil {
			return fmt.Errorf("search: read chunk index: %w", err)
		}

		compressed := make([]byte, header.CompressedSize)
		if _, err := io.ReadFull(br, compressed); err != nil {
			return fmt.Errorf("search: read chunk payload: %w", err)
		}

		idx := *chunkIndex
		*chunkIndex++

		if !s.prefilter.mayMatch(index, int(header.IndexHashIterations)) {
			chunk := writer.Begin(idx)
			if err := writer.End(chunk); err != nil {
				return err
			}

			continue
		}

		cost := int64(header.CompressedSize) + int64(header.UncompressedSize)
		if err := queue.Push(ctx, cost, s.processChunkFn(ctx, idx, header, compressed, blocks, writer)); err != nil {
			return fmt.Errorf("search: submit chunk: %w", err)
		}
	}
}

// processChunkFn returns the work-queue task for one chunk: decompress
// into a pooled block, scan every file fragment, and flush matches to
// the output writer under idx's slot.
func (s *Searcher) processChunkFn(ctx context.Context, idx int, header format.ChunkHeader, compressed []byte, blocks *pool.BlockPool, writer *output.Writer) func() error {
	return func() error {
		codec, err := s.codecFor(header.Compression)
		if err != nil {
			return err
		}

		block, err := blocks.Acquire(ctx, int(header.UncompressedSize))
		if err != nil {
			return fmt.Errorf("search: acquire block: %w", err)
		}
		defer block.Release()

		if err := codec.DecompressInto(compressed, block.Bytes()); err != nil {
			return fmt.Errorf("search: decompress chunk: %w", err)
		}

		out := writer.Begin(idx)
		s.scanChunkBody(block.Bytes(), int(header.FileCount), out)

		return writer.End(out)
	}
}

// scanChunkBody walks the fileCount fixed-size file headers at the front
// of body, then scans each one's data fragment, writing every formatted
// match to out.
func (s *Searcher) scanChunkBody(body []byte, fileCount int, out io.Writer) {
	for i := 0; i < fileCount; i++ {
		start := i * format.ChunkFileHeaderSize
		fh := format.ParseChunkFileHeader(body[start : start+format.ChunkFileHeaderSize])

		name := string(body[fh.NameOffset : fh.NameOffset+uint32(fh.NameLength)])
		fragment := body[fh.DataOffset : fh.DataOffset+fh.DataSize]

		scanFragment(s.scanner, name, fragment, fh.StartLine, func(m Match) {
			io.WriteString(out, FormatMatch(m, s.opts))
		})
	}
}

func (s *Searcher) codecFor(t format.CompressionType) (compress.Codec, error) {
	s.codecMu.Lock()
	defer s.codecMu.Unlock()

	if c, ok := s.codecCache[t]; ok {
		return c, nil
	}

	c, err := compress.New(t)
	if err != nil {
		return nil, err
	}

	s.codecCache[t] = c

	return c, nil
}
