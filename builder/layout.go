package builder

import (
	"fmt"

	"github.com/qgdtools/qgd/bloom"
	"github.com/qgdtools/qgd/format"
)

// writeChunk lays out chunk's body (file headers, names region, data
// region), builds its bloom index, compresses the body, and appends the
// resulting record to the output stream. A chunk with no files (flush
// called with nothing pending) is a no-op, matching flushChunk's C++
// counterpart returning early on an empty chunk.
func (b *Builder) writeChunk(chunk pendingChunk) error {
	if len(chunk.files) == 0 {
		return nil
	}

	body, dataOffset := layoutChunkBody(chunk.files)

	indexSize := bloom.IndexSize(len(body) - dataOffset)
	collector := bloom.NewCollector()
	bloom.WalkNgrams(body[dataOffset:], collector.Add)
	index, iterations := collector.Build(indexSize)

	compressed, err := b.codec.Compress(body)
	if err != nil {
		return fmt.Errorf("builder: compress chunk: %w", err)
	}

	header := format.ChunkHeader{
		FileCount:           uint32(len(chunk.files)),
		UncompressedSize:    uint32(len(body)),
		CompressedSize:      uint32(len(compressed)),
		IndexSize:           uint32(indexSize),
		IndexHashIterations: uint32(iterations),
		Compression:         b.codec.Type(),
	}

	firstFileIsSuffix := chunk.files[0].startLine != 0

	return b.writeChunkRecord(header, index, compressed, firstFileIsSuffix)
}

// layoutChunkBody concatenates files's fixed-size headers, name bytes,
// and data bytes into one contiguous uncompressed buffer, in the three-
// region layout the searcher expects, and returns the offset at which the
// data region begins (headers size + names size).
func layoutChunkBody(files []record) (body []byte, dataOffset int) {
	headerSize := len(files) * format.ChunkFileHeaderSize

	nameSize := 0
	dataSize := 0
	for _, f := range files {
		nameSize += len(f.name)
		dataSize += len(f.contents)
	}

	total := headerSize + nameSize + dataSize
	body = make([]byte, total)

	nameOffset := headerSize
	dataOff := headerSize + nameSize

	for i, f := range files {
		copy(body[nameOffset:], f.name)
		copy(body[dataOff:], f.contents)

		h := format.ChunkFileHeader{
			NameOffset: uint32(nameOffset),
			NameLength: uint16(len(f.name)),
			DataOffset: uint32(dataOff),
			DataSize:   uint32(len(f.contents)),
			StartLine:  f.startLine,
			FileSize:   f.fileSize,
			TimeStamp:  f.timeStamp,
		}
		copy(body[i*format.ChunkFileHeaderSize:], h.Bytes())

		nameOffset += len(f.name)
		dataOff += len(f.contents)
	}

	return body, headerSize + nameSize
}

// writeChunkRecord appends one (header, index, compressed payload) record
// to the output stream and updates running statistics. fileCount counts
// distinct logical files, so a chunk whose first file is a suffix of a
// file whose prefix already landed in a previous chunk contributes
// fileCount-1 to the file counter.
func (b *Builder) writeChunkRecord(header format.ChunkHeader, index, compressed []byte, firstFileIsSuffix bool) error {
	if err := b.write(header.Bytes()); err != nil {
		return fmt.Errorf("builder: write chunk header: %w", err)
	}

	if err := b.write(index); err != nil {
		return fmt.Errorf("builder: write chunk index: %w", err)
	}

	if err := b.write(compressed); err != nil {
		return fmt.Errorf("builder: write chunk payload: %w", err)
	}

	b.stats.ChunkCount++
	b.stats.FileCount += uint64(header.FileCount)
	if firstFileIsSuffix {
		b.stats.FileCount--
	}
	b.stats.FileSize += uint64(header.UncompressedSize)
	b.stats.ResultSize += uint64(header.CompressedSize)

	return nil
}
