package builder

import "bytes"

// pendingChunk accumulates records popped from the head of pending while
// carving a single output chunk.
type pendingChunk struct {
	files     []record
	totalSize int
}

// flushChunk carves one chunk of up to size bytes from the head of
// pending and writes it out. Grabs whole files while they fit; when the
// next file doesn't fit, it is split on the last newline within budget
// (skipByLines), or on the over-long-line exception (skipOneLine) when no
// newline exists and the chunk would otherwise be empty.
func (b *Builder) flushChunk(size int) error {
	var chunk pendingChunk

	for chunk.totalSize < size && len(b.pending) > 0 {
		file := b.pending[0]
		b.pending = b.pending[1:]

		remaining := size - chunk.totalSize

		if len(file.contents) <= remaining {
			chunk.totalSize += len(file.contents)
			chunk.files = append(chunk.files, file)

			continue
		}

		appendChunkFilePrefix(&chunk, &file, remaining)

		// The donor file (with its now-advanced startLine and trimmed
		// contents) goes back to the head; it's impossible to add more
		// files to this chunk without exceeding the requested size.
		b.pending = append([]record{file}, b.pending...)

		break
	}

	b.pendingSize -= chunk.totalSize

	if b.writeChunkFn != nil {
		return b.writeChunkFn(chunk)
	}

	return b.writeChunk(chunk)
}

// appendChunkFilePrefix splits file's contents at the last '\n' within
// remaining bytes of budget, appending that prefix to chunk and
// advancing file's startLine and contents in place to reflect the
// remainder left in pending. If no newline exists within budget and the
// chunk is otherwise still empty, take the prefix up to the first '\n' in
// the entire donor (or all of it if none), accepting an oversized chunk
// rather than leaving the chunk without any files.
func appendChunkFilePrefix(chunk *pendingChunk, file *record, remaining int) {
	skipSize, skipLines := skipByLines(file.contents, remaining)

	if skipSize == 0 && len(chunk.files) != 0 {
		return
	}

	if skipSize == 0 {
		skipSize = skipOneLine(file.contents)
		skipLines = 1
	}

	chunk.totalSize += skipSize
	chunk.files = append(chunk.files, record{
		name:      file.name,
		startLine: file.startLine,
		timeStamp: file.timeStamp,
		fileSize:  file.fileSize,
		contents:  file.contents[:skipSize],
	})

	file.startLine += skipLines
	file.contents = file.contents[skipSize:]
}

// skipByLines returns the byte offset just past the last '\n' within the
// first budget bytes of data, and the number of newlines up to and
// including it. Returns (0, 0) if no newline exists in that range.
func skipByLines(data []byte, budget int) (offset int, lines uint32) {
	if budget > len(data) {
		budget = len(data)
	}

	for i := 0; i < budget; i++ {
		if data[i] == '\n' {
			offset = i + 1
			lines++
		}
	}

	return offset, lines
}

// skipOneLine returns the byte offset just past the first '\n' in data,
// or len(data) if there is none.
func skipOneLine(data []byte) int {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1
	}

	return len(data)
}
