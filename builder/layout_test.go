package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qgdtools/qgd/format"
)

func TestLayoutChunkBody(t *testing.T) {
	files := []record{
		{name: "a.txt", contents: []byte("hello\n"), startLine: 0, fileSize: 6, timeStamp: 100},
		{name: "b.txt", contents: []byte("world\n"), startLine: 0, fileSize: 6, timeStamp: 200},
	}

	body, dataOffset := layoutChunkBody(files)

	headerSize := 2 * format.ChunkFileHeaderSize
	require.Equal(t, headerSize+len("a.txt")+len("b.txt"), dataOffset)

	h0 := format.ParseChunkFileHeader(body[0:format.ChunkFileHeaderSize])
	require.EqualValues(t, 5, h0.NameLength)
	require.EqualValues(t, 6, h0.DataSize)
	require.Equal(t, "a.txt", string(body[h0.NameOffset:h0.NameOffset+uint32(h0.NameLength)]))
	require.Equal(t, "hello\n", string(body[h0.DataOffset:h0.DataOffset+h0.DataSize]))

	h1 := format.ParseChunkFileHeader(body[format.ChunkFileHeaderSize : 2*format.ChunkFileHeaderSize])
	require.Equal(t, "b.txt", string(body[h1.NameOffset:h1.NameOffset+uint32(h1.NameLength)]))
	require.Equal(t, "world\n", string(body[h1.DataOffset:h1.DataOffset+h1.DataSize]))
}
