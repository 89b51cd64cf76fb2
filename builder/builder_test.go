package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qgdtools/qgd/format"
)

func TestBuilder_SmallProjectProducesValidHeader(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello\nworld\n"), 0o644))

	out := filepath.Join(dir, "project.qgd")

	stats, err := BuildToFile(out, []FileInfo{{Path: src, MTime: 1, FileSize: 12}})
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.ChunkCount)
	require.EqualValues(t, 1, stats.FileCount)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, format.ReadHeader(data))

	header, err := format.ParseChunkHeader(data[format.HeaderSize:])
	require.NoError(t, err)
	require.EqualValues(t, 1, header.FileCount)
	require.Equal(t, format.CompressionLZ4, header.Compression)
}

func TestBuilder_AppendFilePart_RejectsNonIncreasingStartLine(t *testing.T) {
	dir := t.TempDir()
	b, err := New(filepath.Join(dir, "p.qgd"))
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.AppendFilePart("a.txt", 0, []byte("x\n"), 1, 2))
	require.Panics(t, func() {
		b.AppendFilePart("a.txt", 0, []byte("y\n"), 1, 2)
	})
}

func TestBuilder_MultipleFilesAccumulateStats(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "p.qgd")

	var files []FileInfo
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, "f"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(p, []byte("line one\nline two\n"), 0o644))
		files = append(files, FileInfo{Path: p, MTime: uint64(i), FileSize: 18})
	}

	stats, err := BuildToFile(out, files)
	require.NoError(t, err)
	require.EqualValues(t, 5, stats.FileCount)
	require.FileExists(t, out)
	require.NoFileExists(t, out+"_")
}
