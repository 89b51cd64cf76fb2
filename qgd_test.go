package qgd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAndSearch(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(srcPath, []byte("package main\n\nfunc main() {}\n"), 0o644))

	archivePath := filepath.Join(dir, "project.qgd")

	stats, err := Build(archivePath, []FileInfo{
		{Path: srcPath, MTime: 1, FileSize: 29},
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.FileCount)

	var out bytes.Buffer
	require.NoError(t, Search(context.Background(), archivePath, "func main", &out))
	require.Contains(t, out.String(), "func main() {}")
}
