// Package qgd ties the builder and searcher packages together into the
// two operations most embedders need: pack a set of files into an
// archive, and search an existing archive for a pattern. Anything more
// specific — custom chunk sizing, alternate codecs, splicing pre-built
// chunks, streaming a search to something other than an io.Writer —
// should use the builder and search packages directly.
package qgd

import (
	"context"
	"io"

	"github.com/qgdtools/qgd/builder"
	"github.com/qgdtools/qgd/search"
)

// FileInfo is the metadata Build needs about one file to pack.
type FileInfo = builder.FileInfo

// Statistics summarizes a completed Build.
type Statistics = builder.Statistics

// Build packs files into a new archive at path using the builder's
// default chunk size and codec. See builder.BuildToFile for the options
// this shortcut omits.
func Build(path string, files []FileInfo) (Statistics, error) {
	return builder.BuildToFile(path, files)
}

// Search opens the archive at path and writes every formatted match of
// pattern to out, using default (case-sensitive, regular-expression)
// matching. See the search package for case-insensitive matching,
// literal-substring mode, and output formatting options.
func Search(ctx context.Context, path, pattern string, out io.Writer) error {
	s, err := search.New(pattern)
	if err != nil {
		return err
	}

	return s.SearchFile(ctx, path, out)
}
