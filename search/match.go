// Package search implements the parallel consumer: it streams a .qgd
// data file, decompresses each chunk from a bounded pool, scans every
// file fragment within against a regular expression, and emits matches
// through an output writer that preserves chunk order.
package search

import (
	"strconv"
	"strings"
)

// Match is one located occurrence of a pattern within a fragment.
type Match struct {
	Path   string
	Line   uint32
	Column int
	Text   string
}

// Options controls matching and output formatting: IgnoreCase and
// Literal affect how the pattern is compiled, while PrintColumn and
// VisualStudio only affect FormatMatch.
type Options struct {
	IgnoreCase   bool
	Literal      bool
	PrintColumn  bool
	VisualStudio bool
}

// FormatMatch renders m as one output line, in either the default
// "path:line:col: text" form or, when opts.VisualStudio is set, the
// "path(line,col): text" form with path separators turned into
// backslashes, matching the editor's error-list parser.
func FormatMatch(m Match, opts Options) string {
	path := m.Path
	lineBefore, lineAfter := ":", ":"

	if opts.VisualStudio {
		path = strings.ReplaceAll(path, "/", "\\")
		lineBefore, lineAfter = "(", "):"
	}

	var col string
	if opts.PrintColumn {
		sep := ":"
		if opts.VisualStudio {
			sep = ","
		}

		col = sep + strconv.Itoa(m.Column)
	}

	var b strings.Builder
	b.WriteString(path)
	b.WriteString(lineBefore)
	b.WriteString(strconv.Itoa(int(m.Line)))
	b.WriteString(col)
	b.WriteString(lineAfter)
	b.WriteByte(' ')
	b.WriteString(m.Text)
	b.WriteByte('\n')

	return b.String()
}
