package search

import (
	"bytes"
	"fmt"
	"regexp"
)

// scanner adapts stdlib regexp to the range-search contract the original
// tool's Regex interface exposes: prepare a range once per fragment,
// repeatedly pull the next match out of the remaining bytes, then release
// whatever prepare allocated. Go's regexp already understands case
// folding via the (?i) flag, so no manual case-folded copy is needed to
// satisfy the contract's "optional transformation" step.
type scanner struct {
	re *regexp.Regexp
}

// compile builds a scanner for pattern. literal escapes pattern first so
// it matches as a plain substring; ignoreCase adds the inline (?i) flag.
func compile(pattern string, ignoreCase, literal bool) (*scanner, error) {
	if literal {
		pattern = regexp.QuoteMeta(pattern)
	}

	if ignoreCase {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("search: compile pattern: %w", err)
	}

	return &scanner{re: re}, nil
}

// rangeSearch returns the (start, end) byte offsets of the next match
// within data, or ok=false if there is none.
func (s *scanner) rangeSearch(data []byte) (start, end int, ok bool) {
	loc := s.re.FindIndex(data)
	if loc == nil {
		return 0, 0, false
	}

	return loc[0], loc[1], true
}

// scanFragment walks every match of s within data, reporting one Match
// per occurrence with line/column computed relative to startLine (the
// fragment's absolute line number within its original source file).
// line is advanced by the newlines crossed since the previous match, the
// enclosing line is found by scanning back and forward for '\n', and the
// cursor advances to just past that line's end so a later match on the
// same line is never reported twice.
func scanFragment(s *scanner, path string, data []byte, startLine uint32, emit func(Match)) {
	cursor := 0
	line := startLine

	for cursor < len(data) {
		start, end, ok := s.rangeSearch(data[cursor:])
		if !ok {
			return
		}

		matchStart := cursor + start
		matchEnd := cursor + end

		line += 1 + uint32(bytes.Count(data[cursor:matchStart], []byte{'\n'}))

		lineStart := findLineStart(data, matchStart)
		lineEnd := findLineEnd(data, matchEnd)

		emit(Match{
			Path:   path,
			Line:   line,
			Column: matchStart - lineStart + 1,
			Text:   string(data[lineStart:lineEnd]),
		})

		if lineEnd == len(data) {
			return
		}

		cursor = lineEnd + 1
	}
}

// findLineStart scans back from pos to the byte after the preceding '\n',
// or the start of data if there is none.
func findLineStart(data []byte, pos int) int {
	for i := pos; i > 0; i-- {
		if data[i-1] == '\n' {
			return i
		}
	}

	return 0
}

// findLineEnd scans forward from pos to the next '\n', or len(data) if
// there is none.
func findLineEnd(data []byte, pos int) int {
	if i := bytes.IndexByte(data[pos:], '\n'); i >= 0 {
		return pos + i
	}

	return len(data)
}
