package search

import (
	"regexp/syntax"

	"github.com/qgdtools/qgd/bloom"
)

// literalPrefilter holds the 4-gram hashes of a query that is a plain
// literal of at least 4 bytes, used to skip decompressing a chunk whose
// bloom filter proves the literal cannot appear in it. A query that is
// not a simple literal (wildcards, alternation, anchors, ...) yields a
// nil prefilter, and every chunk is decompressed and scanned normally.
type literalPrefilter struct {
	ngrams []uint32
}

// newLiteralPrefilter inspects pattern's compiled regex program and
// returns a non-nil prefilter only when the whole pattern reduces to one
// literal string — the common case for plain substring search, and the
// only case cheap enough to pre-test against a bloom filter without
// risking false negatives from partial-literal matching. bloom.Ngram
// case-folds on both the build and query side, so the literal's casing
// here does not need to track the search's ignore-case setting.
func newLiteralPrefilter(pattern string) *literalPrefilter {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil
	}

	re = re.Simplify()
	if re.Op != syntax.OpLiteral || len(re.Rune) == 0 {
		return nil
	}

	literal := []byte(string(re.Rune))

	ngrams := bloom.LiteralNgrams(literal)
	if len(ngrams) == 0 {
		return nil
	}

	return &literalPrefilter{ngrams: ngrams}
}

// mayMatch reports whether chunk's bloom filter could contain every
// 4-gram of the literal. An empty index (indexSize == 0) always passes,
// matching the "always present" rule for chunks too small to index.
func (p *literalPrefilter) mayMatch(index []byte, iterations int) bool {
	if p == nil {
		return true
	}

	for _, h := range p.ngrams {
		if !bloom.Test(index, h, iterations) {
			return false
		}
	}

	return true
}
