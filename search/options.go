package search

import "github.com/qgdtools/qgd/internal/options"

// Option configures a Searcher at construction time.
type Option = options.Option[*Searcher]

// WithIgnoreCase makes pattern matching case-insensitive.
func WithIgnoreCase() Option {
	return options.NoError(func(s *Searcher) {
		s.opts.IgnoreCase = true
	})
}

// WithLiteral treats the pattern as a plain substring rather than a
// regular expression.
func WithLiteral() Option {
	return options.NoError(func(s *Searcher) {
		s.opts.Literal = true
	})
}

// WithPrintColumn includes the matched column in formatted output.
func WithPrintColumn() Option {
	return options.NoError(func(s *Searcher) {
		s.opts.PrintColumn = true
	})
}

// WithVisualStudio switches formatted output to the editor-friendly
// "path(line,col):" form.
func WithVisualStudio() Option {
	return options.NoError(func(s *Searcher) {
		s.opts.VisualStudio = true
	})
}

// WithWorkers overrides the number of chunk-processing goroutines,
// which defaults to workqueue.IdealWorkerCount.
func WithWorkers(n int) Option {
	return options.NoError(func(s *Searcher) {
		s.workers = n
	})
}

// WithMaxInFlightBytes overrides the total bytes of compressed+
// decompressed chunk data allowed in flight at once, which bounds how
// far a slow consumer lets the reader race ahead.
func WithMaxInFlightBytes(n int64) Option {
	return options.NoError(func(s *Searcher) {
		s.maxInFlightBytes = n
	})
}

// WithBlockPoolBudget overrides the byte budget of the decompression
// block pool.
func WithBlockPoolBudget(n int64) Option {
	return options.NoError(func(s *Searcher) {
		s.blockPoolBudget = n
	})
}
