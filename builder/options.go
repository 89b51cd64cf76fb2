package builder

import (
	"github.com/qgdtools/qgd/compress"
	"github.com/qgdtools/qgd/format"
	"github.com/qgdtools/qgd/internal/options"
)

// Option configures a Builder at construction time.
type Option = options.Option[*Builder]

// WithTargetChunkSize overrides DefaultTargetChunkSize.
func WithTargetChunkSize(n int) Option {
	return options.NoError(func(b *Builder) {
		b.targetChunkSize = n
	})
}

// WithCompression selects the codec used to compress chunk bodies.
func WithCompression(t format.CompressionType) Option {
	return options.New(func(b *Builder) error {
		codec, err := compress.New(t)
		if err != nil {
			return err
		}

		b.codec = codec

		return nil
	})
}

// WithProgress registers a callback invoked whenever the builder's
// statistics change, deduped on Statistics.ResultSize so a caller
// redrawing a progress line doesn't get flooded with no-op updates.
func WithProgress(fn ProgressFunc) Option {
	return options.NoError(func(b *Builder) {
		b.progress = fn
	})
}
