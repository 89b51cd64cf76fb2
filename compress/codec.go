// Package compress adapts block-compression codecs to the chunk format's
// needs: every chunk header already records both the uncompressed and
// compressed sizes (format.ChunkHeader), so Decompress is always called
// with a known target length — unlike a general-purpose streaming codec,
// there is no need to guess or grow a destination buffer.
package compress

import (
	"fmt"

	"github.com/qgdtools/qgd/format"
)

// Codec compresses and decompresses one chunk's uncompressed body.
type Codec interface {
	// Type identifies the algorithm, stored in the chunk header so the
	// searcher can select a matching decompressor without out-of-band
	// configuration.
	Type() format.CompressionType

	// Compress returns a self-contained compressed frame for src.
	Compress(src []byte) ([]byte, error)

	// DecompressInto decompresses src into dst. len(dst) must equal the
	// original uncompressed size recorded in the chunk header; this lets
	// the searcher decompress directly into a block-pool buffer without
	// an intermediate allocation.
	DecompressInto(src, dst []byte) error
}

// New constructs the Codec for the given compression type.
func New(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionNone:
		return NoOp{}, nil
	case format.CompressionLZ4:
		return LZ4{}, nil
	case format.CompressionS2:
		return S2{}, nil
	case format.CompressionZstd:
		return Zstd{}, nil
	default:
		return nil, fmt.Errorf("compress: unsupported compression type %v", t)
	}
}
