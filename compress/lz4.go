package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/qgdtools/qgd/format"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse across chunks.
// The lz4.Compressor maintains an internal hash table that benefits from
// reuse rather than fresh allocation per chunk.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// ErrSizeMismatch is returned when a decompressed frame's size does not
// match the size recorded in the chunk header.
var ErrSizeMismatch = errors.New("compress: decompressed size mismatch")

// LZ4 is the primary, default chunk codec, built on the raw block API —
// lz4.CompressBlock / lz4.UncompressBlock — rather than the frame format,
// since block sizes are already tracked by format.ChunkHeader.
//
// The frame written by Compress is one flag byte (1 = lz4 block follows,
// 0 = literal copy follows) plus the payload. pierrec/lz4's CompressBlock
// returns n == 0 when the input would not shrink; storing a literal copy
// in that case avoids forcing an oversized "compressed" block through the
// codec for incompressible chunks.
type LZ4 struct{}

var _ Codec = LZ4{}

func (LZ4) Type() format.CompressionType { return format.CompressionLZ4 }

// Compress implements Codec.
func (LZ4) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{0}, nil
	}

	bound := lz4.CompressBlockBound(len(src))
	dst := make([]byte, 1+bound)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(src, dst[1:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	if n == 0 || n >= len(src) {
		dst[0] = 0
		copy(dst[1:1+len(src)], src)

		return dst[:1+len(src)], nil
	}

	dst[0] = 1

	return dst[:1+n], nil
}

// DecompressInto implements Codec.
func (LZ4) DecompressInto(src, dst []byte) error {
	if len(src) == 0 {
		if len(dst) != 0 {
			return ErrSizeMismatch
		}

		return nil
	}

	flag, body := src[0], src[1:]

	if flag == 0 {
		if len(body) != len(dst) {
			return ErrSizeMismatch
		}

		copy(dst, body)

		return nil
	}

	n, err := lz4.UncompressBlock(body, dst)
	if err != nil {
		return fmt.Errorf("lz4 decompress: %w", err)
	}

	if n != len(dst) {
		return ErrSizeMismatch
	}

	return nil
}
