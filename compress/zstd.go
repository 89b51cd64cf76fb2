package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/qgdtools/qgd/format"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation
// overhead — klauspost/compress/zstd is explicitly designed for decoder
// reuse once warmed up.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd decoder: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd encoder: %v", err))
		}

		return encoder
	},
}

// Zstd is an alternate chunk codec for archival .qgd files, where a better
// compression ratio matters more than build throughput. Uses the pure-Go
// klauspost/compress/zstd implementation, avoiding the cgo dependency a
// gozstd-based codec would introduce (see DESIGN.md).
type Zstd struct{}

var _ Codec = Zstd{}

func (Zstd) Type() format.CompressionType { return format.CompressionZstd }

// Compress implements Codec.
func (Zstd) Compress(src []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(src, nil), nil
}

// DecompressInto implements Codec.
func (Zstd) DecompressInto(src, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(src, dst[:0])
	if err != nil {
		return fmt.Errorf("zstd decompress: %w", err)
	}

	if len(out) != len(dst) {
		return ErrSizeMismatch
	}

	if &out[0] != &dst[0] {
		copy(dst, out)
	}

	return nil
}
