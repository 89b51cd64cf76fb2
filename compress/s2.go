package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/qgdtools/qgd/format"
)

// S2 is an alternate chunk codec built on klauspost/compress/s2, offered
// alongside LZ4 (builder.WithCompression) for projects that prefer S2's
// speed/ratio tradeoff. S2's block format is self-describing (it embeds
// the decoded length as a varint), so DecompressInto only needs to verify
// the result matches dst's length.
type S2 struct{}

var _ Codec = S2{}

func (S2) Type() format.CompressionType { return format.CompressionS2 }

// Compress implements Codec.
func (S2) Compress(src []byte) ([]byte, error) {
	return s2.Encode(nil, src), nil
}

// DecompressInto implements Codec.
func (S2) DecompressInto(src, dst []byte) error {
	if len(dst) == 0 {
		return nil
	}

	out, err := s2.Decode(make([]byte, 0, len(dst)), src)
	if err != nil {
		return fmt.Errorf("s2 decompress: %w", err)
	}

	if len(out) != len(dst) {
		return ErrSizeMismatch
	}

	copy(dst, out)

	return nil
}
