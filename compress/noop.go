package compress

import "github.com/qgdtools/qgd/format"

// NoOp bypasses compression entirely, useful for debugging or for chunks
// whose data is already incompressible.
type NoOp struct{}

var _ Codec = NoOp{}

func (NoOp) Type() format.CompressionType { return format.CompressionNone }

// Compress implements Codec.
func (NoOp) Compress(src []byte) ([]byte, error) {
	return src, nil
}

// DecompressInto implements Codec.
func (NoOp) DecompressInto(src, dst []byte) error {
	if len(src) != len(dst) {
		return ErrSizeMismatch
	}

	copy(dst, src)

	return nil
}
