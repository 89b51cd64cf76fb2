package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qgdtools/qgd/format"
)

func allCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NoOp{},
		"LZ4":  LZ4{},
		"S2":   S2{},
		"Zstd": Zstd{},
	}
}

func TestNew(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionLZ4, format.CompressionS2, format.CompressionZstd} {
		codec, err := New(ct)
		require.NoError(t, err)
		require.Equal(t, ct, codec.Type())
	}

	_, err := New(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single_byte", []byte{0x42}},
		{"small_text", []byte("package main\n\nfunc main() {}\n")},
		{"repeated_pattern", bytes.Repeat([]byte("ABCD"), 100)},
		{"binary", []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD}},
		{"large_source_like", bytes.Repeat([]byte("func doSomething(x int) int {\n\treturn x + 1\n}\n"), 2000)},
	}

	for name, codec := range allCodecs() {
		t.Run(name, func(t *testing.T) {
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)

					dst := make([]byte, len(tc.data))
					err = codec.DecompressInto(compressed, dst)
					require.NoError(t, err)
					require.Equal(t, tc.data, dst)
				})
			}
		})
	}
}

func TestAllCodecs_SizeMismatch(t *testing.T) {
	for name, codec := range allCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress([]byte("some source text"))
			require.NoError(t, err)

			dst := make([]byte, 3)
			err = codec.DecompressInto(compressed, dst)
			require.Error(t, err)
		})
	}
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "lz4", format.CompressionLZ4.String())
	require.Equal(t, "none", format.CompressionNone.String())
	require.Equal(t, "s2", format.CompressionS2.String())
	require.Equal(t, "zstd", format.CompressionZstd.String())
	require.Equal(t, "unknown", format.CompressionType(0xFF).String())
}
