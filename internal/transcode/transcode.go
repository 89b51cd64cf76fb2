// Package transcode normalizes a source file's bytes into canonical UTF-8
// before it enters the builder's pending buffer. Most source files are
// already UTF-8 (or plain ASCII, a UTF-8 subset) and pass through
// untouched; files carrying a BOM or invalid UTF-8 bytes are decoded from
// their best-guess legacy encoding first.
package transcode

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// legacyFallback is the charset assumed for byte sequences that are
// neither valid UTF-8 nor BOM-tagged UTF-16 — windows-1252 is a superset
// of Latin-1 and the common fallback for text without an explicit
// encoding declaration.
const legacyFallback = "windows-1252"

// ToUTF8 returns src re-encoded as UTF-8, stripping any BOM. If src is
// already valid UTF-8 with no BOM, it is returned unmodified (no copy).
func ToUTF8(src []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(src, bomUTF8):
		return src[len(bomUTF8):], nil
	case bytes.HasPrefix(src, bomUTF16LE):
		return decode("utf-16le", src[len(bomUTF16LE):])
	case bytes.HasPrefix(src, bomUTF16BE):
		return decode("utf-16be", src[len(bomUTF16BE):])
	}

	if utf8.Valid(src) {
		return src, nil
	}

	return decode(legacyFallback, src)
}

func decode(name string, src []byte) ([]byte, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, err
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), src)
	if err != nil {
		return nil, err
	}

	return out, nil
}
