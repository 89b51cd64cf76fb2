// Package format describes the on-disk byte layout of a .qgd archive: the
// file-level header, the per-chunk header, and the fixed-size file header
// embedded in every chunk body. All integer fields are little-endian.
// Every header has an explicit Parse/Bytes pair rather than an unsafe
// struct cast, so the layout stays stable regardless of the host's
// struct alignment rules.
package format

import (
	"encoding/binary"
	"errors"
)

// Magic is the 4-byte prefix written at the start of every .qgd data file.
const Magic = "QGD0"

// HeaderSize is the size in bytes of the data-file header.
const HeaderSize = len(Magic)

// ErrBadMagic is returned when a data file does not start with Magic.
var ErrBadMagic = errors.New("format: bad magic, not a qgd data file")

// ReadHeader validates the leading magic bytes of a data file.
func ReadHeader(b []byte) error {
	if len(b) < HeaderSize || string(b[:HeaderSize]) != Magic {
		return ErrBadMagic
	}

	return nil
}

// WriteHeader returns the HeaderSize-byte file header.
func WriteHeader() []byte {
	return []byte(Magic)
}

// CompressionType identifies the codec used to compress a chunk's body.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionLZ4  CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionZstd CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionS2:
		return "s2"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ChunkHeaderSize is the on-disk size in bytes of a ChunkHeader.
const ChunkHeaderSize = 4 + 4 + 4 + 4 + 4 + 1

// ChunkHeader precedes the index bytes and compressed payload of every chunk
// record in a data file.
type ChunkHeader struct {
	FileCount           uint32
	UncompressedSize    uint32
	CompressedSize      uint32
	IndexSize           uint32
	IndexHashIterations uint32
	Compression         CompressionType
}

// Bytes serializes the header into ChunkHeaderSize bytes.
func (h ChunkHeader) Bytes() []byte {
	b := make([]byte, ChunkHeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.FileCount)
	binary.LittleEndian.PutUint32(b[4:8], h.UncompressedSize)
	binary.LittleEndian.PutUint32(b[8:12], h.CompressedSize)
	binary.LittleEndian.PutUint32(b[12:16], h.IndexSize)
	binary.LittleEndian.PutUint32(b[16:20], h.IndexHashIterations)
	b[20] = byte(h.Compression)

	return b
}

// ErrShortChunkHeader is returned when fewer than ChunkHeaderSize bytes are
// available to parse a chunk header.
var ErrShortChunkHeader = errors.New("format: short chunk header")

// ParseChunkHeader decodes a ChunkHeader from its on-disk representation.
func ParseChunkHeader(b []byte) (ChunkHeader, error) {
	if len(b) < ChunkHeaderSize {
		return ChunkHeader{}, ErrShortChunkHeader
	}

	return ChunkHeader{
		FileCount:           binary.LittleEndian.Uint32(b[0:4]),
		UncompressedSize:    binary.LittleEndian.Uint32(b[4:8]),
		CompressedSize:      binary.LittleEndian.Uint32(b[8:12]),
		IndexSize:           binary.LittleEndian.Uint32(b[12:16]),
		IndexHashIterations: binary.LittleEndian.Uint32(b[16:20]),
		Compression:         CompressionType(b[20]),
	}, nil
}

// ChunkFileHeaderSize is the on-disk size in bytes of a ChunkFileHeader.
const ChunkFileHeaderSize = 4 + 2 + 4 + 4 + 4 + 4 + 8 + 8

// ChunkFileHeader describes one file-record fragment stored within a chunk
// body: its name, its data range, and its original metadata. FileCount of
// these headers precede the names region and data region in a chunk body.
type ChunkFileHeader struct {
	NameOffset uint32
	NameLength uint16
	DataOffset uint32
	DataSize   uint32
	StartLine  uint32
	Reserved   uint32
	FileSize   uint64
	TimeStamp  uint64
}

// Bytes serializes the header into ChunkFileHeaderSize bytes.
func (h ChunkFileHeader) Bytes() []byte {
	b := make([]byte, ChunkFileHeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.NameOffset)
	binary.LittleEndian.PutUint16(b[4:6], h.NameLength)
	binary.LittleEndian.PutUint32(b[6:10], h.DataOffset)
	binary.LittleEndian.PutUint32(b[10:14], h.DataSize)
	binary.LittleEndian.PutUint32(b[14:18], h.StartLine)
	binary.LittleEndian.PutUint32(b[18:22], h.Reserved)
	binary.LittleEndian.PutUint64(b[22:30], h.FileSize)
	binary.LittleEndian.PutUint64(b[30:38], h.TimeStamp)

	return b
}

// ParseChunkFileHeader decodes a ChunkFileHeader from its on-disk
// representation.
func ParseChunkFileHeader(b []byte) ChunkFileHeader {
	return ChunkFileHeader{
		NameOffset: binary.LittleEndian.Uint32(b[0:4]),
		NameLength: binary.LittleEndian.Uint16(b[4:6]),
		DataOffset: binary.LittleEndian.Uint32(b[6:10]),
		DataSize:   binary.LittleEndian.Uint32(b[10:14]),
		StartLine:  binary.LittleEndian.Uint32(b[14:18]),
		Reserved:   binary.LittleEndian.Uint32(b[18:22]),
		FileSize:   binary.LittleEndian.Uint64(b[22:30]),
		TimeStamp:  binary.LittleEndian.Uint64(b[30:38]),
	}
}
