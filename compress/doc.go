// Package compress provides the chunk body codecs: None, LZ4 (the
// default), S2, and Zstd. Each codec compresses an entire chunk body as
// a single block; the caller always knows the exact uncompressed size
// ahead of decompression, since format.ChunkHeader records it.
package compress
