// Package bloom implements the per-chunk bloom filter: 4-gram hashing,
// index sizing, and the update/test bit operations. The probe sequence is
// frozen here (see probe below) and must not diverge
// between the builder (which populates a filter) and the searcher (which
// queries one) — both call the same Update/Test functions in this package.
package bloom

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/qgdtools/qgd/casefold"
)

// MinIndexBytes is the smallest index size worth storing; below it the
// filter is omitted entirely (size 0) and treated as "always present" at
// query time.
const MinIndexBytes = 1024

// IndexDivisor relates chunk data size to bloom index size: a chunk's
// uncompressed, header/name-free data region of size n gets an index of
// n/IndexDivisor bytes, chosen so the index stays roughly a tenth of the
// compressed chunk size at typical ~5x text compression ratios.
const IndexDivisor = 50

// MaxIterations and MinIterations bound the number of probe hashes per
// inserted ngram, following the classic optimal-k bloom filter sizing
// heuristic (Cao & Irwin) clamped to a small, cheap range.
const (
	MinIterations = 1
	MaxIterations = 16
)

// IndexSize computes the bloom index size in bytes for a chunk whose
// data-only payload (excluding file headers and name bytes) is dataSize
// bytes.
func IndexSize(dataSize int) int {
	n := dataSize / IndexDivisor
	if n < MinIndexBytes {
		return 0
	}

	return n
}

// Iterations computes the number of probe hashes to use for an index of
// indexSize bytes holding ngramCount distinct nonzero 4-grams.
func Iterations(indexSize, ngramCount int) int {
	if ngramCount == 0 {
		return MinIterations
	}

	m := float64(indexSize) * 8
	n := float64(ngramCount)
	k := math.Ln2 * m / n

	switch {
	case k < MinIterations:
		return MinIterations
	case k > MaxIterations:
		return MaxIterations
	default:
		return int(k)
	}
}

// Ngram computes the 32-bit hash of a 4-gram formed from four raw bytes.
// The bytes are case-folded before hashing so build-time indexing and
// query-time lookups agree regardless of the source casing. A zero result
// is valid and is treated by callers as "no 4-gram here" — the mixer below
// can and does produce zero for some inputs, which is why collectors must
// check for it explicitly rather than relying on an all-nonzero guarantee.
func Ngram(a, b, c, d byte) uint32 {
	var buf [4]byte
	buf[0] = casefold.Byte(a)
	buf[1] = casefold.Byte(b)
	buf[2] = casefold.Byte(c)
	buf[3] = casefold.Byte(d)

	h := xxhash.Sum64(buf[:])

	return uint32(h) ^ uint32(h>>32)
}

// probe derives the i-th bit position (0-based) for hash within an index
// of size indexBytes, using Kirsch-Mitzenmacher double hashing: two
// independent values derived from hash are linearly combined per
// iteration, avoiding the cost of i independent hash functions while
// remaining a valid bloom filter construction. This probe sequence is
// frozen: builder and searcher must agree on it forever, or every
// previously-built archive becomes unsearchable.
func probe(hash uint32, i int, indexBytes int) uint32 {
	bits := uint32(indexBytes) * 8

	h1 := hash
	h2 := mix32(hash)

	return (h1 + uint32(i)*h2) % bits
}

// mix32 is a secondary, independent 32-bit mixer (splitmix-style) used to
// derive the second probe value from the primary ngram hash.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16

	if x == 0 {
		x = 1
	}

	return x
}

// Update sets the bits in index corresponding to hash, for the given
// number of probe iterations. index must be non-empty; callers with an
// omitted (size-0) index should skip calling Update entirely.
func Update(index []byte, hash uint32, iterations int) {
	for i := 0; i < iterations; i++ {
		bit := probe(hash, i, len(index))
		index[bit/8] |= 1 << (bit % 8)
	}
}

// Test reports whether every bit Update would have set for hash is
// currently set in index. An empty index (len(index) == 0) always tests
// true — a chunk small enough to skip indexing is always a candidate.
func Test(index []byte, hash uint32, iterations int) bool {
	if len(index) == 0 {
		return true
	}

	for i := 0; i < iterations; i++ {
		bit := probe(hash, i, len(index))
		if index[bit/8]&(1<<(bit%8)) == 0 {
			return false
		}
	}

	return true
}

// WalkNgrams calls fn once for every nonzero 4-gram hash formed from four
// consecutive bytes in data that do not cross a '\n'. Used both to
// populate a chunk's Collector at build time and to decompose a literal
// query into testable 4-grams at search time — using the same
// line-crossing rule in both places is what keeps Test sound.
func WalkNgrams(data []byte, fn func(hash uint32)) {
	for i := 3; i < len(data); i++ {
		a, b, c, d := data[i-3], data[i-2], data[i-1], data[i]
		if a == '\n' || b == '\n' || c == '\n' || d == '\n' {
			continue
		}

		if h := Ngram(a, b, c, d); h != 0 {
			fn(h)
		}
	}
}

// LiteralNgrams decomposes a literal search string into its constituent
// 4-gram hashes, for bloom pre-filtering ahead of a regex match. Returns
// nil if the literal is shorter than 4 bytes or produces no indexable
// 4-grams.
func LiteralNgrams(literal []byte) []uint32 {
	if len(literal) < 4 {
		return nil
	}

	out := make([]uint32, 0, len(literal)-3)
	WalkNgrams(literal, func(hash uint32) {
		out = append(out, hash)
	})

	if len(out) == 0 {
		return nil
	}

	return out
}

// Collector gathers the distinct nonzero 4-gram hashes observed in a
// chunk's data region, in preparation for building a bloom index. A plain
// Go map is enough: the structure exists only to deduplicate hashes
// before sizing Iterations and calling Update once per distinct hash.
type Collector struct {
	seen map[uint32]struct{}
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[uint32]struct{})}
}

// Add inserts a 4-gram hash into the set. Zero hashes are dropped
// intentionally: Ngram uses zero to mean "no 4-gram here".
func (c *Collector) Add(hash uint32) {
	if hash == 0 {
		return
	}

	c.seen[hash] = struct{}{}
}

// Len returns the number of distinct nonzero hashes collected so far.
func (c *Collector) Len() int {
	return len(c.seen)
}

// Build constructs a bloom index of the given size over every hash
// collected so far, sizing Iterations from the observed count.
func (c *Collector) Build(indexSize int) (index []byte, iterations int) {
	iterations = Iterations(indexSize, len(c.seen))
	if indexSize == 0 {
		return nil, iterations
	}

	index = make([]byte, indexSize)
	for hash := range c.seen {
		Update(index, hash, iterations)
	}

	return index, iterations
}

// Hashes returns the collected hashes. Intended for tests that need to
// verify soundness against Test directly.
func (c *Collector) Hashes() []uint32 {
	out := make([]uint32, 0, len(c.seen))
	for h := range c.seen {
		out = append(out, h)
	}

	return out
}
