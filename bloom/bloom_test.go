package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexSize(t *testing.T) {
	require.Equal(t, 0, IndexSize(1000))
	require.Equal(t, 0, IndexSize(50*1023))
	require.Equal(t, 1024, IndexSize(50*1024))
	require.Equal(t, 2000, IndexSize(100000))
}

func TestIterations_Bounds(t *testing.T) {
	require.Equal(t, MinIterations, Iterations(1024, 0))
	require.GreaterOrEqual(t, Iterations(1024, 1), MinIterations)
	require.LessOrEqual(t, Iterations(1024, 1), MaxIterations)
	require.Equal(t, MaxIterations, Iterations(1024*1024, 1))
}

func TestNgram_Deterministic(t *testing.T) {
	h1 := Ngram('a', 'b', 'c', 'd')
	h2 := Ngram('a', 'b', 'c', 'd')
	require.Equal(t, h1, h2)

	h3 := Ngram('A', 'B', 'C', 'D')
	require.Equal(t, h1, h3, "case folding must make these equal")
}

func TestUpdateTest_RoundTrip(t *testing.T) {
	index := make([]byte, 1024)
	hash := Ngram('t', 'e', 's', 't')
	require.NotZero(t, hash)

	Update(index, hash, 4)
	require.True(t, Test(index, hash, 4))

	other := Ngram('z', 'z', 'z', 'z')
	if other != 0 && other != hash {
		// a false positive here is allowed by bloom semantics but
		// exceedingly unlikely for these two specific 4-grams.
		_ = Test(index, other, 4)
	}
}

func TestTest_EmptyIndexAlwaysTrue(t *testing.T) {
	require.True(t, Test(nil, 12345, 4))
}

func TestWalkNgrams_SkipsLineCrossing(t *testing.T) {
	var hashes []uint32
	WalkNgrams([]byte("ab\ncdef"), func(h uint32) {
		hashes = append(hashes, h)
	})

	// "ab\nc", "b\ncd", "\ncde" all cross the newline and must be skipped;
	// only "cdef" is a valid in-line 4-gram.
	want := Ngram('c', 'd', 'e', 'f')
	require.Contains(t, hashes, want)
	for _, h := range hashes {
		require.NotEqual(t, Ngram('a', 'b', '\n', 'c'), h)
	}
}

func TestLiteralNgrams_ShortLiteralReturnsNil(t *testing.T) {
	require.Nil(t, LiteralNgrams([]byte("ab")))
}

func TestCollector_BuildSoundness(t *testing.T) {
	data := []byte("the quick brown fox jumps over")

	c := NewCollector()
	WalkNgrams(data, c.Add)
	require.Positive(t, c.Len())

	index, iterations := c.Build(IndexSize(MinIndexBytes * IndexDivisor))
	for _, h := range c.Hashes() {
		require.True(t, Test(index, h, iterations))
	}
}

func TestCollector_ZeroIndexSizeOmitsArray(t *testing.T) {
	c := NewCollector()
	c.Add(Ngram('a', 'b', 'c', 'd'))

	index, iterations := c.Build(0)
	require.Nil(t, index)
	require.GreaterOrEqual(t, iterations, MinIterations)
}
