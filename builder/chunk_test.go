package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkipByLines(t *testing.T) {
	offset, lines := skipByLines([]byte("ab\ncd\nef"), 6)
	require.Equal(t, 6, offset)
	require.EqualValues(t, 2, lines)
}

func TestSkipByLines_NoNewlineInBudget(t *testing.T) {
	offset, lines := skipByLines([]byte("abcdef"), 4)
	require.Equal(t, 0, offset)
	require.EqualValues(t, 0, lines)
}

func TestSkipByLines_BudgetBeyondData(t *testing.T) {
	offset, lines := skipByLines([]byte("ab\ncd"), 100)
	require.Equal(t, 3, offset)
	require.EqualValues(t, 1, lines)
}

func TestSkipOneLine(t *testing.T) {
	require.Equal(t, 4, skipOneLine([]byte("abc\ndef")))
	require.Equal(t, 3, skipOneLine([]byte("abc")))
	require.Equal(t, 0, skipOneLine([]byte("")))
}

func TestFlushChunk_WholeFilesFit(t *testing.T) {
	b := &Builder{
		pending: []record{
			{name: "a.txt", contents: []byte("hello\n")},
			{name: "b.txt", contents: []byte("world\n")},
		},
		pendingSize:     12,
		targetChunkSize: DefaultTargetChunkSize,
	}

	var captured pendingChunk
	b.writeChunkFn = func(c pendingChunk) error {
		captured = c
		return nil
	}

	require.NoError(t, b.flushChunk(100))
	require.Len(t, captured.files, 2)
	require.Equal(t, 12, captured.totalSize)
	require.Empty(t, b.pending)
	require.Equal(t, 0, b.pendingSize)
}

func TestFlushChunk_SplitsOnLineBoundary(t *testing.T) {
	b := &Builder{
		pending: []record{
			{name: "a.txt", contents: []byte("12345\n67890\nabcde\n")},
		},
		pendingSize:     18,
		targetChunkSize: DefaultTargetChunkSize,
	}

	var captured pendingChunk
	b.writeChunkFn = func(c pendingChunk) error {
		captured = c
		return nil
	}

	require.NoError(t, b.flushChunk(15))
	require.Len(t, captured.files, 1)
	require.Equal(t, "12345\n67890\n", string(captured.files[0].contents))
	require.Len(t, b.pending, 1)
	require.Equal(t, uint32(2), b.pending[0].startLine)
	require.Equal(t, "abcde\n", string(b.pending[0].contents))
}

func TestFlushChunk_OverLongLineException(t *testing.T) {
	b := &Builder{
		pending: []record{
			{name: "huge.txt", contents: []byte("0123456789\nrest\n")},
		},
		pendingSize:     16,
		targetChunkSize: DefaultTargetChunkSize,
	}

	var captured pendingChunk
	b.writeChunkFn = func(c pendingChunk) error {
		captured = c
		return nil
	}

	require.NoError(t, b.flushChunk(4))
	require.Len(t, captured.files, 1)
	require.Equal(t, "0123456789\n", string(captured.files[0].contents))
}
