package casefold

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByte(t *testing.T) {
	require.Equal(t, byte('a'), Byte('A'))
	require.Equal(t, byte('z'), Byte('Z'))
	require.Equal(t, byte('a'), Byte('a'))
	require.Equal(t, byte('5'), Byte('5'))
	require.Equal(t, byte('_'), Byte('_'))
}

func TestSlice(t *testing.T) {
	require.Equal(t, []byte("hello world"), Slice([]byte("Hello World")))
}

func TestAppend(t *testing.T) {
	dst := []byte("prefix:")
	got := Append(dst, []byte("MiXeD"))
	require.Equal(t, "prefix:mixed", string(got))
}

func TestEqual(t *testing.T) {
	require.True(t, Equal([]byte("Hello"), []byte("hello")))
	require.False(t, Equal([]byte("Hello"), []byte("World")))
	require.False(t, Equal([]byte("Hi"), []byte("Hii")))
}
