package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEOL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"unix unchanged", "a\nb\n", "a\nb\n"},
		{"crlf collapsed", "a\r\nb\r\n", "a\nb\n"},
		{"stray cr", "a\rb\r", "a\nb\n"},
		{"mixed", "a\r\nb\rc\n", "a\nb\nc\n"},
		{"no newlines", "abc", "abc"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeEOL([]byte(tc.in))
			require.Equal(t, tc.want, string(got))
		})
	}
}
