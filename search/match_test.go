package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatMatch_Default(t *testing.T) {
	m := Match{Path: "src/foo.go", Line: 42, Column: 7, Text: "func Foo() {"}

	got := FormatMatch(m, Options{})
	require.Equal(t, "src/foo.go:42: func Foo() {\n", got)
}

func TestFormatMatch_DefaultWithColumn(t *testing.T) {
	m := Match{Path: "src/foo.go", Line: 42, Column: 7, Text: "func Foo() {"}

	got := FormatMatch(m, Options{PrintColumn: true})
	require.Equal(t, "src/foo.go:42:7: func Foo() {\n", got)
}

func TestFormatMatch_VisualStudio(t *testing.T) {
	m := Match{Path: "src/foo.go", Line: 42, Column: 7, Text: "func Foo() {"}

	got := FormatMatch(m, Options{VisualStudio: true})
	require.Equal(t, "src\\foo.go(42): func Foo() {\n", got)
}

func TestFormatMatch_VisualStudioWithColumn(t *testing.T) {
	m := Match{Path: "src/foo.go", Line: 42, Column: 7, Text: "func Foo() {"}

	got := FormatMatch(m, Options{VisualStudio: true, PrintColumn: true})
	require.Equal(t, "src\\foo.go(42,7): func Foo() {\n", got)
}
