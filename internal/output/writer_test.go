package output

import (
	"bytes"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_PreservesChunkOrder(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	const n = 20
	chunks := make([]*Chunk, n)
	for i := 0; i < n; i++ {
		chunks[i] = w.Begin(i)
	}

	order := rand.Perm(n)

	var wg sync.WaitGroup
	for _, i := range order {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := chunks[i].Write([]byte{byte('a' + i)})
			require.NoError(t, err)
			require.NoError(t, w.End(chunks[i]))
		}(i)
	}

	wg.Wait()
	require.NoError(t, w.Err())

	want := make([]byte, n)
	for i := 0; i < n; i++ {
		want[i] = byte('a' + i)
	}

	require.Equal(t, want, buf.Bytes())
}

func TestWriter_EmptyChunkStillAdvances(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	c0 := w.Begin(0)
	c1 := w.Begin(1)

	_, err := c1.Write([]byte("second"))
	require.NoError(t, err)
	require.NoError(t, w.End(c1))
	require.Equal(t, "", buf.String())

	require.NoError(t, w.End(c0))
	require.Equal(t, "second", buf.String())
}
