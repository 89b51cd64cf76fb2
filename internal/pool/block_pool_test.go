package pool

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockPool_AcquireRelease(t *testing.T) {
	p := NewBlockPool(1024)

	block, err := p.Acquire(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, block.Bytes(), 100)

	block.Release()
}

func TestBlockPool_Backpressure(t *testing.T) {
	p := NewBlockPool(100)

	first, err := p.Acquire(context.Background(), 100)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Acquire(ctx, 1)
	require.Error(t, err)

	first.Release()

	second, err := p.Acquire(context.Background(), 50)
	require.NoError(t, err)
	second.Release()
}

func TestBlockPool_OversizedRequest(t *testing.T) {
	p := NewBlockPool(64)

	block, err := p.Acquire(context.Background(), 1024)
	require.NoError(t, err)
	require.Len(t, block.Bytes(), 1024)
	block.Release()
}

func TestBlock_RetainRelease(t *testing.T) {
	p := NewBlockPool(1024)

	block, err := p.Acquire(context.Background(), 16)
	require.NoError(t, err)

	var wg sync.WaitGroup
	block.Retain()
	wg.Add(1)
	go func() {
		defer wg.Done()
		block.Release()
	}()

	block.Release()
	wg.Wait()
}
