package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu        sync.Mutex
	pages     int
	failPage  int
	requested []int
}

func (f *fakeFetcher) FetchPage(_ context.Context, endpoint string, pageNum int) ([]byte, int, error) {
	f.mu.Lock()
	f.requested = append(f.requested, pageNum)
	f.mu.Unlock()

	if pageNum == f.failPage {
		return nil, 0, errors.New("boom")
	}
	return []byte(fmt.Sprintf("%s:%d", endpoint, pageNum)), f.pages, nil
}

func TestNewBatchFetcher_Defaults(t *testing.T) {
	bf := NewBatchFetcher(&fakeFetcher{}, Config{})
	assert.Equal(t, DefaultConfig().MaxConcurrency, bf.config.MaxConcurrency)
	assert.Equal(t, DefaultConfig().Timeout, bf.config.Timeout)
}

func TestFetchAllPages_SinglePage(t *testing.T) {
	f := &fakeFetcher{pages: 1}
	pages, err := NewBatchFetcher(f, DefaultConfig()).FetchAllPages(context.Background(), "articles")

	require.NoError(t, err)
	assert.Equal(t, map[int][]byte{1: []byte("articles:1")}, pages)
	assert.Equal(t, []int{1}, f.requested)
}

func TestFetchAllPages_MultiplePages(t *testing.T) {
	f := &fakeFetcher{pages: 7}
	pages, err := NewBatchFetcher(f, Config{MaxConcurrency: 3}).FetchAllPages(context.Background(), "projects")

	require.NoError(t, err)
	require.Len(t, pages, 7)
	for n := 1; n <= 7; n++ {
		assert.Equal(t, fmt.Sprintf("projects:%d", n), string(pages[n]))
	}
	assert.Len(t, f.requested, 7)
}

func TestFetchAllPages_PartialFailure(t *testing.T) {
	f := &fakeFetcher{pages: 4, failPage: 3}
	pages, err := NewBatchFetcher(f, Config{MaxConcurrency: 2}).FetchAllPages(context.Background(), "steps")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "partial data (3/4 pages)")
	assert.Len(t, pages, 3)
	assert.NotContains(t, pages, 3)
}

func TestFetchAllPages_FirstPageFails(t *testing.T) {
	f := &fakeFetcher{pages: 3, failPage: 1}
	pages, err := NewBatchFetcher(f, DefaultConfig()).FetchAllPages(context.Background(), "heroes")

	require.Error(t, err)
	assert.Nil(t, pages)
}

func TestFetchAllPages_CancelledContext(t *testing.T) {
	f := &fakeFetcher{pages: 3}
	ctx, cancel := context.WithCancel(context.Background())

	bf := NewBatchFetcher(&cancelAfterFirst{fakeFetcher: f, cancel: cancel}, Config{MaxConcurrency: 1})
	pages, err := bf.FetchAllPages(ctx, "services")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, pages, 1)
}

// cancelAfterFirst cancels the parent context once page 1 has been served.
type cancelAfterFirst struct {
	*fakeFetcher
	cancel context.CancelFunc
}

func (c *cancelAfterFirst) FetchPage(ctx context.Context, endpoint string, pageNum int) ([]byte, int, error) {
	data, total, err := c.fakeFetcher.FetchPage(ctx, endpoint, pageNum)
	if pageNum == 1 {
		c.cancel()
	}
	return data, total, err
}
