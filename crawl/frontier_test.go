package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/geolens/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	// First push should succeed
	ok := f.Push("https://example.com/blog/post-1")
	assert.True(t, ok, "first push should succeed")

	// Second push of same URL should be rejected
	ok = f.Push("https://example.com/blog/post-1")
	assert.False(t, ok, "duplicate URL should be rejected")
}

func TestFrontier_Push_ignores_fragments(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	ok := f.Push("https://example.com/page#install")
	assert.True(t, ok)

	// Same page, different fragment - still a duplicate
	ok = f.Push("https://example.com/page#usage")
	assert.False(t, ok, "fragment variants point at the same page")

	ok = f.Push("https://example.com/page")
	assert.False(t, ok, "fragment-free form should also be rejected")
}

func TestFrontier_Pop_returns_shallowest_first(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	// Push URLs in random depth order
	f.Push("https://example.com/docs/guide/advanced")
	f.Push("https://example.com/about")
	f.Push("https://example.com/docs/guide")
	f.Push("https://example.com/")

	// Pop should return shallowest paths first
	url, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/about", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/docs/guide", url)

	url, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/docs/guide/advanced", url)

	// Queue should now be empty
	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push("https://example.com/a")
	assert.Equal(t, 1, f.Len())

	f.Push("https://example.com/b")
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Seen_tracks_all_pushed_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.False(t, f.Seen("https://example.com/page"), "unseen URL should return false")

	f.Push("https://example.com/page")

	assert.True(t, f.Seen("https://example.com/page"), "pushed URL should be seen")

	// Pop the URL - it should still be seen
	f.Pop()
	assert.True(t, f.Seen("https://example.com/page"), "popped URL should still be seen")
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // pushers + poppers

	// Start pushers
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Push(fmt.Sprintf("https://example.com/%d/%d", id, j))
			}
		}(i)
	}

	// Start poppers
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Pop()
				f.Len()
			}
		}()
	}

	wg.Wait()

	// Verify no panic occurred and state is consistent
	// All pushed URLs should be seen
	for i := 0; i < numGoroutines; i++ {
		for j := 0; j < numOpsPerGoroutine; j++ {
			url := fmt.Sprintf("https://example.com/%d/%d", i, j)
			assert.True(t, f.Seen(url), "pushed URL %s should be seen", url)
		}
	}
}
