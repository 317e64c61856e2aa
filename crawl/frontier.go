package crawl

import (
	"container/heap"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/geolens/bloom"
)

// Frontier is the link walk's URL queue with Bloom filter deduplication.
// Shallower paths are popped first, so a capped walk covers a site's
// top-level pages before its deep leaves. Safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *urlHeap
}

// NewFrontier creates a Frontier sized for n expected URLs with the
// given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &urlHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a URL to the frontier.
// Returns false if the URL has already been seen.
// Fragments are stripped first, so URLs differing only by fragment are
// duplicates.
func (f *Frontier) Push(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := stripFragment(rawURL)
	if f.seen.TestAndAdd(u) {
		return false
	}

	heap.Push(f.queue, frontierEntry{url: u, depth: pathDepth(u)})
	return true
}

// Pop returns the next URL, shallowest path first.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return "", false
	}
	entry, _ := heap.Pop(f.queue).(frontierEntry)
	return entry.url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been queued or popped.
// Fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

// pathDepth counts path segments: https://example.com/a/b has depth 2.
func pathDepth(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return 0
	}
	return strings.Count(path, "/") + 1
}

// frontierEntry is one queued URL with its precomputed path depth.
type frontierEntry struct {
	url   string
	depth int
}

// urlHeap implements heap.Interface ordered by ascending depth.
type urlHeap []frontierEntry

func (h urlHeap) Len() int { return len(h) }

// Less returns true if i is shallower than j (min-heap).
func (h urlHeap) Less(i, j int) bool {
	return h[i].depth < h[j].depth
}

func (h urlHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *urlHeap) Push(x any) {
	entry, _ := x.(frontierEntry)
	*h = append(*h, entry)
}

func (h *urlHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
