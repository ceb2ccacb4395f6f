package collection

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	id      string
	content string
	up      int
	down    int
	vote    string
}

func (t *testItem) ItemID() string { return t.id }

func (t *testItem) GetVotes() (int, int, string) { return t.up, t.down, t.vote }

func (t *testItem) SetVotes(up, down int, vote string) {
	t.up, t.down, t.vote = up, down, vote
}

// pagedFetcher serves a fixed number of items per page
type pagedFetcher struct {
	mu        sync.Mutex
	pageSizes map[int]int // page -> item count returned
	calls     int
	failWith  error
}

func (f *pagedFetcher) FetchPage(ctx context.Context, key Key, page, limit int) (Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.failWith != nil {
		return Page{}, f.failWith
	}

	count, ok := f.pageSizes[page]
	if !ok {
		return Page{}, nil
	}
	items := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, &testItem{id: fmt.Sprintf("p%d-i%d", page, i)})
	}
	return Page{Items: items}, nil
}

func (f *pagedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestFetchPageInfiniteScroll(t *testing.T) {
	// 10 items for pages 1-3, 4 items for page 4: the list ends at 34.
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 10, 2: 10, 3: 10, 4: 4}}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}

	ctx := context.Background()
	for page := 1; page <= 4; page++ {
		require.NoError(t, store.FetchPage(ctx, key, page))
	}

	snap := store.Snapshot(key)
	assert.Len(t, snap.Items, 34)
	assert.False(t, snap.HasMore)
	assert.Equal(t, 4, snap.CurrentPage)
}

func TestFetchPageNoDuplicates(t *testing.T) {
	overlap := FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		// Pages 1 and 2 share an item, as happens when a new record shifts
		// the server-side window between fetches.
		if page == 1 {
			return Page{Items: []Item{
				&testItem{id: "a"}, &testItem{id: "b"}, &testItem{id: "c"},
			}}, nil
		}
		return Page{Items: []Item{
			&testItem{id: "c"}, &testItem{id: "d"}, &testItem{id: "e"},
		}}, nil
	})
	store := NewStore(overlap, 3)
	key := Key{Entity: "reply", Parent: "q1"}

	ctx := context.Background()
	require.NoError(t, store.FetchPage(ctx, key, 1))
	require.NoError(t, store.FetchPage(ctx, key, 2))

	snap := store.Snapshot(key)
	seen := make(map[string]bool)
	for _, it := range snap.Items {
		assert.False(t, seen[it.ItemID()], "duplicate id %s", it.ItemID())
		seen[it.ItemID()] = true
	}
	assert.Len(t, snap.Items, 5)
	// Server order preserved for the appended page.
	assert.Equal(t, "d", snap.Items[3].ItemID())
}

func TestFetchPageTotalPagesSignalsExhaustion(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		return Page{
			Items:      []Item{&testItem{id: fmt.Sprintf("p%d", page)}},
			TotalPages: 2,
		}, nil
	})
	store := NewStore(fetcher, 10)
	key := Key{Entity: "question", Parent: "g1"}

	ctx := context.Background()
	require.NoError(t, store.FetchPage(ctx, key, 1))
	assert.True(t, store.Snapshot(key).HasMore)

	require.NoError(t, store.FetchPage(ctx, key, 2))
	assert.False(t, store.Snapshot(key).HasMore)
}

func TestFetchPageLoadingGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetcher := FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		close(started)
		<-release
		return Page{Items: []Item{&testItem{id: "a"}}}, nil
	})
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- store.FetchPage(ctx, key, 1) }()
	<-started

	// A second fetch for the same key while one is in flight is a no-op: no
	// network call, no state change.
	require.NoError(t, store.FetchPage(ctx, key, 2))
	snap := store.Snapshot(key)
	assert.True(t, snap.Loading)
	assert.Equal(t, 0, snap.CurrentPage)

	close(release)
	require.NoError(t, <-done)

	snap = store.Snapshot(key)
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Len(t, snap.Items, 1)
}

func TestFetchPageMonotonicCounter(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 10, 2: 10, 3: 10}}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}

	ctx := context.Background()
	last := 0
	for page := 1; page <= 3; page++ {
		require.NoError(t, store.FetchPage(ctx, key, page))
		current := store.Snapshot(key).CurrentPage
		assert.GreaterOrEqual(t, current, last)
		last = current
	}

	store.Reset(key)
	assert.Equal(t, 0, store.Snapshot(key).CurrentPage)
}

func TestFetchPageFailureStopsScrolling(t *testing.T) {
	fetcher := &pagedFetcher{failWith: fmt.Errorf("boom")}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}

	err := store.FetchPage(context.Background(), key, 1)
	require.Error(t, err)

	snap := store.Snapshot(key)
	assert.False(t, snap.HasMore)
	assert.False(t, snap.Loading)
	assert.Equal(t, "boom", snap.Error)
}

func TestFetchPageClearsErrorOnNextFetch(t *testing.T) {
	fetcher := &pagedFetcher{failWith: fmt.Errorf("boom"), pageSizes: map[int]int{1: 2}}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}

	require.Error(t, store.FetchPage(context.Background(), key, 1))

	fetcher.mu.Lock()
	fetcher.failWith = nil
	fetcher.mu.Unlock()

	require.NoError(t, store.FetchPage(context.Background(), key, 1))
	snap := store.Snapshot(key)
	assert.Empty(t, snap.Error)
	assert.Len(t, snap.Items, 2)
}

func TestResetBoundary(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 10}}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "user", Parent: "u1"}

	require.NoError(t, store.FetchPage(context.Background(), key, 1))
	require.Len(t, store.Snapshot(key).Items, 10)

	store.Reset(key)

	snap := store.Snapshot(key)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Pending)
	assert.Equal(t, 0, snap.CurrentPage)
	assert.True(t, snap.HasMore)
}

func TestResetDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetcher := FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		close(started)
		<-release
		return Page{Items: []Item{&testItem{id: "stale"}}}, nil
	})
	store := NewStore(fetcher, 10)
	key := Key{Entity: "reply", Parent: "q1"}

	done := make(chan error, 1)
	go func() { done <- store.FetchPage(context.Background(), key, 1) }()
	<-started

	// Navigating away resets the key while the fetch is still in flight.
	store.Reset(key)
	close(release)
	require.NoError(t, <-done)

	// The late response must not write into the fresh state.
	snap := store.Snapshot(key)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.CurrentPage)
	assert.False(t, snap.Loading)
}

func TestPageOneReplacesList(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 3, 2: 3}}
	store := NewStore(fetcher, 3)
	key := Key{Entity: "post", Scope: "feed"}

	ctx := context.Background()
	require.NoError(t, store.FetchPage(ctx, key, 1))
	require.NoError(t, store.FetchPage(ctx, key, 2))
	require.Len(t, store.Snapshot(key).Items, 6)

	// Pull-to-refresh: page 1 replaces everything.
	require.NoError(t, store.FetchPage(ctx, key, 1))
	assert.Len(t, store.Snapshot(key).Items, 3)
}

func TestDistinctKeysAreIsolated(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 5, 2: 5}}
	store := NewStore(fetcher, 5)
	keyA := Key{Entity: "reply", Parent: "q1"}
	keyB := Key{Entity: "reply", Parent: "q2"}

	ctx := context.Background()
	require.NoError(t, store.FetchPage(ctx, keyA, 1))
	require.NoError(t, store.FetchPage(ctx, keyA, 2))
	require.NoError(t, store.FetchPage(ctx, keyB, 1))

	assert.Equal(t, 2, store.Snapshot(keyA).CurrentPage)
	assert.Equal(t, 1, store.Snapshot(keyB).CurrentPage)

	store.Reset(keyA)
	assert.Equal(t, 0, store.Snapshot(keyA).CurrentPage)
	assert.Equal(t, 1, store.Snapshot(keyB).CurrentPage)
}

func TestCounters(t *testing.T) {
	store := NewStore(FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		return Page{}, nil
	}), 10)

	store.SetCounter(CounterUnreadNotifications, 3)
	assert.Equal(t, 4, store.AdjustCounter(CounterUnreadNotifications, 1))
	assert.Equal(t, 4, store.Counter(CounterUnreadNotifications))

	// Counters never go negative.
	assert.Equal(t, 0, store.AdjustCounter(CounterUnreadNotifications, -10))
}
