package collection

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollTriggerFetchesNextPage(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 10, 2: 10, 3: 4}}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}
	require.NoError(t, store.FetchPage(context.Background(), key, 1))

	source := NewSignalSource()
	trigger := NewScrollTrigger(store, key, source)
	trigger.Arm(context.Background())
	defer trigger.Stop()

	source.Trigger()
	assert.Equal(t, 2, store.Snapshot(key).CurrentPage)

	source.Trigger()
	snap := store.Snapshot(key)
	assert.Equal(t, 3, snap.CurrentPage)
	assert.Len(t, snap.Items, 24)
	assert.False(t, snap.HasMore)
}

func TestScrollTriggerStopsAtExhaustion(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 4}}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}
	require.NoError(t, store.FetchPage(context.Background(), key, 1))
	require.False(t, store.Snapshot(key).HasMore)

	source := NewSignalSource()
	trigger := NewScrollTrigger(store, key, source)
	trigger.Arm(context.Background())
	defer trigger.Stop()

	before := fetcher.callCount()
	source.Trigger()
	source.Trigger()
	assert.Equal(t, before, fetcher.callCount(), "trigger fetched past the end of the list")
}

func TestScrollTriggerStaysArmedAfterFailure(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 10, 2: 10}}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}
	require.NoError(t, store.FetchPage(context.Background(), key, 1))

	source := NewSignalSource()
	trigger := NewScrollTrigger(store, key, source)
	trigger.Arm(context.Background())
	defer trigger.Stop()

	fetcher.mu.Lock()
	fetcher.failWith = fmt.Errorf("boom")
	fetcher.mu.Unlock()

	source.Trigger()
	assert.Equal(t, "boom", store.Snapshot(key).Error)

	// The failure cleared hasMore, so an explicit refresh is needed before the
	// trigger acts again. After it, scrolling resumes.
	fetcher.mu.Lock()
	fetcher.failWith = nil
	fetcher.mu.Unlock()
	require.NoError(t, store.Refresh(context.Background(), key))

	source.Trigger()
	assert.Equal(t, 2, store.Snapshot(key).CurrentPage)
}

func TestScrollTriggerStopUnsubscribes(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 10, 2: 10}}
	store := NewStore(fetcher, 10)
	key := Key{Entity: "post", Scope: "feed"}
	require.NoError(t, store.FetchPage(context.Background(), key, 1))

	source := NewSignalSource()
	trigger := NewScrollTrigger(store, key, source)
	trigger.Arm(context.Background())
	trigger.Stop()

	before := fetcher.callCount()
	source.Trigger()
	assert.Equal(t, before, fetcher.callCount())
}

func TestScrollTriggersAreIndependent(t *testing.T) {
	fetcher := &pagedFetcher{pageSizes: map[int]int{1: 10, 2: 10}}
	store := NewStore(fetcher, 10)
	keyA := Key{Entity: "reply", Parent: "q1"}
	keyB := Key{Entity: "reply", Parent: "q2"}

	ctx := context.Background()
	require.NoError(t, store.FetchPage(ctx, keyA, 1))
	require.NoError(t, store.FetchPage(ctx, keyB, 1))

	sourceA := NewSignalSource()
	sourceB := NewSignalSource()
	triggerA := NewScrollTrigger(store, keyA, sourceA)
	triggerB := NewScrollTrigger(store, keyB, sourceB)
	triggerA.Arm(ctx)
	triggerB.Arm(ctx)
	defer triggerA.Stop()
	defer triggerB.Stop()

	sourceA.Trigger()

	assert.Equal(t, 2, store.Snapshot(keyA).CurrentPage)
	assert.Equal(t, 1, store.Snapshot(keyB).CurrentPage)
}
