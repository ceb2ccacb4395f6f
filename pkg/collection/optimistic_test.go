package collection

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyFetcher() Fetcher {
	return FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		return Page{}, nil
	})
}

func TestCreateOptimisticRoundTrip(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "reply", Parent: "q1"}

	var sawPending bool
	coord := NewCoordinator(store, CoordinatorConfig{
		Author: "alice",
		Create: func(ctx context.Context, key Key, content string) (Item, error) {
			// The provisional entry must already be visible while the
			// network call is still running.
			snap := store.Snapshot(key)
			sawPending = len(snap.Pending) == 1 && snap.Pending[0].Content == content
			return &testItem{id: "server-1", content: content}, nil
		},
	})

	item, err := coord.Create(context.Background(), key, "hello")
	require.NoError(t, err)
	assert.True(t, sawPending, "provisional entry was not visible during the create call")
	assert.Equal(t, "server-1", item.ItemID())

	snap := store.Snapshot(key)
	assert.Empty(t, snap.Pending)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "server-1", snap.Items[0].ItemID())
}

func TestCreateFailureRollsBack(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "reply", Parent: "q1"}

	coord := NewCoordinator(store, CoordinatorConfig{
		Create: func(ctx context.Context, key Key, content string) (Item, error) {
			return nil, fmt.Errorf("rejected")
		},
	})

	_, err := coord.Create(context.Background(), key, "hello")
	require.Error(t, err)

	snap := store.Snapshot(key)
	assert.Empty(t, snap.Pending)
	assert.Empty(t, snap.Items)
	assert.Equal(t, "rejected", snap.MutationError)
}

func TestCreateEmptyContentRejectedBeforeNetwork(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "reply", Parent: "q1"}

	called := false
	coord := NewCoordinator(store, CoordinatorConfig{
		Create: func(ctx context.Context, key Key, content string) (Item, error) {
			called = true
			return nil, nil
		},
	})

	_, err := coord.Create(context.Background(), key, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.False(t, called, "network call issued for invalid payload")
	assert.Empty(t, store.Snapshot(key).Pending)
}

func TestCreateConcurrentIdenticalContent(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "reply", Parent: "q1"}

	n := 0
	coord := NewCoordinator(store, CoordinatorConfig{
		Create: func(ctx context.Context, key Key, content string) (Item, error) {
			n++
			return &testItem{id: fmt.Sprintf("server-%d", n), content: content}, nil
		},
	})

	ctx := context.Background()
	_, err := coord.Create(ctx, key, "same text")
	require.NoError(t, err)
	_, err = coord.Create(ctx, key, "same text")
	require.NoError(t, err)

	// Correlation-id matching keeps identical submissions apart: both land,
	// nothing stays pending.
	snap := store.Snapshot(key)
	assert.Empty(t, snap.Pending)
	assert.Len(t, snap.Items, 2)
}

func TestDeleteConfirmedOnly(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "post", Scope: "feed"}
	store.Prepend(key, &testItem{id: "a"})

	t.Run("success removes after confirmation", func(t *testing.T) {
		var presentDuringCall bool
		coord := NewCoordinator(store, CoordinatorConfig{
			Delete: func(ctx context.Context, key Key, id string) error {
				presentDuringCall = len(store.Snapshot(key).Items) == 1
				return nil
			},
		})

		require.NoError(t, coord.Delete(context.Background(), key, "a"))
		assert.True(t, presentDuringCall, "item removed before server confirmation")
		assert.Empty(t, store.Snapshot(key).Items)
	})

	t.Run("failure leaves the item", func(t *testing.T) {
		store.Prepend(key, &testItem{id: "b"})
		coord := NewCoordinator(store, CoordinatorConfig{
			Delete: func(ctx context.Context, key Key, id string) error {
				return fmt.Errorf("forbidden")
			},
		})

		require.Error(t, coord.Delete(context.Background(), key, "b"))
		snap := store.Snapshot(key)
		assert.Len(t, snap.Items, 1)
		assert.Equal(t, "forbidden", snap.MutationError)
	})
}

func TestDeleteInFlightGuard(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "post", Scope: "feed"}
	store.Prepend(key, &testItem{id: "a"})

	release := make(chan struct{})
	started := make(chan struct{})
	coord := NewCoordinator(store, CoordinatorConfig{
		Delete: func(ctx context.Context, key Key, id string) error {
			close(started)
			<-release
			return nil
		},
	})

	done := make(chan error, 1)
	go func() { done <- coord.Delete(context.Background(), key, "a") }()
	<-started

	assert.True(t, coord.IsDeleting(key, "a"))
	assert.ErrorIs(t, coord.Delete(context.Background(), key, "a"), ErrDeleteInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, coord.IsDeleting(key, "a"))
}

func TestVoteToggle(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "question", Parent: "g1"}
	store.Prepend(key, &testItem{id: "q1", up: 5, down: 2})

	coord := NewCoordinator(store, CoordinatorConfig{
		Vote: func(ctx context.Context, key Key, id, voteType string) error { return nil },
	})
	ctx := context.Background()

	votes := func() (int, int, string) {
		item := store.Snapshot(key).Items[0].(*testItem)
		return item.up, item.down, item.vote
	}

	// First upvote.
	require.NoError(t, coord.Vote(ctx, key, "q1", VoteUp))
	up, down, vote := votes()
	assert.Equal(t, 6, up)
	assert.Equal(t, 2, down)
	assert.Equal(t, VoteUp, vote)

	// Same direction again retracts.
	require.NoError(t, coord.Vote(ctx, key, "q1", VoteUp))
	up, down, vote = votes()
	assert.Equal(t, 5, up)
	assert.Equal(t, 2, down)
	assert.Equal(t, VoteNone, vote)

	// Upvote then switch to downvote moves both counters in one step.
	require.NoError(t, coord.Vote(ctx, key, "q1", VoteUp))
	require.NoError(t, coord.Vote(ctx, key, "q1", VoteDown))
	up, down, vote = votes()
	assert.Equal(t, 5, up)
	assert.Equal(t, 3, down)
	assert.Equal(t, VoteDown, vote)
}

func TestVoteRollbackOnFailure(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "question", Parent: "g1"}
	store.Prepend(key, &testItem{id: "q1", up: 5, down: 2, vote: VoteNone})

	coord := NewCoordinator(store, CoordinatorConfig{
		Vote: func(ctx context.Context, key Key, id, voteType string) error {
			return fmt.Errorf("network down")
		},
	})

	require.Error(t, coord.Vote(context.Background(), key, "q1", VoteUp))

	item := store.Snapshot(key).Items[0].(*testItem)
	assert.Equal(t, 5, item.up)
	assert.Equal(t, 2, item.down)
	assert.Equal(t, VoteNone, item.vote)
	assert.Equal(t, "network down", store.Snapshot(key).MutationError)
}

func TestVoteOnNonVotable(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	key := Key{Entity: "notification"}

	coord := NewCoordinator(store, CoordinatorConfig{
		Vote: func(ctx context.Context, key Key, id, voteType string) error { return nil },
	})

	err := coord.Vote(context.Background(), key, "missing", VoteUp)
	assert.ErrorIs(t, err, ErrNotVotable)
}

func TestFollowBroadcastsInvalidation(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	broadcaster := NewBroadcaster()

	var invalidated []string
	unsub := broadcaster.Subscribe(func(userID string) {
		invalidated = append(invalidated, userID)
	})
	defer unsub()

	coord := NewCoordinator(store, CoordinatorConfig{
		Follow:        func(ctx context.Context, userID string, follow bool) error { return nil },
		FollowChanged: broadcaster,
	})

	require.NoError(t, coord.Follow(context.Background(), "u42", true))
	assert.Equal(t, []string{"u42"}, invalidated)
}

func TestFollowFailureDoesNotBroadcast(t *testing.T) {
	broadcaster := NewBroadcaster()
	fired := false
	unsub := broadcaster.Subscribe(func(string) { fired = true })
	defer unsub()

	coord := NewCoordinator(NewStore(emptyFetcher(), 10), CoordinatorConfig{
		Follow:        func(ctx context.Context, userID string, follow bool) error { return fmt.Errorf("nope") },
		FollowChanged: broadcaster,
	})

	require.Error(t, coord.Follow(context.Background(), "u42", true))
	assert.False(t, fired)
}

func TestApplyVote(t *testing.T) {
	tests := []struct {
		name                 string
		up, down             int
		current, next        string
		wantUp, wantDown     int
		wantVote             string
	}{
		{"fresh upvote", 0, 0, VoteNone, VoteUp, 1, 0, VoteUp},
		{"fresh downvote", 0, 0, VoteNone, VoteDown, 0, 1, VoteDown},
		{"retract upvote", 3, 1, VoteUp, VoteUp, 2, 1, VoteNone},
		{"retract downvote", 3, 1, VoteDown, VoteDown, 3, 0, VoteNone},
		{"switch up to down", 3, 1, VoteUp, VoteDown, 2, 2, VoteDown},
		{"switch down to up", 3, 1, VoteDown, VoteUp, 4, 0, VoteUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down, vote := applyVote(tt.up, tt.down, tt.current, tt.next)
			assert.Equal(t, tt.wantUp, up)
			assert.Equal(t, tt.wantDown, down)
			assert.Equal(t, tt.wantVote, vote)
		})
	}
}
