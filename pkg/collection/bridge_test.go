package collection

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-process EventSource for driving the bridge
type fakeSource struct {
	listeners map[string][]func(interface{})
}

func newFakeSource() *fakeSource {
	return &fakeSource{listeners: make(map[string][]func(interface{}))}
}

func (f *fakeSource) On(event string, callback func(payload interface{})) func() {
	f.listeners[event] = append(f.listeners[event], callback)
	return func() {}
}

func (f *fakeSource) emit(event string, payload interface{}) {
	for _, cb := range f.listeners[event] {
		cb(payload)
	}
}

func TestBridgeNotificationPrependWithoutFetch(t *testing.T) {
	fetches := 0
	store := NewStore(FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		fetches++
		return Page{}, nil
	}), 10)
	store.SetCounter(CounterUnreadNotifications, 3)

	var toast string
	source := newFakeSource()
	key := Key{Entity: "notification"}
	bridge := NewBridge(store, source, BridgeConfig{
		NotificationsKey: key,
		DecodeNotification: func(payload interface{}) (Item, bool) {
			m, ok := payload.(map[string]interface{})
			if !ok {
				return nil, false
			}
			id, _ := m["_id"].(string)
			return &testItem{id: id}, true
		},
		Toast: func(message string) { toast = message },
	})
	bridge.Start(context.Background())
	defer bridge.Stop()

	source.emit(EventNewNotification, map[string]interface{}{
		"_id":     "n99",
		"message": "alice mentioned you",
	})

	assert.Equal(t, 4, store.Counter(CounterUnreadNotifications))
	snap := store.Snapshot(key)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "n99", snap.Items[0].ItemID())
	assert.Equal(t, "alice mentioned you", toast)
	assert.Zero(t, fetches, "pushed notification must not trigger a page fetch")
}

func TestBridgeDropsUndecodableNotification(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	source := newFakeSource()
	key := Key{Entity: "notification"}

	bridge := NewBridge(store, source, BridgeConfig{
		NotificationsKey: key,
		DecodeNotification: func(payload interface{}) (Item, bool) {
			return nil, false
		},
	})
	bridge.Start(context.Background())
	defer bridge.Stop()

	source.emit(EventNewNotification, "garbage")

	assert.Empty(t, store.Snapshot(key).Items)
	assert.Equal(t, 0, store.Counter(CounterUnreadNotifications))
}

func TestBridgeMessageEventRefreshesOpenConversation(t *testing.T) {
	messagesFetched := 0
	store := NewStore(FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		if key.Entity == "message" {
			messagesFetched++
		}
		return Page{}, nil
	}), 10)

	source := newFakeSource()
	bridge := NewBridge(store, source, BridgeConfig{
		ActiveConversation: func() string { return "c1" },
		MessagesKey: func(conversationID string) Key {
			return Key{Entity: "message", Parent: conversationID}
		},
		UnreadConversationCount: func(ctx context.Context) (int, error) { return 2, nil },
	})
	bridge.Start(context.Background())
	defer bridge.Stop()

	// Event for the open conversation: counter patched, page 1 refetched.
	source.emit(EventNewMessage, map[string]interface{}{"conversation_id": "c1"})
	assert.Equal(t, 2, store.Counter(CounterUnreadConversations))
	assert.Equal(t, 1, messagesFetched)

	// Event for a different conversation: only the counter moves.
	source.emit(EventNewMessage, map[string]interface{}{"conversation_id": "c2"})
	assert.Equal(t, 1, messagesFetched)
}

func TestBridgeMessageEventWithNoOpenConversation(t *testing.T) {
	messagesFetched := 0
	store := NewStore(FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		messagesFetched++
		return Page{}, nil
	}), 10)

	source := newFakeSource()
	bridge := NewBridge(store, source, BridgeConfig{
		ActiveConversation:      func() string { return "" },
		MessagesKey:             func(id string) Key { return Key{Entity: "message", Parent: id} },
		UnreadConversationCount: func(ctx context.Context) (int, error) { return 5, nil },
	})
	bridge.Start(context.Background())
	defer bridge.Stop()

	source.emit(EventMarkAsRead, map[string]interface{}{"conversation_id": "c1"})

	assert.Equal(t, 5, store.Counter(CounterUnreadConversations))
	assert.Zero(t, messagesFetched)
}

func TestBridgeCounterRefetchFailureKeepsOldValue(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	store.SetCounter(CounterUnreadConversations, 7)

	source := newFakeSource()
	bridge := NewBridge(store, source, BridgeConfig{
		UnreadConversationCount: func(ctx context.Context) (int, error) {
			return 0, fmt.Errorf("timeout")
		},
	})
	bridge.Start(context.Background())
	defer bridge.Stop()

	source.emit(EventNewConversation, nil)

	assert.Equal(t, 7, store.Counter(CounterUnreadConversations))
}

func TestBridgeJoinRequestEvents(t *testing.T) {
	requestPageFetches := 0
	store := NewStore(FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		if key.Entity == "join_request" {
			requestPageFetches++
		}
		return Page{}, nil
	}), 10)

	source := newFakeSource()
	bridge := NewBridge(store, source, BridgeConfig{
		ActiveGroup: func() string { return "g1" },
		JoinRequestsKey: func(groupID string) Key {
			return Key{Entity: "join_request", Parent: groupID}
		},
		JoinRequestCount: func(ctx context.Context, groupID string) (int, error) { return 3, nil },
	})
	bridge.Start(context.Background())
	defer bridge.Stop()

	source.emit(EventNewJoinRequest, nil)
	assert.Equal(t, 1, requestPageFetches)
	assert.Equal(t, 3, store.Counter(CounterJoinRequests))

	source.emit(EventCancelJoinRequest, nil)
	assert.Equal(t, 2, requestPageFetches)
}

func TestBridgeJoinRequestIgnoredWithoutActiveGroup(t *testing.T) {
	fetches := 0
	store := NewStore(FetcherFunc(func(ctx context.Context, key Key, page, limit int) (Page, error) {
		fetches++
		return Page{}, nil
	}), 10)

	source := newFakeSource()
	bridge := NewBridge(store, source, BridgeConfig{
		ActiveGroup:      func() string { return "" },
		JoinRequestsKey:  func(groupID string) Key { return Key{Entity: "join_request", Parent: groupID} },
		JoinRequestCount: func(ctx context.Context, groupID string) (int, error) { return 3, nil },
	})
	bridge.Start(context.Background())
	defer bridge.Stop()

	source.emit(EventNewJoinRequest, nil)
	assert.Zero(t, fetches)
	assert.Equal(t, 0, store.Counter(CounterJoinRequests))
}

func TestBridgePendingQuestionCount(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	source := newFakeSource()

	bridge := NewBridge(store, source, BridgeConfig{
		ActiveGroup:          func() string { return "g1" },
		PendingQuestionCount: func(ctx context.Context, groupID string) (int, error) { return 6, nil },
	})
	bridge.Start(context.Background())
	defer bridge.Stop()

	source.emit(EventPendingQuestion, nil)
	assert.Equal(t, 6, store.Counter(CounterPendingQuestions))
}

func TestBridgeFollowBroadcastRefetchesStats(t *testing.T) {
	store := NewStore(emptyFetcher(), 10)
	source := newFakeSource()
	broadcaster := NewBroadcaster()

	var refetched []string
	bridge := NewBridge(store, source, BridgeConfig{
		FollowChanged: broadcaster,
		RefetchUserStats: func(ctx context.Context, userID string) {
			refetched = append(refetched, userID)
		},
	})
	bridge.Start(context.Background())

	broadcaster.Publish("u7")
	assert.Equal(t, []string{"u7"}, refetched)

	// After Stop the subscription is gone.
	bridge.Stop()
	broadcaster.Publish("u8")
	assert.Equal(t, []string{"u7"}, refetched)
}
