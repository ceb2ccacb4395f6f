package collection

import (
	"context"
	"sync"

	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// Push event names the bridge reacts to. They mirror the backend's socket
// contract.
const (
	EventNewMessage        = "get_new_message"
	EventMarkAsRead        = "mark_as_read"
	EventNewNotification   = "new_notification"
	EventNewJoinRequest    = "new_join_request"
	EventCancelJoinRequest = "cancel_join_request"
	EventPendingQuestion   = "new_pending_question"
	EventNewConversation   = "create_new_conversation"
)

// Badge counter names
const (
	CounterUnreadNotifications = "unread_notifications"
	CounterUnreadConversations = "unread_conversations"
	CounterJoinRequests        = "join_requests"
	CounterPendingQuestions    = "pending_questions"
)

// EventSource delivers named push events. The websocket client satisfies it
// through a thin adapter; tests use an in-process fake.
type EventSource interface {
	// On subscribes to an event and returns an unsubscribe function
	On(event string, callback func(payload interface{})) func()
}

// Broadcaster is a same-client fan-out for local invalidation signals, used
// for follow-status changes: the same user can appear in several mounted
// views at once and they must not diverge.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(string)
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(string))}
}

// Subscribe registers fn and returns an unsubscribe function
func (b *Broadcaster) Subscribe(fn func(id string)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers id to every subscriber
func (b *Broadcaster) Publish(id string) {
	b.mu.Lock()
	fns := make([]func(string), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

// BridgeConfig wires the bridge's event handling to application state
type BridgeConfig struct {
	// NotificationsKey is the collection pushed notifications are prepended to
	NotificationsKey Key

	// DecodeNotification converts a push payload into a store item. Returning
	// false drops the event.
	DecodeNotification func(payload interface{}) (Item, bool)

	// Toast, when set, surfaces a transient user-facing message for pushed
	// notifications.
	Toast func(message string)

	// ActiveConversation returns the id of the conversation currently open,
	// or "" when none is.
	ActiveConversation func() string

	// MessagesKey maps a conversation id to its message collection
	MessagesKey func(conversationID string) Key

	// ActiveGroup returns the id of the group currently open, or ""
	ActiveGroup func() string

	// JoinRequestsKey maps a group id to its join-request collection
	JoinRequestsKey func(groupID string) Key

	// Counter refetchers. Each returns the authoritative badge value.
	UnreadConversationCount func(ctx context.Context) (int, error)
	JoinRequestCount        func(ctx context.Context, groupID string) (int, error)
	PendingQuestionCount    func(ctx context.Context, groupID string) (int, error)

	// RefetchUserStats reloads a user's follow stats after a local
	// follow-status broadcast.
	RefetchUserStats func(ctx context.Context, userID string)

	// FollowChanged is the local broadcaster the bridge listens on
	FollowChanged *Broadcaster
}

// Bridge subscribes to push events and translates each into a targeted store
// action: a counter patch, a prepend, or a page-1 refetch. A failed refetch
// is logged and the previous state left untouched; there is no automatic
// retry.
type Bridge struct {
	store  *Store
	source EventSource
	cfg    BridgeConfig

	mu     sync.Mutex
	unsubs []func()
}

// NewBridge creates a bridge over store fed by source
func NewBridge(store *Store, source EventSource, cfg BridgeConfig) *Bridge {
	return &Bridge{store: store, source: source, cfg: cfg}
}

// Start subscribes to the push events. ctx bounds the refetches the handlers
// issue.
func (b *Bridge) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := func(event string, fn func(interface{})) {
		b.unsubs = append(b.unsubs, b.source.On(event, fn))
	}

	sub(EventNewMessage, func(payload interface{}) { b.handleMessageEvent(ctx, payload) })
	sub(EventMarkAsRead, func(payload interface{}) { b.handleMessageEvent(ctx, payload) })
	sub(EventNewConversation, func(payload interface{}) { b.refreshUnreadConversations(ctx) })
	sub(EventNewNotification, b.handleNotification)
	sub(EventNewJoinRequest, func(payload interface{}) { b.handleJoinRequestEvent(ctx) })
	sub(EventCancelJoinRequest, func(payload interface{}) { b.handleJoinRequestEvent(ctx) })
	sub(EventPendingQuestion, func(payload interface{}) { b.handlePendingQuestion(ctx) })

	if b.cfg.FollowChanged != nil && b.cfg.RefetchUserStats != nil {
		b.unsubs = append(b.unsubs, b.cfg.FollowChanged.Subscribe(func(userID string) {
			b.cfg.RefetchUserStats(ctx, userID)
		}))
	}
}

// Stop unsubscribes from every event
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
}

// handleMessageEvent refetches the unread-conversation counter and, when the
// affected conversation is open, its first message page.
func (b *Bridge) handleMessageEvent(ctx context.Context, payload interface{}) {
	b.refreshUnreadConversations(ctx)

	if b.cfg.ActiveConversation == nil || b.cfg.MessagesKey == nil {
		return
	}
	active := b.cfg.ActiveConversation()
	if active == "" {
		return
	}
	if convID := payloadString(payload, "conversation_id"); convID != "" && convID != active {
		return
	}
	if err := b.store.Refresh(ctx, b.cfg.MessagesKey(active)); err != nil {
		logger.Error("Failed to refresh open conversation", "conversation_id", active, "error", err)
	}
}

func (b *Bridge) refreshUnreadConversations(ctx context.Context) {
	if b.cfg.UnreadConversationCount == nil {
		return
	}
	count, err := b.cfg.UnreadConversationCount(ctx)
	if err != nil {
		logger.Error("Failed to refetch unread conversation count", "error", err)
		return
	}
	b.store.SetCounter(CounterUnreadConversations, count)
}

// handleNotification prepends the pushed notification directly, with no
// refetch, and bumps the unread counter.
func (b *Bridge) handleNotification(payload interface{}) {
	if b.cfg.DecodeNotification == nil {
		return
	}
	item, ok := b.cfg.DecodeNotification(payload)
	if !ok {
		logger.Error("Dropping undecodable notification payload")
		return
	}

	b.store.Prepend(b.cfg.NotificationsKey, item)
	b.store.AdjustCounter(CounterUnreadNotifications, 1)

	if b.cfg.Toast != nil {
		b.cfg.Toast(payloadString(payload, "message"))
	}
}

// handleJoinRequestEvent refetches the active group's join-request page and
// its badge count.
func (b *Bridge) handleJoinRequestEvent(ctx context.Context) {
	groupID := b.activeGroup()
	if groupID == "" {
		return
	}

	if b.cfg.JoinRequestsKey != nil {
		if err := b.store.Refresh(ctx, b.cfg.JoinRequestsKey(groupID)); err != nil {
			logger.Error("Failed to refresh join requests", "group_id", groupID, "error", err)
		}
	}

	if b.cfg.JoinRequestCount != nil {
		count, err := b.cfg.JoinRequestCount(ctx, groupID)
		if err != nil {
			logger.Error("Failed to refetch join request count", "group_id", groupID, "error", err)
			return
		}
		b.store.SetCounter(CounterJoinRequests, count)
	}
}

func (b *Bridge) handlePendingQuestion(ctx context.Context) {
	groupID := b.activeGroup()
	if groupID == "" || b.cfg.PendingQuestionCount == nil {
		return
	}

	count, err := b.cfg.PendingQuestionCount(ctx, groupID)
	if err != nil {
		logger.Error("Failed to refetch pending question count", "group_id", groupID, "error", err)
		return
	}
	b.store.SetCounter(CounterPendingQuestions, count)
}

func (b *Bridge) activeGroup() string {
	if b.cfg.ActiveGroup == nil {
		return ""
	}
	return b.cfg.ActiveGroup()
}

// payloadString extracts a string field from a decoded JSON payload
func payloadString(payload interface{}, field string) string {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return ""
	}
	if v, ok := m[field].(string); ok {
		return v
	}
	return ""
}
