package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/config"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
	"github.com/truongthuanhung/studyverse-cli/pkg/websocket"
)

// WatchService keeps a live connection open and folds pushed events into the
// collection store: counter patches for badges, direct prepends for
// notifications, page-1 refetches for open lists.
type WatchService struct {
	store *collection.Store
}

// NewWatchService creates a new watch service
func NewWatchService() *WatchService {
	return &WatchService{store: newStore()}
}

// wsEventSource adapts the websocket client to the bridge's event contract
type wsEventSource struct {
	client *websocket.Client
}

func (s *wsEventSource) On(event string, callback func(payload interface{})) func() {
	return s.client.On(websocket.MessageType(event), callback)
}

// Watch connects and prints store changes until interrupted. groupID, when
// non-empty, marks that group's lists as open so its admin events trigger
// refetches too.
func (ws *WatchService) Watch(groupID string) error {
	creds, err := requireAuth()
	if err != nil {
		return err
	}

	wsConfig := websocket.DefaultConfig()
	if host := config.GetString("ws.host"); host != "" {
		wsConfig.Host = host
	}
	if port := config.GetInt("ws.port"); port > 0 {
		wsConfig.Port = port
	}
	if path := config.GetString("ws.path"); path != "" {
		wsConfig.Path = path
	}

	client := websocket.GetClient(wsConfig)
	if err := client.Connect(creds.AccessToken); err != nil {
		formatter.PrintError("Failed to connect: %v", err)
		return err
	}
	defer client.Disconnect()

	// Seed the badges with authoritative values before listening.
	if count, err := api.GetUnreadNotificationCount(); err == nil {
		ws.store.SetCounter(collection.CounterUnreadNotifications, count)
	}
	if count, err := api.GetUnreadConversationCount(); err == nil {
		ws.store.SetCounter(collection.CounterUnreadConversations, count)
	}

	if groupID != "" {
		if err := client.JoinGroupRooms([]string{groupID}); err != nil {
			logger.Debug("Failed to join group rooms", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := collection.NewBridge(ws.store, &wsEventSource{client: client}, collection.BridgeConfig{
		NotificationsKey:   notificationsKey(),
		DecodeNotification: decodeNotification,
		Toast: func(message string) {
			if message != "" {
				formatter.PrintInfo("🔔 %s", message)
			}
		},
		ActiveConversation: func() string { return "" },
		MessagesKey:        messagesKey,
		ActiveGroup:        func() string { return groupID },
		JoinRequestsKey:    joinRequestsKey,
		UnreadConversationCount: func(ctx context.Context) (int, error) {
			return api.GetUnreadConversationCount()
		},
		JoinRequestCount: func(ctx context.Context, groupID string) (int, error) {
			return api.GetJoinRequestCount(groupID)
		},
		PendingQuestionCount: func(ctx context.Context, groupID string) (int, error) {
			return api.GetPendingQuestionCount(groupID)
		},
	})
	bridge.Start(ctx)
	defer bridge.Stop()

	formatter.PrintSuccess("✓ Watching for updates (Ctrl+C to stop)")
	ws.printBadges()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			fmt.Println()
			stats := client.GetStats()
			formatter.PrintInfo("Received %d message%s, reconnected %d time%s",
				stats.MessagesReceived, pluralize(int(stats.MessagesReceived)),
				stats.ReconnectCount, pluralize(stats.ReconnectCount))
			return nil
		case <-ticker.C:
			ws.printBadges()
		}
	}
}

func (ws *WatchService) printBadges() {
	fmt.Printf("[%s] 🔔 %d unread notifications | ✉ %d unread conversations",
		time.Now().Format("15:04:05"),
		ws.store.Counter(collection.CounterUnreadNotifications),
		ws.store.Counter(collection.CounterUnreadConversations))
	if n := ws.store.Counter(collection.CounterJoinRequests); n > 0 {
		fmt.Printf(" | %d join requests", n)
	}
	if n := ws.store.Counter(collection.CounterPendingQuestions); n > 0 {
		fmt.Printf(" | %d pending questions", n)
	}
	fmt.Println()
}

// decodeNotification converts a pushed payload into a store item
func decodeNotification(payload interface{}) (collection.Item, bool) {
	data, err := jsoniter.Marshal(payload)
	if err != nil {
		return nil, false
	}

	var notif api.Notification
	if err := jsoniter.Unmarshal(data, &notif); err != nil || notif.ID == "" {
		return nil, false
	}
	return &notif, true
}
