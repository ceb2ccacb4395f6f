package service

import (
	"context"
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
	"github.com/truongthuanhung/studyverse-cli/pkg/websocket"
)

// MessageService provides direct-messaging operations
type MessageService struct {
	store *collection.Store
	coord *collection.Coordinator
}

// NewMessageService creates a new message service
func NewMessageService() *MessageService {
	store := newStore()
	return &MessageService{
		store: store,
		coord: collection.NewCoordinator(store, collection.CoordinatorConfig{
			Create: func(ctx context.Context, key collection.Key, content string) (collection.Item, error) {
				msg, err := api.SendMessage(key.Parent, content)
				if err != nil {
					return nil, err
				}
				// With a live socket open, nudge the other participant so the
				// message shows up without waiting for their next poll.
				if ws := websocket.GetClient(); ws.IsConnected() {
					if err := ws.Send(websocket.MessageTypeSendNewMessage, map[string]interface{}{
						"conversation_id": key.Parent,
						"message_id":      msg.ID,
					}); err != nil {
						logger.Debug("Failed to emit send_new_message", "error", err)
					}
				}
				return msg, nil
			},
		}),
	}
}

// ListConversations displays the user's conversations with unread badges
func (ms *MessageService) ListConversations() error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Listing conversations")
	ctx := context.Background()
	key := conversationsKey()

	if err := ms.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch conversations: %w", err)
	}

	if count, err := api.GetUnreadConversationCount(); err == nil {
		ms.store.SetCounter(collection.CounterUnreadConversations, count)
	}

	snap := ms.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("No conversations yet.")
		return nil
	}

	unread := ms.store.Counter(collection.CounterUnreadConversations)
	title := "Conversations"
	if unread > 0 {
		title = fmt.Sprintf("Conversations (%d unread)", unread)
	}
	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint(title))

	for i, it := range snap.Items {
		conv, ok := it.(*api.Conversation)
		if !ok {
			continue
		}
		badge := ""
		if conv.UnreadCount > 0 {
			badge = fmt.Sprintf(" [%d new]", conv.UnreadCount)
		}
		fmt.Printf("%d. %s%s [%s]\n", i+1, formatter.Bold.Sprint(conv.Participant.Username), badge, conv.ID)
		if conv.LastMessage != "" {
			fmt.Printf("   %s\n", conv.LastMessage)
		}
		fmt.Printf("   %s\n\n", conv.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// ViewConversation displays a conversation's messages and marks it read
func (ms *MessageService) ViewConversation(conversationID string, pages int) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Viewing conversation", "conversation_id", conversationID)
	ctx := context.Background()
	key := messagesKey(conversationID)

	if err := ms.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}
	for page := 2; page <= pages; page++ {
		snap := ms.store.Snapshot(key)
		if !snap.HasMore {
			break
		}
		if err := ms.store.FetchPage(ctx, key, snap.CurrentPage+1); err != nil {
			return fmt.Errorf("failed to fetch messages: %w", err)
		}
	}

	// Opening the thread clears its unread state server-side.
	if err := api.MarkConversationRead(conversationID); err != nil {
		logger.Debug("Failed to mark conversation read", "error", err)
	} else if count, err := api.GetUnreadConversationCount(); err == nil {
		ms.store.SetCounter(collection.CounterUnreadConversations, count)
	}

	snap := ms.store.Snapshot(key)
	if len(snap.Items) == 0 && len(snap.Pending) == 0 {
		fmt.Println("No messages in this conversation.")
		return nil
	}

	fmt.Printf("\n")
	// Messages arrive newest-first; render oldest-first.
	for i := len(snap.Items) - 1; i >= 0; i-- {
		msg, ok := snap.Items[i].(*api.Message)
		if !ok {
			continue
		}
		fmt.Printf("%s %s\n", formatter.Bold.Sprint(msg.Sender.Username+":"), msg.Content)
		fmt.Printf("  %s\n", msg.CreatedAt.Format("2006-01-02 15:04"))
	}
	for _, p := range snap.Pending {
		fmt.Printf("%s %s (sending...)\n", formatter.Bold.Sprint("you:"), p.Content)
	}
	fmt.Printf("\n")

	return nil
}

// Send sends a message in a conversation. The message is shown immediately as
// provisional and confirmed once the server responds.
func (ms *MessageService) Send(conversationID, content string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	msg, err := ms.coord.Create(context.Background(), messagesKey(conversationID), content)
	if err != nil {
		formatter.PrintError("Failed to send message: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Sent [%s]", msg.ItemID())
	return nil
}

// StartConversation opens (or reuses) a conversation with a user
func (ms *MessageService) StartConversation(userID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	conv, err := api.CreateConversation(userID)
	if err != nil {
		formatter.PrintError("Failed to start conversation: %v", err)
		return err
	}

	ms.store.Prepend(conversationsKey(), conv)
	formatter.PrintSuccess("✓ Conversation ready [%s]", conv.ID)
	return nil
}
