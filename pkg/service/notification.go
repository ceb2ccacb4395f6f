package service

import (
	"context"
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// NotificationService provides notification operations
type NotificationService struct {
	store *collection.Store
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{store: newStore()}
}

// List displays notifications, newest first
func (ns *NotificationService) List(pages int) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Listing notifications")
	ctx := context.Background()
	key := notificationsKey()

	if err := ns.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch notifications: %w", err)
	}
	for page := 2; page <= pages; page++ {
		snap := ns.store.Snapshot(key)
		if !snap.HasMore {
			break
		}
		if err := ns.store.FetchPage(ctx, key, snap.CurrentPage+1); err != nil {
			return fmt.Errorf("failed to fetch notifications: %w", err)
		}
	}

	if count, err := api.GetUnreadNotificationCount(); err == nil {
		ns.store.SetCounter(collection.CounterUnreadNotifications, count)
	}

	snap := ns.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	unread := ns.store.Counter(collection.CounterUnreadNotifications)
	title := "Notifications"
	if unread > 0 {
		title = fmt.Sprintf("Notifications (%d unread)", unread)
	}
	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint(title))

	for i, it := range snap.Items {
		notif, ok := it.(*api.Notification)
		if !ok {
			continue
		}
		marker := " "
		if !notif.IsRead {
			marker = "•"
		}
		fmt.Printf("%s %d. %s [%s]\n", marker, i+1, notif.Message, notif.ID)
		fmt.Printf("     %s\n", notif.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\n")

	return nil
}

// MarkRead marks one notification as read
func (ns *NotificationService) MarkRead(notificationID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	if err := api.MarkNotificationRead(notificationID); err != nil {
		formatter.PrintError("Failed to mark notification read: %v", err)
		return err
	}

	ns.store.UpdateItem(notificationsKey(), notificationID, func(it collection.Item) {
		if notif, ok := it.(*api.Notification); ok {
			notif.IsRead = true
		}
	})
	ns.store.AdjustCounter(collection.CounterUnreadNotifications, -1)

	formatter.PrintSuccess("✓ Marked as read")
	return nil
}

// MarkAllRead marks every notification as read
func (ns *NotificationService) MarkAllRead() error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	if err := api.MarkAllNotificationsRead(); err != nil {
		formatter.PrintError("Failed to mark notifications read: %v", err)
		return err
	}

	ns.store.SetCounter(collection.CounterUnreadNotifications, 0)
	formatter.PrintSuccess("✓ All notifications marked as read")
	return nil
}

// UnreadCount prints the unread notification badge value
func (ns *NotificationService) UnreadCount() error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	count, err := api.GetUnreadNotificationCount()
	if err != nil {
		formatter.PrintError("Failed to fetch unread count: %v", err)
		return err
	}

	ns.store.SetCounter(collection.CounterUnreadNotifications, count)
	fmt.Printf("%d unread notification%s\n", count, pluralize(count))
	return nil
}
