package api

import (
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Pagination    Pagination     `json:"pagination"`
}

// GetNotifications retrieves the current user's notifications, newest first
func GetNotifications(page, limit int) (*NotificationListResponse, error) {
	logger.Debug("Fetching notifications", "page", page)

	var response NotificationListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/notifications")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetUnreadNotificationCount retrieves the unread-notification badge count
func GetUnreadNotificationCount() (int, error) {
	logger.Debug("Fetching unread notification count")

	resp, err := client.GetClient().
		R().
		Get("/notifications/unread/count")

	if err := CheckResponse(resp, err); err != nil {
		return 0, err
	}

	var result struct {
		Count int `json:"count"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return 0, err
	}

	return result.Count, nil
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(notificationID string) error {
	logger.Debug("Marking notification read", "notification_id", notificationID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/notifications/%s/read", notificationID))

	return CheckResponse(resp, err)
}

// MarkAllNotificationsRead marks every notification as read
func MarkAllNotificationsRead() error {
	logger.Debug("Marking all notifications read")

	resp, err := client.GetClient().
		R().
		Post("/notifications/read-all")

	return CheckResponse(resp, err)
}
