package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var notificationPages int

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Notification commands",
	Long:  "View and manage your notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		notificationService := service.NewNotificationService()
		return notificationService.List(notificationPages)
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notificationService := service.NewNotificationService()
		return notificationService.MarkRead(args[0])
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		notificationService := service.NewNotificationService()
		return notificationService.MarkAllRead()
	},
}

var notificationsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the unread notification count",
	RunE: func(cmd *cobra.Command, args []string) error {
		notificationService := service.NewNotificationService()
		return notificationService.UnreadCount()
	},
}

func init() {
	notificationsListCmd.Flags().IntVar(&notificationPages, "pages", 1, "Number of pages to load")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	notificationsCmd.AddCommand(notificationsCountCmd)
}
