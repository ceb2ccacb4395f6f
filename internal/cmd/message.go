package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var messagePages int

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Direct messaging commands",
	Long:  "List conversations, read threads and send messages",
}

var messageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		messageService := service.NewMessageService()
		return messageService.ListConversations()
	},
}

var messageViewCmd = &cobra.Command{
	Use:   "view <conversation-id>",
	Short: "View a conversation (marks it read)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageService := service.NewMessageService()
		return messageService.ViewConversation(args[0], messagePages)
	},
}

var messageSendCmd = &cobra.Command{
	Use:   "send <conversation-id> <content>",
	Short: "Send a message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageService := service.NewMessageService()
		return messageService.Send(args[0], args[1])
	},
}

var messageStartCmd = &cobra.Command{
	Use:   "start <user-id>",
	Short: "Start a conversation with a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messageService := service.NewMessageService()
		return messageService.StartConversation(args[0])
	},
}

func init() {
	messageViewCmd.Flags().IntVar(&messagePages, "pages", 1, "Number of pages to load")

	messageCmd.AddCommand(messageListCmd)
	messageCmd.AddCommand(messageViewCmd)
	messageCmd.AddCommand(messageSendCmd)
	messageCmd.AddCommand(messageStartCmd)
}
