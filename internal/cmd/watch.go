package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var watchGroupID string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch live updates",
	Long: `Keep a live connection open and show new notifications, messages
and group activity as they arrive. Badge counters are refetched from the
server on every push event.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watchService := service.NewWatchService()
		return watchService.Watch(watchGroupID)
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchGroupID, "group", "", "Also watch a group's admin events (join requests, pending questions)")
}
