package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search commands",
	Long:  "Search posts, users, groups and tags",
}

var searchPostsCmd = &cobra.Command{
	Use:   "posts <query>",
	Short: "Search posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchService := service.NewSearchService()
		return searchService.SearchPosts(args[0])
	},
}

var searchUsersCmd = &cobra.Command{
	Use:   "users <query>",
	Short: "Search users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchService := service.NewSearchService()
		return searchService.SearchUsers(args[0])
	},
}

var searchGroupsCmd = &cobra.Command{
	Use:   "groups <query>",
	Short: "Search study groups",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchService := service.NewSearchService()
		return searchService.SearchGroups(args[0])
	},
}

var searchTagsCmd = &cobra.Command{
	Use:   "tags <prefix>",
	Short: "Search tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchService := service.NewSearchService()
		return searchService.SearchTags(args[0])
	},
}

var searchInteractiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive search with debounced input",
	RunE: func(cmd *cobra.Command, args []string) error {
		searchService := service.NewSearchService()
		return searchService.Interactive()
	},
}

var searchHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		searchService := service.NewSearchService()
		return searchService.History()
	},
}

var searchHistoryDeleteCmd = &cobra.Command{
	Use:   "history-delete <history-id>",
	Short: "Remove a saved search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchService := service.NewSearchService()
		return searchService.ClearHistoryEntry(args[0])
	},
}

func init() {
	searchCmd.AddCommand(searchPostsCmd)
	searchCmd.AddCommand(searchUsersCmd)
	searchCmd.AddCommand(searchGroupsCmd)
	searchCmd.AddCommand(searchTagsCmd)
	searchCmd.AddCommand(searchInteractiveCmd)
	searchCmd.AddCommand(searchHistoryCmd)
	searchCmd.AddCommand(searchHistoryDeleteCmd)
}
