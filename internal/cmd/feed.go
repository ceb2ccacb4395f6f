package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var (
	feedPages   int
	postPrivacy string
	unlikeFlag  bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "News feed commands",
	Long:  "View the feed and manage your posts",
}

var feedViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View your news feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		feedService := service.NewFeedService()
		return feedService.ViewFeed(feedPages)
	},
}

var feedPostCmd = &cobra.Command{
	Use:   "post <content>",
	Short: "Create a new post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedService := service.NewFeedService()
		return feedService.CreatePost(args[0], postPrivacy)
	},
}

var feedDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedService := service.NewFeedService()
		return feedService.DeletePost(args[0])
	},
}

var feedLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like (or unlike) a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedService := service.NewFeedService()
		return feedService.LikePost(args[0], unlikeFlag)
	},
}

var feedUserCmd = &cobra.Command{
	Use:   "user <user-id>",
	Short: "View a user's posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedService := service.NewFeedService()
		return feedService.ViewUserPosts(args[0], feedPages)
	},
}

func init() {
	feedViewCmd.Flags().IntVar(&feedPages, "pages", 1, "Number of pages to load")
	feedUserCmd.Flags().IntVar(&feedPages, "pages", 1, "Number of pages to load")
	feedPostCmd.Flags().StringVar(&postPrivacy, "privacy", "public", "Post privacy: public, friends, private")
	feedLikeCmd.Flags().BoolVar(&unlikeFlag, "undo", false, "Remove your like instead")

	feedCmd.AddCommand(feedViewCmd)
	feedCmd.AddCommand(feedPostCmd)
	feedCmd.AddCommand(feedDeleteCmd)
	feedCmd.AddCommand(feedLikeCmd)
	feedCmd.AddCommand(feedUserCmd)
}
