package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var unfollowFlag bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "User profile commands",
	Long:  "View profiles and manage who you follow",
}

var profileViewCmd = &cobra.Command{
	Use:   "view <user-id>",
	Short: "View a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileService := service.NewProfileService()
		return profileService.ViewProfile(args[0])
	},
}

var profileFollowCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Follow (or unfollow) a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileService := service.NewProfileService()
		return profileService.Follow(args[0], unfollowFlag)
	},
}

func init() {
	profileFollowCmd.Flags().BoolVar(&unfollowFlag, "undo", false, "Unfollow instead")

	profileCmd.AddCommand(profileViewCmd)
	profileCmd.AddCommand(profileFollowCmd)
}
