package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var groupPages int

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Study group commands",
	Long:  "Browse groups, manage membership and moderate join requests",
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your study groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.ListMyGroups(groupPages)
	},
}

var groupShowCmd = &cobra.Command{
	Use:   "show <group-id>",
	Short: "Show a group's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.ShowGroup(args[0])
	},
}

var groupJoinCmd = &cobra.Command{
	Use:   "join <group-id>",
	Short: "Request to join a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.RequestToJoin(args[0])
	},
}

var groupCancelJoinCmd = &cobra.Command{
	Use:   "cancel-join <group-id> <request-id>",
	Short: "Withdraw a pending join request",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.CancelJoinRequest(args[0], args[1])
	},
}

var groupRequestsCmd = &cobra.Command{
	Use:   "requests <group-id>",
	Short: "List pending join requests (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.ListJoinRequests(args[0])
	},
}

var groupAcceptCmd = &cobra.Command{
	Use:   "accept <group-id> <request-id>",
	Short: "Accept a join request (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.ResolveJoinRequest(args[0], args[1], true)
	},
}

var groupRejectCmd = &cobra.Command{
	Use:   "reject <group-id> <request-id>",
	Short: "Reject a join request (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.ResolveJoinRequest(args[0], args[1], false)
	},
}

var groupInvitesCmd = &cobra.Command{
	Use:   "invitations",
	Short: "List your group invitations",
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.ListInvitations()
	},
}

var groupRespondCmd = &cobra.Command{
	Use:   "respond <invitation-id> [accept|decline]",
	Short: "Respond to a group invitation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupService := service.NewGroupService()
		return groupService.RespondToInvitation(args[0], args[1] == "accept")
	},
}

func init() {
	groupListCmd.Flags().IntVar(&groupPages, "pages", 1, "Number of pages to load")

	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupShowCmd)
	groupCmd.AddCommand(groupJoinCmd)
	groupCmd.AddCommand(groupCancelJoinCmd)
	groupCmd.AddCommand(groupRequestsCmd)
	groupCmd.AddCommand(groupAcceptCmd)
	groupCmd.AddCommand(groupRejectCmd)
	groupCmd.AddCommand(groupInvitesCmd)
	groupCmd.AddCommand(groupRespondCmd)
}
