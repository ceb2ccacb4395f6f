package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Login, logout, and account information",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to StudyVerse",
	RunE: func(cmd *cobra.Command, args []string) error {
		authService := service.NewAuthService()
		return authService.Login()
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from StudyVerse",
	RunE: func(cmd *cobra.Command, args []string) error {
		authService := service.NewAuthService()
		return authService.Logout()
	},
}

var authWhoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show your account information",
	RunE: func(cmd *cobra.Command, args []string) error {
		authService := service.NewAuthService()
		return authService.WhoAmI()
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoAmICmd)
}
