package service

import (
	"fmt"
	"time"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/credentials"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
	"github.com/truongthuanhung/studyverse-cli/pkg/prompter"
)

type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login handles user login
func (s *AuthService) Login() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds != nil && creds.IsValid() {
		formatter.PrintWarning("Already logged in as %s", creds.User.Username)
		confirm, err := prompter.PromptConfirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	client.Init()

	formatter.PrintInfo("Authenticating...")
	loginResp, err := api.Login(email, password)
	if err != nil {
		formatter.PrintError("Login failed: %v", err)
		return err
	}

	client.SetAuthToken(loginResp.AccessToken)

	// Access tokens live 15 minutes; the refresh flow handles renewal.
	creds = &credentials.Credentials{
		AccessToken:  loginResp.AccessToken,
		RefreshToken: loginResp.RefreshToken,
		ExpiresAt:    time.Now().Add(15 * time.Minute),
		User: credentials.UserSnapshot{
			ID:       loginResp.User.ID,
			Username: loginResp.User.Username,
			FullName: loginResp.User.FullName,
			Email:    loginResp.User.Email,
			Avatar:   loginResp.User.Avatar,
		},
	}

	if err := credentials.Save(creds); err != nil {
		formatter.PrintError("Failed to save credentials: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Login successful!")
	formatter.PrintInfo("Logged in as %s", formatter.Bold.Sprint(loginResp.User.Username))
	fmt.Printf("\n")
	formatter.PrintKeyValue(map[string]interface{}{
		"Username":  loginResp.User.Username,
		"Full Name": loginResp.User.FullName,
		"Email":     loginResp.User.Email,
	})

	return nil
}

// Logout handles user logout
func (s *AuthService) Logout() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds == nil {
		formatter.PrintWarning("Not logged in")
		return nil
	}

	confirm, err := prompter.PromptConfirm("Logout?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	// Best-effort server-side revocation; local teardown happens regardless.
	client.Init()
	client.SetAuthToken(creds.AccessToken)
	if err := api.Logout(creds.RefreshToken); err != nil {
		logger.Debug("Server-side logout failed", "error", err)
	}

	if err := credentials.Delete(); err != nil {
		formatter.PrintError("Failed to delete credentials: %v", err)
		return err
	}
	client.ClearAuthToken()

	formatter.PrintSuccess("✓ Logged out successfully")
	return nil
}

// WhoAmI shows the current user's account information
func (s *AuthService) WhoAmI() error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	formatter.PrintInfo("Fetching user information...")
	user, err := api.GetCurrentUser()
	if err != nil {
		if api.IsUnauthorized(err) {
			formatter.PrintError("Session expired. Please login again.")
			credentials.Delete()
			return fmt.Errorf("unauthorized")
		}
		formatter.PrintError("Failed to fetch user: %v", err)
		return err
	}

	fmt.Printf("\n")
	formatter.PrintKeyValue(map[string]interface{}{
		"Username":  user.Username,
		"Full Name": user.FullName,
		"Email":     user.Email,
		"Bio":       user.Bio,
	})

	return nil
}
