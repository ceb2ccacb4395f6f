package auth

import (
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/credentials"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// SessionRecovery handles the single transparent refresh-token exchange that
// runs when a request comes back 401. If the refresh token itself is rejected
// the session is torn down and the user has to log in again.
type SessionRecovery struct{}

// NewSessionRecovery creates a new session recovery handler
func NewSessionRecovery() *SessionRecovery {
	return &SessionRecovery{}
}

// RecoverSession attempts to refresh the access token once
func (sr *SessionRecovery) RecoverSession() error {
	logger.Debug("Attempting to recover session")

	creds, err := credentials.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	if creds == nil || creds.RefreshToken == "" {
		return fmt.Errorf("no refresh token available - please log in again")
	}

	refreshResp, err := api.Refresh(creds.RefreshToken)
	if err != nil {
		// Refresh token rejected: the one globally-fatal failure.
		sr.ForceLogout()
		return fmt.Errorf("session expired - please log in again: %w", err)
	}

	creds.AccessToken = refreshResp.AccessToken
	if refreshResp.RefreshToken != "" {
		creds.RefreshToken = refreshResp.RefreshToken
	}
	if err := credentials.Save(creds); err != nil {
		logger.Error("Failed to save updated credentials", "error", err)
	}

	client.SetAuthToken(creds.AccessToken)
	return nil
}

// ForceLogout clears local tokens and the client auth header
func (sr *SessionRecovery) ForceLogout() {
	logger.Debug("Forcing logout")
	if err := credentials.Delete(); err != nil {
		logger.Error("Failed to delete credentials", "error", err)
	}
	client.ClearAuthToken()
}

// InstallAutoRefresh wires the recovery handler into the HTTP client so a 401
// triggers one refresh-and-replay before failing.
func InstallAutoRefresh() {
	sr := NewSessionRecovery()
	client.SetUnauthorizedHandler(func() bool {
		if err := sr.RecoverSession(); err != nil {
			logger.Error("Session recovery failed", "error", err)
			return false
		}
		return true
	})
}
