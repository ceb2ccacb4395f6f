package credentials

import (
	"encoding/json"
	"os"
	"time"

	"github.com/truongthuanhung/studyverse-cli/pkg/config"
)

// UserSnapshot is the cached profile of the logged-in user. It seeds the
// initial auth state on startup without a network round trip.
type UserSnapshot struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
}

type Credentials struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserSnapshot `json:"user"`
}

// Load loads credentials from disk
func Load() (*Credentials, error) {
	path := config.GetCredentialsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Credentials don't exist yet
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save saves credentials to disk
func Save(creds *Credentials) error {
	path := config.GetCredentialsPath()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}

// Delete deletes credentials from disk
func Delete() error {
	path := config.GetCredentialsPath()
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsExpired checks if the access token is expired
func (c *Credentials) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// IsValid checks if credentials are valid
func (c *Credentials) IsValid() bool {
	return c.AccessToken != "" && !c.IsExpired()
}
