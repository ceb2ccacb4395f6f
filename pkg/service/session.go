package service

import (
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/auth"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/config"
	"github.com/truongthuanhung/studyverse-cli/pkg/credentials"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
)

// requireAuth loads stored credentials, wires the HTTP client with the access
// token, and installs the transparent refresh-and-replay handler. Every
// authenticated service method starts here.
func requireAuth() (*credentials.Credentials, error) {
	creds, err := credentials.Load()
	if err != nil {
		return nil, err
	}

	if creds == nil || !creds.IsValid() {
		formatter.PrintError("Not logged in. Please run 'studyverse auth login'")
		return nil, fmt.Errorf("not authenticated")
	}

	client.Init()
	client.SetAuthToken(creds.AccessToken)
	auth.InstallAutoRefresh()

	if creds.IsExpired() {
		sr := auth.NewSessionRecovery()
		if err := sr.RecoverSession(); err != nil {
			formatter.PrintError("Session expired. Please login again.")
			return nil, err
		}
		creds, _ = credentials.Load()
	}

	return creds, nil
}

// pageSize returns the configured page size for list fetches
func pageSize() int {
	size := config.GetInt("api.page_size")
	if size <= 0 {
		size = 10
	}
	return size
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
