package api

import (
	json "github.com/json-iterator/go"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// Login authenticates user with email and password
func Login(email, password string) (*LoginResponse, error) {
	logger.Debug("Attempting login", "email", email)

	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/auth/login")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeResult(resp.Body(), &loginResp); err != nil {
		return nil, err
	}

	logger.Debug("Login successful", "username", loginResp.User.Username)
	return &loginResp, nil
}

// Refresh exchanges the refresh token for a new access token
func Refresh(refreshToken string) (*RefreshResponse, error) {
	logger.Debug("Refreshing access token")

	req := RefreshRequest{
		RefreshToken: refreshToken,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/auth/refresh")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var refreshResp RefreshResponse
	if err := decodeResult(resp.Body(), &refreshResp); err != nil {
		return nil, err
	}

	logger.Debug("Access token refreshed")
	return &refreshResp, nil
}

// Logout invalidates the refresh token server-side
func Logout(refreshToken string) error {
	logger.Debug("Logging out")

	reqBody, err := json.Marshal(RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/auth/logout")

	return CheckResponse(resp, err)
}

// GetCurrentUser gets the current authenticated user
func GetCurrentUser() (*User, error) {
	logger.Debug("Fetching current user")

	resp, err := client.GetClient().
		R().
		Get("/auth/me")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		User User `json:"user"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	logger.Debug("Current user fetched", "username", result.User.Username)
	return &result.User, nil
}
