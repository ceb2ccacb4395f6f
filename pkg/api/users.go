package api

import (
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// GetUser retrieves a user's profile
func GetUser(userID string) (*User, error) {
	logger.Debug("Fetching user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/users/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		User User `json:"user"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.User, nil
}

// GetUserStats retrieves follow/post counters for a user
func GetUserStats(userID string) (*UserStats, error) {
	logger.Debug("Fetching user stats", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/users/%s/stats", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Stats UserStats `json:"stats"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Stats, nil
}

// FollowUser follows a user
func FollowUser(userID string) error {
	logger.Debug("Following user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/users/%s/follow", userID))

	return CheckResponse(resp, err)
}

// UnfollowUser unfollows a user
func UnfollowUser(userID string) error {
	logger.Debug("Unfollowing user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/users/%s/follow", userID))

	return CheckResponse(resp, err)
}

// SearchUsers searches for users by username or full name
func SearchUsers(query string, page, limit int) (*UserListResponse, error) {
	logger.Debug("Searching users", "query", query, "page", page)

	var response UserListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"q":     query,
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/search/users")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}
