package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// PostListResponse represents a paginated list of posts
type PostListResponse struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// GetFeed retrieves the personal news feed, newest first
func GetFeed(page, limit int) (*PostListResponse, error) {
	logger.Debug("Fetching feed", "page", page)

	var response PostListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/posts/feed")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetUserPosts retrieves a user's posts with pagination
func GetUserPosts(userID string, page, limit int) (*PostListResponse, error) {
	logger.Debug("Fetching user posts", "user_id", userID, "page", page)

	var response PostListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get(fmt.Sprintf("/users/%s/posts", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// CreatePost creates a new post
func CreatePost(content, privacy string) (*Post, error) {
	logger.Debug("Creating post")

	reqBody, err := json.Marshal(map[string]string{
		"content": content,
		"privacy": privacy,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/posts")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Post Post `json:"post"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Post, nil
}

// DeletePost deletes a post
func DeletePost(postID string) error {
	logger.Debug("Deleting post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/posts/%s", postID))

	return CheckResponse(resp, err)
}

// LikePost likes a post
func LikePost(postID string) error {
	logger.Debug("Liking post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/posts/%s/like", postID))

	return CheckResponse(resp, err)
}

// UnlikePost removes a like from a post
func UnlikePost(postID string) error {
	logger.Debug("Unliking post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/posts/%s/like", postID))

	return CheckResponse(resp, err)
}
