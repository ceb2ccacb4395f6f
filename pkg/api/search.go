package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// Tag represents a question/post tag
type Tag struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TagListResponse represents tag search results
type TagListResponse struct {
	Tags []Tag `json:"tags"`
}

// SearchHistoryResponse represents the saved search history
type SearchHistoryResponse struct {
	History []SearchHistoryItem `json:"history"`
}

// SearchPosts searches for posts
func SearchPosts(query string, page, limit int) (*PostListResponse, error) {
	logger.Debug("Searching posts", "query", query, "page", page)

	var response PostListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"q":     query,
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/search/posts")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// SearchTags searches for tags by prefix
func SearchTags(query string) (*TagListResponse, error) {
	logger.Debug("Searching tags", "query", query)

	var response TagListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParam("q", query).
		Get("/search/tags")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetSearchHistory retrieves the user's recent searches
func GetSearchHistory() (*SearchHistoryResponse, error) {
	logger.Debug("Fetching search history")

	var response SearchHistoryResponse

	resp, err := client.GetClient().
		R().
		Get("/search/history")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// AddSearchHistory records a search query in the user's history
func AddSearchHistory(query string) error {
	logger.Debug("Adding search history", "query", query)

	reqBody, err := json.Marshal(map[string]string{
		"query": query,
	})
	if err != nil {
		return err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/search/history")

	return CheckResponse(resp, err)
}

// DeleteSearchHistory removes one saved search
func DeleteSearchHistory(historyID string) error {
	logger.Debug("Deleting search history", "history_id", historyID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/search/history/%s", historyID))

	return CheckResponse(resp, err)
}
