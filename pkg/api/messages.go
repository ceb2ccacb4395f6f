package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// ConversationListResponse represents a paginated list of conversations
type ConversationListResponse struct {
	Conversations []Conversation `json:"conversations"`
	Pagination    Pagination     `json:"pagination"`
}

// MessageListResponse represents a paginated list of messages
type MessageListResponse struct {
	Messages   []Message  `json:"messages"`
	Pagination Pagination `json:"pagination"`
}

// GetConversations retrieves the current user's conversations
func GetConversations(page, limit int) (*ConversationListResponse, error) {
	logger.Debug("Fetching conversations", "page", page)

	var response ConversationListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/conversations")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetMessages retrieves a conversation's messages, newest first
func GetMessages(conversationID string, page, limit int) (*MessageListResponse, error) {
	logger.Debug("Fetching messages", "conversation_id", conversationID, "page", page)

	var response MessageListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get(fmt.Sprintf("/conversations/%s/messages", conversationID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// SendMessage sends a direct message in a conversation
func SendMessage(conversationID, content string) (*Message, error) {
	logger.Debug("Sending message", "conversation_id", conversationID)

	reqBody, err := json.Marshal(map[string]string{
		"content": content,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(fmt.Sprintf("/conversations/%s/messages", conversationID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Message Message `json:"message"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Message, nil
}

// CreateConversation opens (or returns) a conversation with a user
func CreateConversation(userID string) (*Conversation, error) {
	logger.Debug("Creating conversation", "user_id", userID)

	reqBody, err := json.Marshal(map[string]string{
		"user_id": userID,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/conversations")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Conversation Conversation `json:"conversation"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Conversation, nil
}

// MarkConversationRead marks every message in a conversation as read
func MarkConversationRead(conversationID string) error {
	logger.Debug("Marking conversation read", "conversation_id", conversationID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/conversations/%s/read", conversationID))

	return CheckResponse(resp, err)
}

// GetUnreadConversationCount retrieves the unread-conversation badge count
func GetUnreadConversationCount() (int, error) {
	logger.Debug("Fetching unread conversation count")

	resp, err := client.GetClient().
		R().
		Get("/conversations/unread/count")

	if err := CheckResponse(resp, err); err != nil {
		return 0, err
	}

	var result struct {
		Count int `json:"count"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return 0, err
	}

	return result.Count, nil
}
