package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// ReplyListResponse represents a paginated list of replies
type ReplyListResponse struct {
	Replies    []Reply    `json:"replies"`
	Pagination Pagination `json:"pagination"`
}

// CommentListResponse represents a paginated list of comments
type CommentListResponse struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

// GetReplies retrieves a question's replies, newest first
func GetReplies(questionID string, page, limit int) (*ReplyListResponse, error) {
	logger.Debug("Fetching replies", "question_id", questionID, "page", page)

	var response ReplyListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get(fmt.Sprintf("/questions/%s/replies", questionID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// CreateReply posts a reply to a question
func CreateReply(questionID, content string) (*Reply, error) {
	logger.Debug("Creating reply", "question_id", questionID)

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
		Post(fmt.Sprintf("/questions/%s/replies", questionID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Reply Reply `json:"reply"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Reply, nil
}

// DeleteReply deletes a reply
func DeleteReply(questionID, replyID string) error {
	logger.Debug("Deleting reply", "reply_id", replyID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/questions/%s/replies/%s", questionID, replyID))

	return CheckResponse(resp, err)
}

// VoteReply records a vote on a reply
func VoteReply(questionID, replyID, voteType string) error {
	logger.Debug("Voting on reply", "reply_id", replyID, "vote", voteType)

	reqBody, err := json.Marshal(map[string]string{
		"vote_type": voteType,
	})
	if err != nil {
		return err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(fmt.Sprintf("/questions/%s/replies/%s/vote", questionID, replyID))

	return CheckResponse(resp, err)
}

// GetComments retrieves a reply's comments
func GetComments(replyID string, page, limit int) (*CommentListResponse, error) {
	logger.Debug("Fetching comments", "reply_id", replyID, "page", page)

	var response CommentListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get(fmt.Sprintf("/replies/%s/comments", replyID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// CreateComment posts a comment on a reply
func CreateComment(replyID, content string) (*Comment, error) {
	logger.Debug("Creating comment", "reply_id", replyID)

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
		Post(fmt.Sprintf("/replies/%s/comments", replyID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Comment Comment `json:"comment"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Comment, nil
}

// DeleteComment deletes a comment
func DeleteComment(replyID, commentID string) error {
	logger.Debug("Deleting comment", "comment_id", commentID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/replies/%s/comments/%s", replyID, commentID))

	return CheckResponse(resp, err)
}
