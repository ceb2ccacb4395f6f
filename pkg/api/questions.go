package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// QuestionListResponse represents a paginated list of questions
type QuestionListResponse struct {
	Questions  []Question `json:"questions"`
	Pagination Pagination `json:"pagination"`
}

// GetGroupQuestions retrieves a group's approved questions, newest first
func GetGroupQuestions(groupID string, page, limit int) (*QuestionListResponse, error) {
	logger.Debug("Fetching group questions", "group_id", groupID, "page", page)

	var response QuestionListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get(fmt.Sprintf("/study-groups/%s/questions", groupID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetPendingQuestions retrieves a group's moderation queue (admin only)
func GetPendingQuestions(groupID string, page, limit int) (*QuestionListResponse, error) {
	logger.Debug("Fetching pending questions", "group_id", groupID, "page", page)

	var response QuestionListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get(fmt.Sprintf("/study-groups/%s/questions/pending", groupID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetQuestion retrieves a single question
func GetQuestion(groupID, questionID string) (*Question, error) {
	logger.Debug("Fetching question", "question_id", questionID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/study-groups/%s/questions/%s", groupID, questionID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Question Question `json:"question"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Question, nil
}

// CreateQuestion posts a new question to a group
func CreateQuestion(groupID, title, content string) (*Question, error) {
	logger.Debug("Creating question", "group_id", groupID)

	reqBody, err := json.Marshal(map[string]string{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(fmt.Sprintf("/study-groups/%s/questions", groupID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Question Question `json:"question"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Question, nil
}

// DeleteQuestion deletes a question
func DeleteQuestion(groupID, questionID string) error {
	logger.Debug("Deleting question", "question_id", questionID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/study-groups/%s/questions/%s", groupID, questionID))

	return CheckResponse(resp, err)
}

// VoteQuestion records a vote on a question. voteType is "upvote" or
// "downvote"; sending the caller's current vote retracts it.
func VoteQuestion(groupID, questionID, voteType string) error {
	logger.Debug("Voting on question", "question_id", questionID, "vote", voteType)

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
		Post(fmt.Sprintf("/study-groups/%s/questions/%s/vote", groupID, questionID))

	return CheckResponse(resp, err)
}

// ApproveQuestion approves a pending question (admin only)
func ApproveQuestion(groupID, questionID string) error {
	logger.Debug("Approving question", "question_id", questionID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/study-groups/%s/questions/%s/approve", groupID, questionID))

	return CheckResponse(resp, err)
}

// RejectQuestion rejects a pending question (admin only)
func RejectQuestion(groupID, questionID string) error {
	logger.Debug("Rejecting question", "question_id", questionID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/study-groups/%s/questions/%s/reject", groupID, questionID))

	return CheckResponse(resp, err)
}
