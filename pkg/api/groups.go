package api

import (
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/client"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// GroupListResponse represents a paginated list of study groups
type GroupListResponse struct {
	Groups     []StudyGroup `json:"groups"`
	Pagination Pagination   `json:"pagination"`
}

// JoinRequestListResponse represents a paginated list of join requests
type JoinRequestListResponse struct {
	JoinRequests []JoinRequest `json:"join_requests"`
	Pagination   Pagination    `json:"pagination"`
}

// InvitationListResponse represents a paginated list of invitations
type InvitationListResponse struct {
	Invitations []Invitation `json:"invitations"`
	Pagination  Pagination   `json:"pagination"`
}

// GetMyGroups retrieves the groups the current user belongs to
func GetMyGroups(page, limit int) (*GroupListResponse, error) {
	logger.Debug("Fetching my groups", "page", page)

	var response GroupListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/study-groups")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetGroup retrieves a study group's details, including the caller's role
func GetGroup(groupID string) (*StudyGroup, error) {
	logger.Debug("Fetching group", "group_id", groupID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/study-groups/%s", groupID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		Group StudyGroup `json:"group"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.Group, nil
}

// RequestToJoin creates a join request for a group
func RequestToJoin(groupID string) (*JoinRequest, error) {
	logger.Debug("Requesting to join group", "group_id", groupID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/study-groups/%s/join-requests", groupID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var result struct {
		JoinRequest JoinRequest `json:"join_request"`
	}
	if err := decodeResult(resp.Body(), &result); err != nil {
		return nil, err
	}

	return &result.JoinRequest, nil
}

// CancelJoinRequest withdraws a pending join request
func CancelJoinRequest(groupID, requestID string) error {
	logger.Debug("Cancelling join request", "group_id", groupID, "request_id", requestID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/study-groups/%s/join-requests/%s", groupID, requestID))

	return CheckResponse(resp, err)
}

// GetJoinRequests retrieves pending join requests for a group (admin only)
func GetJoinRequests(groupID string, page, limit int) (*JoinRequestListResponse, error) {
	logger.Debug("Fetching join requests", "group_id", groupID, "page", page)

	var response JoinRequestListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get(fmt.Sprintf("/study-groups/%s/join-requests", groupID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// AcceptJoinRequest approves a pending join request (admin only)
func AcceptJoinRequest(groupID, requestID string) error {
	logger.Debug("Accepting join request", "group_id", groupID, "request_id", requestID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/study-groups/%s/join-requests/%s/accept", groupID, requestID))

	return CheckResponse(resp, err)
}

// RejectJoinRequest declines a pending join request (admin only)
func RejectJoinRequest(groupID, requestID string) error {
	logger.Debug("Rejecting join request", "group_id", groupID, "request_id", requestID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/study-groups/%s/join-requests/%s/reject", groupID, requestID))

	return CheckResponse(resp, err)
}

// GetJoinRequestCount retrieves the pending join-request badge count
func GetJoinRequestCount(groupID string) (int, error) {
	logger.Debug("Fetching join request count", "group_id", groupID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/study-groups/%s/join-requests/count", groupID))

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

// GetPendingQuestionCount retrieves the pending-question badge count (admin only)
func GetPendingQuestionCount(groupID string) (int, error) {
	logger.Debug("Fetching pending question count", "group_id", groupID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/study-groups/%s/questions/pending/count", groupID))

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

// GetInvitations retrieves the current user's group invitations
func GetInvitations(page, limit int) (*InvitationListResponse, error) {
	logger.Debug("Fetching invitations", "page", page)

	var response InvitationListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/invitations")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// RespondToInvitation accepts or declines an invitation
func RespondToInvitation(invitationID string, accept bool) error {
	action := "decline"
	if accept {
		action = "accept"
	}
	logger.Debug("Responding to invitation", "invitation_id", invitationID, "action", action)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/invitations/%s/%s", invitationID, action))

	return CheckResponse(resp, err)
}

// SearchGroups searches for study groups
func SearchGroups(query string, page, limit int) (*GroupListResponse, error) {
	logger.Debug("Searching groups", "query", query, "page", page)

	var response GroupListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"q":     query,
			"page":  fmt.Sprintf("%d", page),
			"limit": fmt.Sprintf("%d", limit),
		}).
		Get("/search/study-groups")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	if err := decodeResult(resp.Body(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}
