package service

import (
	"context"
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// GroupService provides study-group operations
type GroupService struct {
	store *collection.Store
}

// NewGroupService creates a new group service
func NewGroupService() *GroupService {
	return &GroupService{store: newStore()}
}

// ListMyGroups displays the groups the user belongs to
func (gs *GroupService) ListMyGroups(pages int) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Listing my groups")
	ctx := context.Background()
	key := myGroupsKey()

	if err := gs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch groups: %w", err)
	}
	for page := 2; page <= pages; page++ {
		snap := gs.store.Snapshot(key)
		if !snap.HasMore {
			break
		}
		if err := gs.store.FetchPage(ctx, key, snap.CurrentPage+1); err != nil {
			return fmt.Errorf("failed to fetch groups: %w", err)
		}
	}

	snap := gs.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("You are not in any study groups yet.")
		return nil
	}

	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint("Your Study Groups"))
	for i, it := range snap.Items {
		group, ok := it.(*api.StudyGroup)
		if !ok {
			continue
		}
		role := ""
		if group.Role != "" {
			role = fmt.Sprintf(" (%s)", group.Role)
		}
		fmt.Printf("%d. %s%s [%s]\n", i+1, formatter.Bold.Sprint(group.Name), role, group.ID)
		if group.Description != "" {
			fmt.Printf("   %s\n", group.Description)
		}
		fmt.Printf("   %s | %d member%s\n", group.Privacy, group.MemberCount, pluralize(group.MemberCount))
		fmt.Printf("\n")
	}

	return nil
}

// ShowGroup displays one group with its badge counters
func (gs *GroupService) ShowGroup(groupID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Showing group", "group_id", groupID)

	group, err := api.GetGroup(groupID)
	if err != nil {
		formatter.PrintError("Failed to fetch group: %v", err)
		return err
	}

	fmt.Printf("\n")
	kv := map[string]interface{}{
		"Name":    group.Name,
		"Privacy": group.Privacy,
		"Members": group.MemberCount,
		"Created": group.CreatedAt.Format("2006-01-02"),
	}
	if group.Description != "" {
		kv["Description"] = group.Description
	}
	if group.Role != "" {
		kv["Your Role"] = group.Role
	}

	// Admins also see the moderation badges.
	if group.Role == "admin" {
		if count, err := api.GetJoinRequestCount(groupID); err == nil {
			gs.store.SetCounter(collection.CounterJoinRequests, count)
			kv["Pending Join Requests"] = count
		}
		if count, err := api.GetPendingQuestionCount(groupID); err == nil {
			gs.store.SetCounter(collection.CounterPendingQuestions, count)
			kv["Pending Questions"] = count
		}
	}

	formatter.PrintKeyValue(kv)
	return nil
}

// RequestToJoin sends a join request to a group
func (gs *GroupService) RequestToJoin(groupID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	req, err := api.RequestToJoin(groupID)
	if err != nil {
		formatter.PrintError("Failed to request to join: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Join request sent [%s]", req.ID)
	return nil
}

// CancelJoinRequest withdraws a pending join request
func (gs *GroupService) CancelJoinRequest(groupID, requestID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	if err := api.CancelJoinRequest(groupID, requestID); err != nil {
		formatter.PrintError("Failed to cancel join request: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Join request cancelled")
	return nil
}

// ListJoinRequests displays pending join requests for a group (admin only)
func (gs *GroupService) ListJoinRequests(groupID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	key := joinRequestsKey(groupID)
	if err := gs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch join requests: %w", err)
	}

	snap := gs.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("No pending join requests.")
		return nil
	}

	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint("Pending Join Requests"))
	for i, it := range snap.Items {
		req, ok := it.(*api.JoinRequest)
		if !ok {
			continue
		}
		fmt.Printf("%d. %s [%s]\n", i+1, formatter.Bold.Sprint(req.UserInfo.Username), req.ID)
		fmt.Printf("   Requested: %s\n\n", req.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// ResolveJoinRequest accepts or rejects a join request. The cached list and
// badge counter are patched after the server confirms.
func (gs *GroupService) ResolveJoinRequest(groupID, requestID string, accept bool) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	var err error
	if accept {
		err = api.AcceptJoinRequest(groupID, requestID)
	} else {
		err = api.RejectJoinRequest(groupID, requestID)
	}
	if err != nil {
		formatter.PrintError("Failed to resolve join request: %v", err)
		return err
	}

	gs.store.RemoveItem(joinRequestsKey(groupID), requestID)
	gs.store.AdjustCounter(collection.CounterJoinRequests, -1)

	if accept {
		formatter.PrintSuccess("✓ Join request accepted")
	} else {
		formatter.PrintSuccess("✓ Join request rejected")
	}
	return nil
}

// ListInvitations displays pending group invitations for the user
func (gs *GroupService) ListInvitations() error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	key := invitationsKey()
	if err := gs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch invitations: %w", err)
	}

	snap := gs.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("No pending invitations.")
		return nil
	}

	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint("Group Invitations"))
	for i, it := range snap.Items {
		inv, ok := it.(*api.Invitation)
		if !ok {
			continue
		}
		fmt.Printf("%d. %s [%s]\n", i+1, formatter.Bold.Sprint(inv.GroupName), inv.ID)
		fmt.Printf("   Invited by %s on %s\n\n", inv.Inviter.Username, inv.CreatedAt.Format("2006-01-02"))
	}

	return nil
}

// RespondToInvitation accepts or declines a group invitation
func (gs *GroupService) RespondToInvitation(invitationID string, accept bool) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	if err := api.RespondToInvitation(invitationID, accept); err != nil {
		formatter.PrintError("Failed to respond to invitation: %v", err)
		return err
	}

	gs.store.RemoveItem(invitationsKey(), invitationID)

	if accept {
		formatter.PrintSuccess("✓ Invitation accepted")
	} else {
		formatter.PrintSuccess("✓ Invitation declined")
	}
	return nil
}
