package service

import (
	"context"
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// ProfileService provides user profile and follow operations
type ProfileService struct {
	store *collection.Store
	coord *collection.Coordinator

	// followChanged keeps concurrently displayed views of the same user in
	// sync after a follow or unfollow.
	followChanged *collection.Broadcaster
}

// NewProfileService creates a new profile service
func NewProfileService() *ProfileService {
	store := newStore()
	broadcaster := collection.NewBroadcaster()

	return &ProfileService{
		store:         store,
		followChanged: broadcaster,
		coord: collection.NewCoordinator(store, collection.CoordinatorConfig{
			Follow: func(ctx context.Context, userID string, follow bool) error {
				if follow {
					return api.FollowUser(userID)
				}
				return api.UnfollowUser(userID)
			},
			FollowChanged: broadcaster,
		}),
	}
}

// ViewProfile displays a user's profile with follow stats
func (ps *ProfileService) ViewProfile(userID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Viewing profile", "user_id", userID)

	user, err := api.GetUser(userID)
	if err != nil {
		formatter.PrintError("Failed to fetch user: %v", err)
		return err
	}

	stats, err := api.GetUserStats(userID)
	if err != nil {
		formatter.PrintError("Failed to fetch user stats: %v", err)
		return err
	}

	fmt.Printf("\n")
	kv := map[string]interface{}{
		"Username":  user.Username,
		"Full Name": user.FullName,
		"Followers": stats.FollowerCount,
		"Following": stats.FollowingCount,
		"Posts":     stats.PostCount,
		"Groups":    stats.GroupCount,
	}
	if user.Bio != "" {
		kv["Bio"] = user.Bio
	}
	if stats.IsFollowing {
		kv["You Follow"] = "✓ yes"
	}
	formatter.PrintKeyValue(kv)

	return nil
}

// Follow follows or unfollows a user, then refetches their stats so the
// displayed counters are authoritative.
func (ps *ProfileService) Follow(userID string, unfollow bool) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	unsub := ps.followChanged.Subscribe(func(id string) {
		stats, err := api.GetUserStats(id)
		if err != nil {
			logger.Error("Failed to refetch user stats", "user_id", id, "error", err)
			return
		}
		fmt.Printf("Followers: %d | Following you: %v\n", stats.FollowerCount, stats.IsFollowing)
	})
	defer unsub()

	if err := ps.coord.Follow(context.Background(), userID, !unfollow); err != nil {
		formatter.PrintError("Failed to update follow status: %v", err)
		return err
	}

	if unfollow {
		formatter.PrintSuccess("✓ Unfollowed")
	} else {
		formatter.PrintSuccess("✓ Following")
	}
	return nil
}
