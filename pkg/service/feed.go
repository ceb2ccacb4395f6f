package service

import (
	"context"
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
	"github.com/truongthuanhung/studyverse-cli/pkg/prompter"
)

// FeedService provides news-feed operations over a paged collection store
type FeedService struct {
	store *collection.Store
	coord *collection.Coordinator
}

// NewFeedService creates a new feed service
func NewFeedService() *FeedService {
	store := newStore()
	return &FeedService{
		store: store,
		coord: collection.NewCoordinator(store, collection.CoordinatorConfig{
			Create: func(ctx context.Context, key collection.Key, content string) (collection.Item, error) {
				return api.CreatePost(content, "public")
			},
			Delete: func(ctx context.Context, key collection.Key, id string) error {
				return api.DeletePost(id)
			},
		}),
	}
}

// ViewFeed displays the news feed, loading pages as the user asks for more
func (fs *FeedService) ViewFeed(pages int) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Viewing feed", "pages", pages)
	ctx := context.Background()
	key := feedKey()

	source := collection.NewSignalSource()
	trigger := collection.NewScrollTrigger(fs.store, key, source)
	trigger.Arm(ctx)
	defer trigger.Stop()

	if err := fs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}
	for page := 2; page <= pages; page++ {
		if !fs.store.Snapshot(key).HasMore {
			break
		}
		source.Trigger()
	}

	snap := fs.store.Snapshot(key)
	if snap.Error != "" {
		return fmt.Errorf("failed to fetch feed: %s", snap.Error)
	}
	if len(snap.Items) == 0 {
		fmt.Println("No posts in your feed.")
		return nil
	}

	displayPosts("Your Feed", snap)
	return nil
}

// CreatePost publishes a new post
func (fs *FeedService) CreatePost(content, privacy string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Creating post", "privacy", privacy)

	post, err := api.CreatePost(content, privacy)
	if err != nil {
		formatter.PrintError("Failed to create post: %v", err)
		return err
	}

	fs.store.Prepend(feedKey(), post)
	formatter.PrintSuccess("✓ Post created [%s]", post.ID)
	return nil
}

// DeletePost deletes one of the user's posts after confirmation
func (fs *FeedService) DeletePost(postID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	confirm, err := prompter.PromptConfirm("Delete this post?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	if err := fs.coord.Delete(context.Background(), feedKey(), postID); err != nil {
		formatter.PrintError("Failed to delete post: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Post deleted")
	return nil
}

// LikePost likes or unlikes a post
func (fs *FeedService) LikePost(postID string, unlike bool) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	var err error
	if unlike {
		err = api.UnlikePost(postID)
	} else {
		err = api.LikePost(postID)
	}
	if err != nil {
		formatter.PrintError("Failed to update like: %v", err)
		return err
	}

	// Patch the cached copy so a redisplay doesn't need a refetch.
	fs.store.UpdateItem(feedKey(), postID, func(it collection.Item) {
		if post, ok := it.(*api.Post); ok {
			if unlike && post.IsLiked {
				post.IsLiked = false
				post.LikeCount--
			} else if !unlike && !post.IsLiked {
				post.IsLiked = true
				post.LikeCount++
			}
		}
	})

	if unlike {
		formatter.PrintSuccess("✓ Unliked")
	} else {
		formatter.PrintSuccess("✓ Liked")
	}
	return nil
}

// ViewUserPosts displays posts authored by a specific user
func (fs *FeedService) ViewUserPosts(userID string, pages int) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Viewing user posts", "user_id", userID)
	ctx := context.Background()
	key := userPostsKey(userID)

	if err := fs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch posts: %w", err)
	}
	for page := 2; page <= pages; page++ {
		snap := fs.store.Snapshot(key)
		if !snap.HasMore {
			break
		}
		if err := fs.store.FetchPage(ctx, key, snap.CurrentPage+1); err != nil {
			return fmt.Errorf("failed to fetch posts: %w", err)
		}
	}

	snap := fs.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("No posts from this user.")
		return nil
	}

	displayPosts("Posts", snap)
	return nil
}

// displayPosts renders a post collection snapshot
func displayPosts(title string, snap collection.PageState) {
	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint(title))

	for i, it := range snap.Items {
		post, ok := it.(*api.Post)
		if !ok {
			continue
		}
		liked := ""
		if post.IsLiked {
			liked = " (liked)"
		}
		fmt.Printf("%d. %s [%s]\n", i+1, formatter.Bold.Sprint(post.UserInfo.Username), post.ID)
		fmt.Printf("   %s\n", post.Content)
		fmt.Printf("   %d like%s%s | %d comment%s | %s\n",
			post.LikeCount, pluralize(post.LikeCount), liked,
			post.CommentCount, pluralize(post.CommentCount),
			post.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("\n")
	}

	if snap.HasMore {
		fmt.Printf("Showing %d posts (page %d, more available)\n\n", len(snap.Items), snap.CurrentPage)
	} else {
		fmt.Printf("Showing all %d posts\n\n", len(snap.Items))
	}
}
