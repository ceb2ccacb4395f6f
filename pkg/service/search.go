package service

import (
	"context"
	"fmt"
	"time"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/config"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
	"github.com/truongthuanhung/studyverse-cli/pkg/prompter"
)

// SearchService provides search operations across posts, users, groups and
// tags.
type SearchService struct {
	store *collection.Store
}

// NewSearchService creates a new search service
func NewSearchService() *SearchService {
	return &SearchService{store: newStore()}
}

// SearchPosts runs a one-shot post search and records it in history
func (ss *SearchService) SearchPosts(query string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Searching posts", "query", query)
	key := postSearchKey(query)
	if err := ss.store.FetchPage(context.Background(), key, 1); err != nil {
		return fmt.Errorf("failed to search posts: %w", err)
	}

	if err := api.AddSearchHistory(query); err != nil {
		logger.Debug("Failed to record search history", "error", err)
	}

	snap := ss.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Printf("No posts found for \"%s\"\n", query)
		return nil
	}

	displayPosts(fmt.Sprintf("Results for \"%s\"", query), snap)
	return nil
}

// SearchUsers runs a one-shot user search
func (ss *SearchService) SearchUsers(query string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Searching users", "query", query)
	key := userSearchKey(query)
	if err := ss.store.FetchPage(context.Background(), key, 1); err != nil {
		return fmt.Errorf("failed to search users: %w", err)
	}

	snap := ss.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Printf("No users found for \"%s\"\n", query)
		return nil
	}

	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint(fmt.Sprintf("Users matching \"%s\"", query)))
	for i, it := range snap.Items {
		user, ok := it.(*api.User)
		if !ok {
			continue
		}
		fmt.Printf("%d. %s [%s]\n", i+1, formatter.Bold.Sprint(user.Username), user.ID)
		if user.FullName != "" {
			fmt.Printf("   %s\n", user.FullName)
		}
		fmt.Printf("\n")
	}

	return nil
}

// SearchGroups runs a one-shot group search
func (ss *SearchService) SearchGroups(query string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Searching groups", "query", query)
	key := groupSearchKey(query)
	if err := ss.store.FetchPage(context.Background(), key, 1); err != nil {
		return fmt.Errorf("failed to search groups: %w", err)
	}

	snap := ss.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Printf("No groups found for \"%s\"\n", query)
		return nil
	}

	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint(fmt.Sprintf("Groups matching \"%s\"", query)))
	for i, it := range snap.Items {
		group, ok := it.(*api.StudyGroup)
		if !ok {
			continue
		}
		fmt.Printf("%d. %s [%s]\n", i+1, formatter.Bold.Sprint(group.Name), group.ID)
		fmt.Printf("   %s | %d member%s\n\n", group.Privacy, group.MemberCount, pluralize(group.MemberCount))
	}

	return nil
}

// SearchTags prints tag suggestions for a prefix
func (ss *SearchService) SearchTags(query string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	resp, err := api.SearchTags(query)
	if err != nil {
		formatter.PrintError("Failed to search tags: %v", err)
		return err
	}

	if len(resp.Tags) == 0 {
		fmt.Printf("No tags matching \"%s\"\n", query)
		return nil
	}

	for _, tag := range resp.Tags {
		fmt.Printf("#%s (%d post%s)\n", tag.Name, tag.Count, pluralize(tag.Count))
	}
	return nil
}

// Interactive runs a line-by-line search session. Input is debounced the same
// way a search box is: typing quickly only fires a request for the last stable
// value, and an emptied line clears the results immediately.
func (ss *SearchService) Interactive() error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	delay := time.Duration(config.GetInt("search.debounce_ms")) * time.Millisecond
	done := make(chan struct{}, 1)

	debouncer := collection.NewDebouncer(delay,
		func(ctx context.Context, query string) {
			defer func() { done <- struct{}{} }()
			key := postSearchKey(query)
			ss.store.Reset(key)
			if err := ss.store.FetchPage(ctx, key, 1); err != nil {
				formatter.PrintError("Search failed: %v", err)
				return
			}
			snap := ss.store.Snapshot(key)
			if len(snap.Items) == 0 {
				fmt.Printf("No posts found for \"%s\"\n", query)
				return
			}
			displayPosts(fmt.Sprintf("Results for \"%s\"", query), snap)
		},
		func() {
			fmt.Println("(results cleared)")
		},
	)
	defer debouncer.Cancel()

	fmt.Println("Type a query and press Enter; an empty line clears, 'q' quits.")
	ctx := context.Background()
	for {
		line, err := prompter.PromptString("search> ")
		if err != nil {
			return err
		}
		if line == "q" {
			return nil
		}

		debouncer.Update(ctx, line)
		if line != "" {
			// Wait out the quiet interval so results print before the next
			// prompt.
			select {
			case <-done:
			case <-time.After(delay + 5*time.Second):
				formatter.PrintWarning("Search timed out")
			}
		}
	}
}

// History prints recent searches
func (ss *SearchService) History() error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	resp, err := api.GetSearchHistory()
	if err != nil {
		formatter.PrintError("Failed to fetch search history: %v", err)
		return err
	}

	if len(resp.History) == 0 {
		fmt.Println("No search history.")
		return nil
	}

	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint("Recent Searches"))
	for i, item := range resp.History {
		fmt.Printf("%d. %s [%s]\n", i+1, item.Query, item.ID)
	}
	fmt.Printf("\n")

	return nil
}

// ClearHistoryEntry deletes one saved search
func (ss *SearchService) ClearHistoryEntry(historyID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	if err := api.DeleteSearchHistory(historyID); err != nil {
		formatter.PrintError("Failed to delete search history: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Search removed from history")
	return nil
}
