package service

import (
	"context"
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/credentials"
	"github.com/truongthuanhung/studyverse-cli/pkg/formatter"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
	"github.com/truongthuanhung/studyverse-cli/pkg/prompter"
)

// QuestionService provides question, reply and comment operations within a
// study group.
type QuestionService struct {
	store *collection.Store
	coord *collection.Coordinator
}

// NewQuestionService creates a new question service
func NewQuestionService() *QuestionService {
	store := newStore()

	author := ""
	if creds, err := credentials.Load(); err == nil && creds != nil {
		author = creds.User.Username
	}

	return &QuestionService{
		store: store,
		coord: collection.NewCoordinator(store, collection.CoordinatorConfig{
			Author: author,
			Create: func(ctx context.Context, key collection.Key, content string) (collection.Item, error) {
				switch key.Entity {
				case entityReply:
					return api.CreateReply(key.Parent, content)
				case entityComment:
					return api.CreateComment(key.Parent, content)
				}
				return nil, fmt.Errorf("cannot create %s entries", key.Entity)
			},
			Delete: func(ctx context.Context, key collection.Key, id string) error {
				switch key.Entity {
				case entityQuestion:
					return api.DeleteQuestion(key.Parent, id)
				case entityReply:
					return api.DeleteReply(key.Parent, id)
				case entityComment:
					return api.DeleteComment(key.Parent, id)
				}
				return fmt.Errorf("cannot delete %s entries", key.Entity)
			},
			Vote: func(ctx context.Context, key collection.Key, id, voteType string) error {
				switch key.Entity {
				case entityQuestion:
					return api.VoteQuestion(key.Parent, id, voteType)
				case entityReply:
					return api.VoteReply(key.Parent, id, voteType)
				}
				return fmt.Errorf("cannot vote on %s entries", key.Entity)
			},
		}),
	}
}

// ListQuestions displays a group's approved questions
func (qs *QuestionService) ListQuestions(groupID string, pages int) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	logger.Debug("Listing questions", "group_id", groupID)
	ctx := context.Background()
	key := questionsKey(groupID)

	if err := qs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch questions: %w", err)
	}
	for page := 2; page <= pages; page++ {
		snap := qs.store.Snapshot(key)
		if !snap.HasMore {
			break
		}
		if err := qs.store.FetchPage(ctx, key, snap.CurrentPage+1); err != nil {
			return fmt.Errorf("failed to fetch questions: %w", err)
		}
	}

	snap := qs.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("No questions in this group yet.")
		return nil
	}

	displayQuestions("Questions", snap)
	return nil
}

// ListPendingQuestions displays questions awaiting moderation (admin only)
func (qs *QuestionService) ListPendingQuestions(groupID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	key := pendingQuestionsKey(groupID)
	if err := qs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch pending questions: %w", err)
	}

	snap := qs.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("No questions awaiting approval.")
		return nil
	}

	displayQuestions("Pending Questions", snap)
	return nil
}

// ShowQuestion displays one question with its replies
func (qs *QuestionService) ShowQuestion(groupID, questionID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	question, err := api.GetQuestion(groupID, questionID)
	if err != nil {
		formatter.PrintError("Failed to fetch question: %v", err)
		return err
	}

	fmt.Printf("\n%s\n", formatter.Bold.Sprint(question.Title))
	fmt.Printf("by %s on %s\n\n", question.UserInfo.Username, question.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("%s\n\n", question.Content)
	fmt.Printf("▲ %d  ▼ %d", question.Upvotes, question.Downvotes)
	if question.UserVote != "" {
		fmt.Printf("  (your vote: %s)", question.UserVote)
	}
	fmt.Printf("\n\n")

	ctx := context.Background()
	key := repliesKey(questionID)
	if err := qs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch replies: %w", err)
	}

	snap := qs.store.Snapshot(key)
	if len(snap.Items) == 0 && len(snap.Pending) == 0 {
		fmt.Println("No replies yet.")
		return nil
	}

	fmt.Printf("%s\n\n", formatter.Bold.Sprint("Replies"))
	for i, it := range snap.Items {
		reply, ok := it.(*api.Reply)
		if !ok {
			continue
		}
		fmt.Printf("%d. %s [%s]\n", i+1, formatter.Bold.Sprint(reply.UserInfo.Username), reply.ID)
		fmt.Printf("   %s\n", reply.Content)
		fmt.Printf("   ▲ %d  ▼ %d | %d comment%s | %s\n\n",
			reply.Upvotes, reply.Downvotes,
			reply.CommentCount, pluralize(reply.CommentCount),
			reply.CreatedAt.Format("2006-01-02 15:04"))
	}
	for _, p := range snap.Pending {
		fmt.Printf("*. %s (sending...)\n   %s\n\n", p.Author, p.Content)
	}

	return nil
}

// AskQuestion posts a new question to a group
func (qs *QuestionService) AskQuestion(groupID, title, content string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	question, err := api.CreateQuestion(groupID, title, content)
	if err != nil {
		formatter.PrintError("Failed to post question: %v", err)
		return err
	}

	if question.Status == "pending" {
		formatter.PrintSuccess("✓ Question submitted for approval [%s]", question.ID)
	} else {
		qs.store.Prepend(questionsKey(groupID), question)
		formatter.PrintSuccess("✓ Question posted [%s]", question.ID)
	}
	return nil
}

// Reply posts a reply to a question. The entry shows up immediately as a
// provisional item while the request runs.
func (qs *QuestionService) Reply(questionID, content string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	reply, err := qs.coord.Create(context.Background(), repliesKey(questionID), content)
	if err != nil {
		formatter.PrintError("Failed to post reply: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Reply posted [%s]", reply.ItemID())
	return nil
}

// Comment posts a comment on a reply
func (qs *QuestionService) Comment(replyID, content string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	comment, err := qs.coord.Create(context.Background(), commentsKey(replyID), content)
	if err != nil {
		formatter.PrintError("Failed to post comment: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Comment posted [%s]", comment.ItemID())
	return nil
}

// ListComments displays the comments on a reply
func (qs *QuestionService) ListComments(replyID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	key := commentsKey(replyID)
	if err := qs.store.FetchPage(ctx, key, 1); err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}

	snap := qs.store.Snapshot(key)
	if len(snap.Items) == 0 {
		fmt.Println("No comments yet.")
		return nil
	}

	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint("Comments"))
	for i, it := range snap.Items {
		comment, ok := it.(*api.Comment)
		if !ok {
			continue
		}
		fmt.Printf("%d. %s: %s\n", i+1, formatter.Bold.Sprint(comment.UserInfo.Username), comment.Content)
	}
	fmt.Printf("\n")

	return nil
}

// DeleteQuestion removes a question after confirmation
func (qs *QuestionService) DeleteQuestion(groupID, questionID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	confirm, err := prompter.PromptConfirm("Delete this question?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	if err := qs.coord.Delete(context.Background(), questionsKey(groupID), questionID); err != nil {
		formatter.PrintError("Failed to delete question: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Question deleted")
	return nil
}

// DeleteReply removes a reply after confirmation
func (qs *QuestionService) DeleteReply(questionID, replyID string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	confirm, err := prompter.PromptConfirm("Delete this reply?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	if err := qs.coord.Delete(context.Background(), repliesKey(questionID), replyID); err != nil {
		formatter.PrintError("Failed to delete reply: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Reply deleted")
	return nil
}

// VoteQuestion votes on a question. The counters update immediately; a failed
// request restores them.
func (qs *QuestionService) VoteQuestion(groupID, questionID, voteType string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	key := questionsKey(groupID)
	if err := qs.ensureCached(key, groupID, questionID); err != nil {
		return err
	}

	if err := qs.coord.Vote(context.Background(), key, questionID, voteType); err != nil {
		formatter.PrintError("Failed to vote: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Vote recorded")
	return nil
}

// VoteReply votes on a reply
func (qs *QuestionService) VoteReply(questionID, replyID, voteType string) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	key := repliesKey(questionID)
	if snap := qs.store.Snapshot(key); len(snap.Items) == 0 {
		if err := qs.store.FetchPage(context.Background(), key, 1); err != nil {
			return fmt.Errorf("failed to fetch replies: %w", err)
		}
	}

	if err := qs.coord.Vote(context.Background(), key, replyID, voteType); err != nil {
		formatter.PrintError("Failed to vote: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Vote recorded")
	return nil
}

// ModerateQuestion approves or rejects a pending question (admin only)
func (qs *QuestionService) ModerateQuestion(groupID, questionID string, approve bool) error {
	if _, err := requireAuth(); err != nil {
		return err
	}

	var err error
	if approve {
		err = api.ApproveQuestion(groupID, questionID)
	} else {
		err = api.RejectQuestion(groupID, questionID)
	}
	if err != nil {
		formatter.PrintError("Failed to moderate question: %v", err)
		return err
	}

	qs.store.RemoveItem(pendingQuestionsKey(groupID), questionID)
	qs.store.AdjustCounter(collection.CounterPendingQuestions, -1)

	if approve {
		formatter.PrintSuccess("✓ Question approved")
	} else {
		formatter.PrintSuccess("✓ Question rejected")
	}
	return nil
}

// ensureCached fetches page 1 for key when the target question isn't cached
// yet, so a vote has an item to patch.
func (qs *QuestionService) ensureCached(key collection.Key, groupID, questionID string) error {
	snap := qs.store.Snapshot(key)
	for _, it := range snap.Items {
		if it.ItemID() == questionID {
			return nil
		}
	}

	question, err := api.GetQuestion(groupID, questionID)
	if err != nil {
		return fmt.Errorf("failed to fetch question: %w", err)
	}
	qs.store.Prepend(key, question)
	return nil
}

func displayQuestions(title string, snap collection.PageState) {
	fmt.Printf("\n%s\n\n", formatter.Bold.Sprint(title))

	for i, it := range snap.Items {
		question, ok := it.(*api.Question)
		if !ok {
			continue
		}
		fmt.Printf("%d. %s [%s]\n", i+1, formatter.Bold.Sprint(question.Title), question.ID)
		fmt.Printf("   by %s | ▲ %d ▼ %d | %d repl%s | %s\n",
			question.UserInfo.Username,
			question.Upvotes, question.Downvotes,
			question.ReplyCount, pluralizeY(question.ReplyCount),
			question.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("\n")
	}

	if snap.HasMore {
		fmt.Printf("Showing %d questions (page %d, more available)\n\n", len(snap.Items), snap.CurrentPage)
	}
}

func pluralizeY(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
