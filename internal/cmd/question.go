package cmd

import (
	"github.com/spf13/cobra"

	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
	"github.com/truongthuanhung/studyverse-cli/pkg/service"
)

var (
	questionPages int
	downvoteFlag  bool
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Question and reply commands",
	Long:  "Ask, answer, vote on and moderate study-group questions",
}

var questionListCmd = &cobra.Command{
	Use:   "list <group-id>",
	Short: "List a group's questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.ListQuestions(args[0], questionPages)
	},
}

var questionPendingCmd = &cobra.Command{
	Use:   "pending <group-id>",
	Short: "List questions awaiting approval (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.ListPendingQuestions(args[0])
	},
}

var questionShowCmd = &cobra.Command{
	Use:   "show <group-id> <question-id>",
	Short: "Show a question with its replies",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.ShowQuestion(args[0], args[1])
	},
}

var questionAskCmd = &cobra.Command{
	Use:   "ask <group-id> <title> <content>",
	Short: "Ask a question in a group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.AskQuestion(args[0], args[1], args[2])
	},
}

var questionReplyCmd = &cobra.Command{
	Use:   "reply <question-id> <content>",
	Short: "Reply to a question",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.Reply(args[0], args[1])
	},
}

var questionCommentCmd = &cobra.Command{
	Use:   "comment <reply-id> <content>",
	Short: "Comment on a reply",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.Comment(args[0], args[1])
	},
}

var questionCommentsCmd = &cobra.Command{
	Use:   "comments <reply-id>",
	Short: "List the comments on a reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.ListComments(args[0])
	},
}

var questionDeleteCmd = &cobra.Command{
	Use:   "delete <group-id> <question-id>",
	Short: "Delete one of your questions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.DeleteQuestion(args[0], args[1])
	},
}

var questionDeleteReplyCmd = &cobra.Command{
	Use:   "delete-reply <question-id> <reply-id>",
	Short: "Delete one of your replies",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.DeleteReply(args[0], args[1])
	},
}

var questionVoteCmd = &cobra.Command{
	Use:   "vote <group-id> <question-id>",
	Short: "Vote on a question (repeat to retract)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.VoteQuestion(args[0], args[1], voteType())
	},
}

var questionVoteReplyCmd = &cobra.Command{
	Use:   "vote-reply <question-id> <reply-id>",
	Short: "Vote on a reply (repeat to retract)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.VoteReply(args[0], args[1], voteType())
	},
}

var questionApproveCmd = &cobra.Command{
	Use:   "approve <group-id> <question-id>",
	Short: "Approve a pending question (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.ModerateQuestion(args[0], args[1], true)
	},
}

var questionRejectCmd = &cobra.Command{
	Use:   "reject <group-id> <question-id>",
	Short: "Reject a pending question (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		questionService := service.NewQuestionService()
		return questionService.ModerateQuestion(args[0], args[1], false)
	},
}

func voteType() string {
	if downvoteFlag {
		return collection.VoteDown
	}
	return collection.VoteUp
}

func init() {
	questionListCmd.Flags().IntVar(&questionPages, "pages", 1, "Number of pages to load")
	questionVoteCmd.Flags().BoolVar(&downvoteFlag, "down", false, "Downvote instead of upvote")
	questionVoteReplyCmd.Flags().BoolVar(&downvoteFlag, "down", false, "Downvote instead of upvote")

	questionCmd.AddCommand(questionListCmd)
	questionCmd.AddCommand(questionPendingCmd)
	questionCmd.AddCommand(questionShowCmd)
	questionCmd.AddCommand(questionAskCmd)
	questionCmd.AddCommand(questionReplyCmd)
	questionCmd.AddCommand(questionCommentCmd)
	questionCmd.AddCommand(questionCommentsCmd)
	questionCmd.AddCommand(questionDeleteCmd)
	questionCmd.AddCommand(questionDeleteReplyCmd)
	questionCmd.AddCommand(questionVoteCmd)
	questionCmd.AddCommand(questionVoteReplyCmd)
	questionCmd.AddCommand(questionApproveCmd)
	questionCmd.AddCommand(questionRejectCmd)
}
