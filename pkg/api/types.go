package api

import "time"

// Vote types as the backend spells them.
const (
	VoteNone = ""
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// User represents a StudyVerse user
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// ItemID implements the collection item contract
func (u *User) ItemID() string { return u.ID }

// UserStats holds follow/post counters for a user profile
type UserStats struct {
	UserID         string `json:"user_id"`
	FollowerCount  int    `json:"followers_count"`
	FollowingCount int    `json:"followings_count"`
	PostCount      int    `json:"posts_count"`
	GroupCount     int    `json:"groups_count"`
	IsFollowing    bool   `json:"is_following"`
}

// Post represents a news-feed post
type Post struct {
	ID           string    `json:"_id"`
	Content      string    `json:"content"`
	UserInfo     User      `json:"user_info"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	IsLiked      bool      `json:"is_liked"`
	Privacy      string    `json:"privacy,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Post) ItemID() string { return p.ID }

// StudyGroup represents a study group
type StudyGroup struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Privacy     string    `json:"privacy"`
	Role        string    `json:"role,omitempty"` // admin, member or guest
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g *StudyGroup) ItemID() string { return g.ID }

// Question represents a question posted in a study group
type Question struct {
	ID         string    `json:"_id"`
	GroupID    string    `json:"group_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserInfo   User      `json:"user_info"`
	Status     string    `json:"status,omitempty"` // pending, approved, rejected
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	UserVote   string    `json:"user_vote"`
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func (q *Question) ItemID() string { return q.ID }

// GetVotes implements the collection votable contract
func (q *Question) GetVotes() (up, down int, userVote string) {
	return q.Upvotes, q.Downvotes, q.UserVote
}

// SetVotes implements the collection votable contract
func (q *Question) SetVotes(up, down int, userVote string) {
	q.Upvotes, q.Downvotes, q.UserVote = up, down, userVote
}

// Reply represents a reply to a question
type Reply struct {
	ID           string    `json:"_id"`
	QuestionID   string    `json:"question_id"`
	Content      string    `json:"content"`
	UserInfo     User      `json:"user_info"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
	UserVote     string    `json:"user_vote"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *Reply) ItemID() string { return r.ID }

func (r *Reply) GetVotes() (up, down int, userVote string) {
	return r.Upvotes, r.Downvotes, r.UserVote
}

func (r *Reply) SetVotes(up, down int, userVote string) {
	r.Upvotes, r.Downvotes, r.UserVote = up, down, userVote
}

// Comment represents a comment on a reply
type Comment struct {
	ID        string    `json:"_id"`
	ReplyID   string    `json:"reply_id"`
	Content   string    `json:"content"`
	UserInfo  User      `json:"user_info"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) ItemID() string { return c.ID }

// Notification represents a notification
type Notification struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Actor     User      `json:"actor,omitempty"`
	TargetURL string    `json:"target_url,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) ItemID() string { return n.ID }

// JoinRequest represents a pending request to join a group
type JoinRequest struct {
	ID        string    `json:"_id"`
	GroupID   string    `json:"group_id"`
	UserInfo  User      `json:"user_info"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (j *JoinRequest) ItemID() string { return j.ID }

// Invitation represents a group invitation sent to a user
type Invitation struct {
	ID        string    `json:"_id"`
	GroupID   string    `json:"group_id"`
	GroupName string    `json:"group_name"`
	Inviter   User      `json:"inviter"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Invitation) ItemID() string { return i.ID }

// Conversation represents a direct-message thread
type Conversation struct {
	ID          string    `json:"_id"`
	Participant User      `json:"participant"`
	LastMessage string    `json:"last_message,omitempty"`
	UnreadCount int       `json:"unread_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Conversation) ItemID() string { return c.ID }

// Message represents one direct message
type Message struct {
	ID             string    `json:"_id"`
	ConversationID string    `json:"conversation_id"`
	Sender         User      `json:"sender"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func (m *Message) ItemID() string { return m.ID }

// SearchHistoryItem represents a saved search query
type SearchHistoryItem struct {
	ID        string    `json:"_id"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *SearchHistoryItem) ItemID() string { return s.ID }

// Pagination is the list metadata the backend attaches to paged results
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Auth request/response shapes

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
