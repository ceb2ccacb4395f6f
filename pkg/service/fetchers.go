package service

import (
	"context"
	"fmt"

	"github.com/truongthuanhung/studyverse-cli/pkg/api"
	"github.com/truongthuanhung/studyverse-cli/pkg/collection"
)

// Entity and scope names used in collection keys. One key identifies one
// independently paged list.
const (
	entityPost         = "post"
	entityUser         = "user"
	entityGroup        = "group"
	entityQuestion     = "question"
	entityReply        = "reply"
	entityComment      = "comment"
	entityConversation = "conversation"
	entityMessage      = "message"
	entityNotification = "notification"
	entityJoinRequest  = "join_request"
	entityInvitation   = "invitation"

	scopeFeed    = "feed"
	scopeMine    = "mine"
	scopeSearch  = "search"
	scopePending = "pending"
)

// Key constructors. Keeping them in one place is what guarantees two views of
// the same list share cache state.

func feedKey() collection.Key {
	return collection.Key{Entity: entityPost, Scope: scopeFeed}
}

func userPostsKey(userID string) collection.Key {
	return collection.Key{Entity: entityPost, Scope: "by_user", Parent: userID}
}

func postSearchKey(query string) collection.Key {
	return collection.Key{Entity: entityPost, Scope: scopeSearch, Parent: query}
}

func userSearchKey(query string) collection.Key {
	return collection.Key{Entity: entityUser, Scope: scopeSearch, Parent: query}
}

func myGroupsKey() collection.Key {
	return collection.Key{Entity: entityGroup, Scope: scopeMine}
}

func groupSearchKey(query string) collection.Key {
	return collection.Key{Entity: entityGroup, Scope: scopeSearch, Parent: query}
}

func questionsKey(groupID string) collection.Key {
	return collection.Key{Entity: entityQuestion, Parent: groupID}
}

func pendingQuestionsKey(groupID string) collection.Key {
	return collection.Key{Entity: entityQuestion, Scope: scopePending, Parent: groupID}
}

func repliesKey(questionID string) collection.Key {
	return collection.Key{Entity: entityReply, Parent: questionID}
}

func commentsKey(replyID string) collection.Key {
	return collection.Key{Entity: entityComment, Parent: replyID}
}

func conversationsKey() collection.Key {
	return collection.Key{Entity: entityConversation}
}

func messagesKey(conversationID string) collection.Key {
	return collection.Key{Entity: entityMessage, Parent: conversationID}
}

func notificationsKey() collection.Key {
	return collection.Key{Entity: entityNotification}
}

func joinRequestsKey(groupID string) collection.Key {
	return collection.Key{Entity: entityJoinRequest, Parent: groupID}
}

func invitationsKey() collection.Key {
	return collection.Key{Entity: entityInvitation}
}

// newStore builds a collection store backed by the REST API. Every paged list
// the CLI renders goes through this one fetcher, dispatched on the key.
func newStore() *collection.Store {
	return collection.NewStore(collection.FetcherFunc(fetchPage), pageSize())
}

func fetchPage(ctx context.Context, key collection.Key, page, limit int) (collection.Page, error) {
	switch key.Entity {
	case entityPost:
		return fetchPosts(key, page, limit)

	case entityUser:
		resp, err := api.SearchUsers(key.Parent, page, limit)
		if err != nil {
			return collection.Page{}, err
		}
		items := make([]collection.Item, 0, len(resp.Users))
		for i := range resp.Users {
			items = append(items, &resp.Users[i])
		}
		return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil

	case entityGroup:
		return fetchGroups(key, page, limit)

	case entityQuestion:
		return fetchQuestions(key, page, limit)

	case entityReply:
		resp, err := api.GetReplies(key.Parent, page, limit)
		if err != nil {
			return collection.Page{}, err
		}
		items := make([]collection.Item, 0, len(resp.Replies))
		for i := range resp.Replies {
			items = append(items, &resp.Replies[i])
		}
		return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil

	case entityComment:
		resp, err := api.GetComments(key.Parent, page, limit)
		if err != nil {
			return collection.Page{}, err
		}
		items := make([]collection.Item, 0, len(resp.Comments))
		for i := range resp.Comments {
			items = append(items, &resp.Comments[i])
		}
		return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil

	case entityConversation:
		resp, err := api.GetConversations(page, limit)
		if err != nil {
			return collection.Page{}, err
		}
		items := make([]collection.Item, 0, len(resp.Conversations))
		for i := range resp.Conversations {
			items = append(items, &resp.Conversations[i])
		}
		return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil

	case entityMessage:
		resp, err := api.GetMessages(key.Parent, page, limit)
		if err != nil {
			return collection.Page{}, err
		}
		items := make([]collection.Item, 0, len(resp.Messages))
		for i := range resp.Messages {
			items = append(items, &resp.Messages[i])
		}
		return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil

	case entityNotification:
		resp, err := api.GetNotifications(page, limit)
		if err != nil {
			return collection.Page{}, err
		}
		items := make([]collection.Item, 0, len(resp.Notifications))
		for i := range resp.Notifications {
			items = append(items, &resp.Notifications[i])
		}
		return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil

	case entityJoinRequest:
		resp, err := api.GetJoinRequests(key.Parent, page, limit)
		if err != nil {
			return collection.Page{}, err
		}
		items := make([]collection.Item, 0, len(resp.JoinRequests))
		for i := range resp.JoinRequests {
			items = append(items, &resp.JoinRequests[i])
		}
		return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil

	case entityInvitation:
		resp, err := api.GetInvitations(page, limit)
		if err != nil {
			return collection.Page{}, err
		}
		items := make([]collection.Item, 0, len(resp.Invitations))
		for i := range resp.Invitations {
			items = append(items, &resp.Invitations[i])
		}
		return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil
	}

	return collection.Page{}, fmt.Errorf("unknown collection entity %q", key.Entity)
}

func fetchPosts(key collection.Key, page, limit int) (collection.Page, error) {
	var resp *api.PostListResponse
	var err error

	switch key.Scope {
	case scopeFeed:
		resp, err = api.GetFeed(page, limit)
	case scopeSearch:
		resp, err = api.SearchPosts(key.Parent, page, limit)
	default:
		resp, err = api.GetUserPosts(key.Parent, page, limit)
	}
	if err != nil {
		return collection.Page{}, err
	}

	items := make([]collection.Item, 0, len(resp.Posts))
	for i := range resp.Posts {
		items = append(items, &resp.Posts[i])
	}
	return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil
}

func fetchGroups(key collection.Key, page, limit int) (collection.Page, error) {
	var resp *api.GroupListResponse
	var err error

	if key.Scope == scopeSearch {
		resp, err = api.SearchGroups(key.Parent, page, limit)
	} else {
		resp, err = api.GetMyGroups(page, limit)
	}
	if err != nil {
		return collection.Page{}, err
	}

	items := make([]collection.Item, 0, len(resp.Groups))
	for i := range resp.Groups {
		items = append(items, &resp.Groups[i])
	}
	return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil
}

func fetchQuestions(key collection.Key, page, limit int) (collection.Page, error) {
	var resp *api.QuestionListResponse
	var err error

	if key.Scope == scopePending {
		resp, err = api.GetPendingQuestions(key.Parent, page, limit)
	} else {
		resp, err = api.GetGroupQuestions(key.Parent, page, limit)
	}
	if err != nil {
		return collection.Page{}, err
	}

	items := make([]collection.Item, 0, len(resp.Questions))
	for i := range resp.Questions {
		items = append(items, &resp.Questions[i])
	}
	return collection.Page{Items: items, TotalPages: resp.Pagination.TotalPages}, nil
}
