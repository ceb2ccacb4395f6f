package collection

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Vote types. Same spellings the backend uses.
const (
	VoteNone = ""
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

var (
	// ErrEmptyContent is returned before any network call when a create is
	// submitted with blank content.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrNotVotable is returned when a vote targets an item without vote
	// counters.
	ErrNotVotable = errors.New("item does not support voting")

	// ErrDeleteInFlight is returned when a delete is requested for an item
	// whose delete is already running.
	ErrDeleteInFlight = errors.New("delete already in progress")
)

// Votable is an Item carrying vote counters
type Votable interface {
	Item
	GetVotes() (up, down int, userVote string)
	SetVotes(up, down int, userVote string)
}

// Creator persists a new entity for key and returns the confirmed record
type Creator func(ctx context.Context, key Key, content string) (Item, error)

// Deleter removes the entity with the given id
type Deleter func(ctx context.Context, key Key, id string) error

// Voter records a vote server-side
type Voter func(ctx context.Context, key Key, id, voteType string) error

// FollowFunc follows (follow=true) or unfollows a user
type FollowFunc func(ctx context.Context, userID string, follow bool) error

// CoordinatorConfig wires the coordinator's network operations
type CoordinatorConfig struct {
	Create Creator
	Delete Deleter
	Vote   Voter
	Follow FollowFunc

	// Author is the display name stamped on provisional entries
	Author string

	// FollowChanged broadcasts a successful follow/unfollow so every mounted
	// view of that user refetches its stats.
	FollowChanged *Broadcaster
}

// Coordinator wraps create/delete/vote/follow with optimistic local state.
// Creates become visible synchronously as provisional entries; deletes wait
// for server confirmation; votes patch counters immediately and roll back on
// failure.
type Coordinator struct {
	store *Store
	cfg   CoordinatorConfig

	mu       sync.Mutex
	deleting map[string]bool
}

// NewCoordinator creates a coordinator over store
func NewCoordinator(store *Store, cfg CoordinatorConfig) *Coordinator {
	return &Coordinator{
		store:    store,
		cfg:      cfg,
		deleting: make(map[string]bool),
	}
}

// Create inserts a provisional entry for key before any network I/O, then
// issues the create call. On success the provisional entry is replaced by the
// confirmed record at the head of the list; on failure it is removed and the
// error recorded on the key.
func (c *Coordinator) Create(ctx context.Context, key Key, content string) (Item, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	prov := Provisional{
		CorrelationID: uuid.NewString(),
		Content:       content,
		Author:        c.cfg.Author,
		CreatedAt:     time.Now(),
	}
	c.store.AddPending(key, prov)

	item, err := c.cfg.Create(ctx, key, content)

	c.store.RemovePending(key, prov.CorrelationID)
	if err != nil {
		c.store.FailMutation(key, err.Error())
		return nil, err
	}

	c.store.Prepend(key, item)
	return item, nil
}

// Delete removes an item only after server confirmation. While the call is in
// flight IsDeleting reports true so the UI can disable the affordance; on
// failure the item stays and the error is recorded.
func (c *Coordinator) Delete(ctx context.Context, key Key, id string) error {
	flightKey := key.String() + "#" + id

	c.mu.Lock()
	if c.deleting[flightKey] {
		c.mu.Unlock()
		return ErrDeleteInFlight
	}
	c.deleting[flightKey] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.deleting, flightKey)
		c.mu.Unlock()
	}()

	if err := c.cfg.Delete(ctx, key, id); err != nil {
		c.store.FailMutation(key, err.Error())
		return err
	}

	c.store.RemoveItem(key, id)
	return nil
}

// IsDeleting reports whether a delete for the item is in flight
func (c *Coordinator) IsDeleting(key Key, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting[key.String()+"#"+id]
}

// Vote toggles a vote on the item. Voting the same direction twice retracts
// the vote; switching direction moves one counter to the other in a single
// step. Counters are patched locally before the network call and restored if
// it fails.
func (c *Coordinator) Vote(ctx context.Context, key Key, id, voteType string) error {
	if voteType != VoteUp && voteType != VoteDown {
		return ErrNotVotable
	}

	var prevUp, prevDown int
	var prevVote string
	votable := false

	c.store.UpdateItem(key, id, func(it Item) {
		v, ok := it.(Votable)
		if !ok {
			return
		}
		votable = true
		prevUp, prevDown, prevVote = v.GetVotes()
		up, down, vote := applyVote(prevUp, prevDown, prevVote, voteType)
		v.SetVotes(up, down, vote)
	})

	if !votable {
		return ErrNotVotable
	}

	if err := c.cfg.Vote(ctx, key, id, voteType); err != nil {
		// Roll the optimistic counter change back.
		c.store.UpdateItem(key, id, func(it Item) {
			if v, ok := it.(Votable); ok {
				v.SetVotes(prevUp, prevDown, prevVote)
			}
		})
		c.store.FailMutation(key, err.Error())
		return err
	}

	return nil
}

// Follow follows or unfollows a user. No counter is patched optimistically;
// on success the change is broadcast so every mounted view of the user
// refetches its stats.
func (c *Coordinator) Follow(ctx context.Context, userID string, follow bool) error {
	if err := c.cfg.Follow(ctx, userID, follow); err != nil {
		return err
	}

	if c.cfg.FollowChanged != nil {
		c.cfg.FollowChanged.Publish(userID)
	}
	return nil
}

// applyVote computes the toggle transition for one vote action
func applyVote(up, down int, current, next string) (int, int, string) {
	if current == next {
		// Retract
		if next == VoteUp {
			up--
		} else {
			down--
		}
		return clamp(up), clamp(down), VoteNone
	}

	switch current {
	case VoteUp:
		up--
	case VoteDown:
		down--
	}
	if next == VoteUp {
		up++
	} else {
		down++
	}
	return clamp(up), clamp(down), next
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
