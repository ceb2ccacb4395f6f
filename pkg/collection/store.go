package collection

import (
	"context"
	"sync"
	"time"
)

// Item is anything with a stable server id that can live in a paged list
type Item interface {
	ItemID() string
}

// Provisional is a locally-synthesized stand-in for an item awaiting server
// confirmation. It is matched back by CorrelationID, never by content, so two
// identical submissions in flight stay distinguishable.
type Provisional struct {
	CorrelationID string
	Content       string
	Author        string
	CreatedAt     time.Time
}

// Page is one fetched page of a collection
type Page struct {
	Items []Item
	// TotalPages is 0 when the endpoint doesn't report pagination metadata;
	// the store then infers hasMore from the returned count.
	TotalPages int
}

// Fetcher loads one page of a collection from the backend
type Fetcher interface {
	FetchPage(ctx context.Context, key Key, page, limit int) (Page, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, key Key, page, limit int) (Page, error)

func (f FetcherFunc) FetchPage(ctx context.Context, key Key, page, limit int) (Page, error) {
	return f(ctx, key, page, limit)
}

// PageState is a read-only snapshot of one collection's state
type PageState struct {
	Items         []Item
	Pending       []Provisional
	CurrentPage   int
	HasMore       bool
	Loading       bool
	Error         string
	MutationError string
}

type pageState struct {
	items       []Item
	pending     []Provisional
	currentPage int
	hasMore     bool
	fetch       OpState
	mutationErr string
	generation  uint64
}

func newPageState(generation uint64) *pageState {
	return &pageState{hasMore: true, generation: generation}
}

// Store is the single source of truth for every paged collection in the
// client. All reads go through Snapshot; the only writers are FetchPage, the
// mutation coordinator's operations and the realtime bridge's handlers.
type Store struct {
	mu       sync.Mutex
	fetcher  Fetcher
	limit    int
	pages    map[string]*pageState
	counters map[string]int
}

// NewStore creates a store that fetches pages of limit items through fetcher
func NewStore(fetcher Fetcher, limit int) *Store {
	if limit <= 0 {
		limit = 10
	}
	return &Store{
		fetcher:  fetcher,
		limit:    limit,
		pages:    make(map[string]*pageState),
		counters: make(map[string]int),
	}
}

// Limit returns the page size the store requests
func (s *Store) Limit() int {
	return s.limit
}

// page returns the state for key, creating it lazily. Caller holds s.mu.
func (s *Store) page(key Key) *pageState {
	st, ok := s.pages[key.String()]
	if !ok {
		st = newPageState(0)
		s.pages[key.String()] = st
	}
	return st
}

// FetchPage loads one page for key and applies it. A call issued while a
// fetch for the same key is in flight is silently ignored; the in-flight
// flag is the only serialization between overlapping scroll events. Page 1
// replaces the whole list (refresh-from-top); later pages append items whose
// id is not already present, preserving server order.
func (s *Store) FetchPage(ctx context.Context, key Key, page int) error {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	st := s.page(key)
	if !st.fetch.Begin() {
		s.mu.Unlock()
		return nil
	}
	gen := st.generation
	limit := s.limit
	s.mu.Unlock()

	result, err := s.fetcher.FetchPage(ctx, key, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	st = s.page(key)
	if st.generation != gen {
		// The key was reset while this fetch was in flight; the response is
		// stale and must not write into the new state.
		return nil
	}

	if err != nil {
		st.fetch.Fail(err.Error())
		st.hasMore = false
		return err
	}

	st.fetch.Succeed()

	if page == 1 {
		st.items = dedupe(result.Items)
	} else {
		seen := make(map[string]bool, len(st.items))
		for _, it := range st.items {
			seen[it.ItemID()] = true
		}
		for _, it := range result.Items {
			if !seen[it.ItemID()] {
				st.items = append(st.items, it)
				seen[it.ItemID()] = true
			}
		}
	}

	st.currentPage = page
	if result.TotalPages > 0 {
		st.hasMore = page < result.TotalPages
	} else {
		st.hasMore = len(result.Items) == limit
	}

	return nil
}

// Refresh refetches page 1 for key, replacing the list
func (s *Store) Refresh(ctx context.Context, key Key) error {
	return s.FetchPage(ctx, key, 1)
}

// Reset clears a key's state and bumps its generation so any in-flight fetch
// for the old state is discarded on arrival. Used when navigating away from a
// scoped view so a reused key space can't show stale items.
func (s *Store) Reset(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.pages[key.String()]
	gen := uint64(1)
	if ok {
		gen = old.generation + 1
	}
	s.pages[key.String()] = newPageState(gen)
}

// Snapshot returns a copy of the state for key
func (s *Store) Snapshot(key Key) PageState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.page(key)
	snap := PageState{
		Items:         make([]Item, len(st.items)),
		Pending:       make([]Provisional, len(st.pending)),
		CurrentPage:   st.currentPage,
		HasMore:       st.hasMore,
		Loading:       st.fetch.InFlight(),
		Error:         st.fetch.Err(),
		MutationError: st.mutationErr,
	}
	copy(snap.Items, st.items)
	copy(snap.Pending, st.pending)
	return snap
}

// Prepend inserts item at the head of the list, unless its id is already
// present. Used for confirmed optimistic creates and pushed notifications.
func (s *Store) Prepend(key Key, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.page(key)
	for _, existing := range st.items {
		if existing.ItemID() == item.ItemID() {
			return
		}
	}
	st.items = append([]Item{item}, st.items...)
}

// RemoveItem deletes the item with the given id from the list
func (s *Store) RemoveItem(key Key, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.page(key)
	for i, it := range st.items {
		if it.ItemID() == id {
			st.items = append(st.items[:i], st.items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateItem applies fn to the item with the given id under the store lock.
// fn mutates the item in place (items are pointers).
func (s *Store) UpdateItem(key Key, id string, fn func(Item)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.page(key)
	for _, it := range st.items {
		if it.ItemID() == id {
			fn(it)
			return true
		}
	}
	return false
}

// AddPending appends a provisional entry for key
func (s *Store) AddPending(key Key, p Provisional) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.page(key)
	st.pending = append(st.pending, p)
	st.mutationErr = ""
}

// RemovePending removes the provisional entry with the given correlation id
func (s *Store) RemovePending(key Key, correlationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.page(key)
	for i, p := range st.pending {
		if p.CorrelationID == correlationID {
			st.pending = append(st.pending[:i], st.pending[i+1:]...)
			return true
		}
	}
	return false
}

// FailMutation records a mutation error for key. It is surfaced in the
// snapshot and cleared when the next mutation starts.
func (s *Store) FailMutation(key Key, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page(key).mutationErr = msg
}

// Counters. Badge counts (unread notifications, unread conversations, join
// requests, pending questions) live beside the pages so the realtime bridge
// can patch them without a refetch.

// Counter returns the named counter's value
func (s *Store) Counter(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[name]
}

// SetCounter sets the named counter
func (s *Store) SetCounter(name string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value < 0 {
		value = 0
	}
	s.counters[name] = value
}

// AdjustCounter adds delta to the named counter, clamping at zero
func (s *Store) AdjustCounter(name string, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.counters[name] + delta
	if v < 0 {
		v = 0
	}
	s.counters[name] = v
	return v
}

func dedupe(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, it := range items {
		if !seen[it.ItemID()] {
			out = append(out, it)
			seen[it.ItemID()] = true
		}
	}
	return out
}
