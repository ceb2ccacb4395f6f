package collection

import (
	"context"
	"sync"

	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

// VisibilitySource delivers sentinel-visibility signals. The contract is only
// "fires when the end-of-list sentinel becomes visible"; how visibility is
// detected (viewport observer, polling, a key press in the terminal) is the
// implementation's business.
type VisibilitySource interface {
	// OnVisible registers fn and returns a cancel function. fn may fire any
	// number of times.
	OnVisible(fn func()) func()
}

// ScrollTrigger requests the next page of one collection whenever its
// sentinel becomes visible, the key has more data, and no fetch is already in
// flight. It stays armed across fetches; multiple triggers over different
// keys operate independently.
type ScrollTrigger struct {
	store  *Store
	key    Key
	source VisibilitySource

	mu     sync.Mutex
	cancel func()
}

// NewScrollTrigger creates a trigger for key over store
func NewScrollTrigger(store *Store, key Key, source VisibilitySource) *ScrollTrigger {
	return &ScrollTrigger{store: store, key: key, source: source}
}

// Arm starts reacting to visibility signals. ctx bounds the fetches.
func (t *ScrollTrigger) Arm(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}
	t.cancel = t.source.OnVisible(func() {
		snap := t.store.Snapshot(t.key)
		if !snap.HasMore || snap.Loading {
			return
		}
		if err := t.store.FetchPage(ctx, t.key, snap.CurrentPage+1); err != nil {
			logger.Error("Scroll fetch failed", "key", t.key.String(), "error", err)
		}
	})
}

// Stop disarms the trigger
func (t *ScrollTrigger) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// SignalSource is a VisibilitySource driven by explicit Trigger calls. The
// CLI uses it to map "user asked for more" onto the scroll contract; tests
// use it to simulate the sentinel.
type SignalSource struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewSignalSource creates an empty signal source
func NewSignalSource() *SignalSource {
	return &SignalSource{subs: make(map[int]func())}
}

// OnVisible implements VisibilitySource
func (s *SignalSource) OnVisible(fn func()) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Trigger fires every registered callback once
func (s *SignalSource) Trigger() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
