package collection

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type debounceRecorder struct {
	mu       sync.Mutex
	searches []string
	clears   int
}

func (r *debounceRecorder) search(ctx context.Context, query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches = append(r.searches, query)
}

func (r *debounceRecorder) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
}

func (r *debounceRecorder) searched() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.searches...)
}

func (r *debounceRecorder) cleared() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

func TestDebouncerOnlyLastValueSearches(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.search, rec.clear)
	ctx := context.Background()

	// Keystrokes arriving faster than the quiet interval.
	d.Update(ctx, "g")
	d.Update(ctx, "go")
	d.Update(ctx, "gol")
	d.Update(ctx, "golang")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"golang"}, rec.searched())
}

func TestDebouncerEmptyInputClearsImmediately(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(50*time.Millisecond, rec.search, rec.clear)
	ctx := context.Background()

	d.Update(ctx, "golang")
	d.Update(ctx, "")

	// The clear happens synchronously and cancels the pending search.
	assert.Equal(t, 1, rec.cleared())
	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, rec.searched())
}

func TestDebouncerWhitespaceCountsAsEmpty(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.search, rec.clear)

	d.Update(context.Background(), "   ")
	assert.Equal(t, 1, rec.cleared())
}

func TestDebouncerCancelDropsPendingSearch(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.search, rec.clear)

	d.Update(context.Background(), "golang")
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.searched())
	assert.Zero(t, rec.cleared())
}

func TestDebouncerSeparateStableValues(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(10*time.Millisecond, rec.search, rec.clear)
	ctx := context.Background()

	d.Update(ctx, "first")
	time.Sleep(60 * time.Millisecond)
	d.Update(ctx, "second")
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.searched())
}
