package api

import (
	"strings"
	"testing"
)

// TestDecodeResult unwraps the standard response envelope
func TestDecodeResult(t *testing.T) {
	body := []byte(`{"data":{"result":{"_id":"p1","content":"hello"}}}`)

	var post Post
	if err := decodeResult(body, &post); err != nil {
		t.Fatalf("decodeResult failed: %v", err)
	}

	if post.ID != "p1" {
		t.Errorf("Expected ID p1, got %q", post.ID)
	}
	if post.Content != "hello" {
		t.Errorf("Expected content 'hello', got %q", post.Content)
	}
}

// TestDecodeResultList unwraps an array payload
func TestDecodeResultList(t *testing.T) {
	body := []byte(`{"data":{"result":[{"_id":"a"},{"_id":"b"}]}}`)

	var posts []Post
	if err := decodeResult(body, &posts); err != nil {
		t.Fatalf("decodeResult failed: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(posts))
	}
	if posts[1].ID != "b" {
		t.Errorf("Expected second ID b, got %q", posts[1].ID)
	}
}

// TestDecodeResultMissingResult rejects envelopes without a payload
func TestDecodeResultMissingResult(t *testing.T) {
	cases := []struct {
		body string
		name string
	}{
		{`{"data":{}}`, "empty data"},
		{`{}`, "empty object"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var post Post
			err := decodeResult([]byte(tc.body), &post)
			if err == nil {
				t.Fatal("Expected error for missing result")
			}
			if !strings.Contains(err.Error(), "no result") {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

// TestDecodeResultInvalidJSON surfaces the parse error
func TestDecodeResultInvalidJSON(t *testing.T) {
	var post Post
	if err := decodeResult([]byte(`not json`), &post); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
