package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const commentsFixture = `[
  {"kind": "Listing", "data": {"children": [
    {"kind": "t3", "data": {
      "id": "1k0abc123",
      "title": "Daily Discussion Thread",
      "subreddit": "wallstreetbets",
      "ups": 1234,
      "permalink": "/r/wallstreetbets/comments/1k0abc123/daily_discussion_thread/"
    }}
  ]}},
  {"kind": "Listing", "data": {"children": [
    {"kind": "t1", "data": {
      "id": "c1",
      "author": "example_user",
      "body": "NVDA calls printing tomorrow, earnings gonna be insane...",
      "ups": 42,
      "permalink": "/r/wallstreetbets/comments/1k0abc123/daily_discussion_thread/c1/"
    }},
    {"kind": "more", "data": {"count": 120, "children": ["d2", "d3"]}},
    {"kind": "t1", "data": {
      "id": "c2",
      "author": "bear_guy",
      "body": "Buying puts, this whole market is gonna crash",
      "ups": 7,
      "permalink": "/r/wallstreetbets/comments/1k0abc123/daily_discussion_thread/c2/"
    }},
    {"kind": "t1", "data": {
      "id": "c3",
      "author": "third_guy",
      "body": "holding SPY until friday",
      "ups": 3,
      "permalink": "/r/wallstreetbets/comments/1k0abc123/daily_discussion_thread/c3/"
    }}
  ]}}
]`

// newTestClient points a client at ts and shortens the retry schedule so the
// 429 path stays fast.
func newTestClient(t *testing.T, ts *httptest.Server) *RedditClient {
	t.Helper()

	rc, err := NewRedditClient("test-id", "test-secret", "test-agent/0.1")
	if err != nil {
		t.Fatalf("NewRedditClient: %v", err)
	}
	rc.baseURL = ts.URL
	rc.Client = ts.Client()
	rc.maxRetries = 3
	rc.initialBackoff = 10 * time.Millisecond
	rc.maxBackoff = 20 * time.Millisecond
	return rc
}

func TestNewRedditClientMissingCredentials(t *testing.T) {
	if _, err := NewRedditClient("", "secret", ""); err == nil {
		t.Fatal("expected error for missing client id")
	}
	if _, err := NewRedditClient("id", "", ""); err == nil {
		t.Fatal("expected error for missing client secret")
	}
}

func TestFetchSubmissionComments(t *testing.T) {
	var gotPath, gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(commentsFixture))
	}))
	defer ts.Close()

	rc := newTestClient(t, ts)
	sub, comments, err := rc.FetchSubmissionComments(context.Background(), "1k0abc123", 5)
	if err != nil {
		t.Fatalf("FetchSubmissionComments: %v", err)
	}

	if gotPath != "/comments/1k0abc123" {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if gotAgent != "test-agent/0.1" {
		t.Errorf("unexpected user agent %q", gotAgent)
	}

	if sub.Title != "Daily Discussion Thread" || sub.Subreddit != "wallstreetbets" || sub.Upvotes != 1234 {
		t.Errorf("unexpected submission: %+v", sub)
	}

	// "more" stub must be skipped, the three t1 children kept.
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	first := comments[0]
	if first.Author != "example_user" || first.Upvotes != 42 {
		t.Errorf("unexpected first comment: %+v", first)
	}
	if first.Text != "NVDA calls printing tomorrow, earnings gonna be insane..." {
		t.Errorf("unexpected first comment body: %q", first.Text)
	}
}

func TestFetchSubmissionCommentsHonorsLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(commentsFixture))
	}))
	defer ts.Close()

	rc := newTestClient(t, ts)
	_, comments, err := rc.FetchSubmissionComments(context.Background(), "1k0abc123", 2)
	if err != nil {
		t.Fatalf("FetchSubmissionComments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[1].Author != "bear_guy" {
		t.Errorf("limit should keep listing order, got %q second", comments[1].Author)
	}
}

func TestFetchSubmissionCommentsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	rc := newTestClient(t, ts)
	_, _, err := rc.FetchSubmissionComments(context.Background(), "nosuchid", 5)
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestFetchSubmissionCommentsRetriesOn429(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(commentsFixture))
	}))
	defer ts.Close()

	rc := newTestClient(t, ts)
	_, comments, err := rc.FetchSubmissionComments(context.Background(), "1k0abc123", 5)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if len(comments) != 3 {
		t.Errorf("expected 3 comments after retry, got %d", len(comments))
	}
}

func TestFetchSubmissionCommentsGivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	rc := newTestClient(t, ts)
	_, _, err := rc.FetchSubmissionComments(context.Background(), "1k0abc123", 5)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != rc.maxRetries {
		t.Errorf("expected %d attempts, got %d", rc.maxRetries, attempts)
	}
}

func TestFetchSubmissionCommentsBadListingShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"kind": "Listing", "data": {"children": []}}]`))
	}))
	defer ts.Close()

	rc := newTestClient(t, ts)
	_, _, err := rc.FetchSubmissionComments(context.Background(), "1k0abc123", 5)
	if err == nil {
		t.Fatal("expected error for single-listing response")
	}
}
