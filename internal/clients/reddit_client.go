package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/degenindex/ingest-demo/internal/models"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"
)

// ErrSubmissionNotFound is returned when the submission id does not resolve.
var ErrSubmissionNotFound = errors.New("[RedditClient] submission not found")

type RedditClient struct {
	Config *clientcredentials.Config
	Client *http.Client
	mu     sync.Mutex

	baseURL        string
	userAgent      string
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewRedditClient builds an application-only (client credentials) Reddit
// client. It fails before any network I/O when credentials are missing.
func NewRedditClient(clientID, clientSecret, userAgent string) (*RedditClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("[RedditClient] missing REDDIT_CLIENT_ID or REDDIT_CLIENT_SECRET")
	}
	if userAgent == "" {
		userAgent = USER_AGENT
	}

	oauthConf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     REDDIT_AUTH_URL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	return &RedditClient{
		Config:         oauthConf,
		Client:         oauthConf.Client(context.Background()),
		baseURL:        REDDIT_API_URL,
		userAgent:      userAgent,
		maxRetries:     MAX_RETRIES,
		initialBackoff: INITIAL_BACKOFF,
		maxBackoff:     MAX_BACKOFF,
	}, nil
}

func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.Client = rc.Config.Client(context.Background())
}

// FetchSubmissionComments performs one GET against /comments/{id} and returns
// the submission header plus up to limit top-level comments. Unexpanded
// "more" stubs are skipped; the demo never walks the comment tree.
func (rc *RedditClient) FetchSubmissionComments(ctx context.Context, submissionID string, limit int) (models.Submission, []models.Comment, error) {
	var sub models.Submission

	parsedUrl, err := url.Parse(fmt.Sprintf("%s/comments/%s", rc.baseURL, url.PathEscape(submissionID)))
	if err != nil {
		return sub, nil, fmt.Errorf("[RedditClient] Failed to parse URL: %w", err)
	}
	queryParams := parsedUrl.Query()
	queryParams.Add("limit", strconv.Itoa(limit))
	queryParams.Add("depth", "1")
	queryParams.Add("sort", "top")
	queryParams.Add("raw_json", "1")
	parsedUrl.RawQuery = queryParams.Encode()

	backoff := rc.initialBackoff
	refreshed := false

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedUrl.String(), nil)
		if err != nil {
			return sub, nil, err
		}
		req.Header.Set("User-Agent", rc.userAgent)

		resp, err := rc.Client.Do(req)
		if err != nil {
			return sub, nil, err
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return sub, nil, readErr
			}
			return parseSubmissionComments(body, limit)

		case http.StatusUnauthorized:
			if refreshed {
				return sub, nil, fmt.Errorf("[RedditClient] still unauthorized after token refresh")
			}
			slog.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
			rc.RefreshClient()
			refreshed = true

		case http.StatusNotFound:
			return sub, nil, fmt.Errorf("%w: %q", ErrSubmissionNotFound, submissionID)

		case http.StatusTooManyRequests:
			if attempt >= rc.maxRetries {
				return sub, nil, fmt.Errorf("[RedditClient] Max retries reached, request failed")
			}
			slog.Warn("[RedditClient] 429 Too Many Requests - Retrying with backoff",
				slog.Int("attempt", attempt), slog.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return sub, nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > rc.maxBackoff {
				backoff = rc.maxBackoff
			}

		default:
			return sub, nil, fmt.Errorf("[RedditClient] unexpected status %d", resp.StatusCode)
		}
	}
}

func parseSubmissionComments(body []byte, limit int) (models.Submission, []models.Comment, error) {
	var sub models.Submission

	var listings []models.RedditListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return sub, nil, fmt.Errorf("[RedditClient] Failed to decode listing: %w", err)
	}
	if len(listings) < 2 {
		return sub, nil, fmt.Errorf("[RedditClient] unexpected listing shape: got %d listings, want 2", len(listings))
	}
	if len(listings[0].Data.Children) == 0 {
		return sub, nil, fmt.Errorf("[RedditClient] listing missing submission data")
	}

	var subData models.RedditSubmissionData
	if err := json.Unmarshal(listings[0].Data.Children[0].Data, &subData); err != nil {
		return sub, nil, fmt.Errorf("[RedditClient] Failed to decode submission: %w", err)
	}
	sub = models.Submission{
		ID:        subData.ID,
		Title:     subData.Title,
		Subreddit: subData.Subreddit,
		Upvotes:   subData.Ups,
		Permalink: subData.Permalink,
	}

	var comments []models.Comment
	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var c models.RedditCommentData
		if err := json.Unmarshal(child.Data, &c); err != nil {
			return sub, nil, fmt.Errorf("[RedditClient] Failed to decode comment: %w", err)
		}
		comments = append(comments, models.Comment{
			ID:        c.ID,
			Author:    c.Author,
			Upvotes:   c.Ups,
			Text:      c.Body,
			Permalink: c.Permalink,
		})
		if limit > 0 && len(comments) == limit {
			break
		}
	}

	return sub, comments, nil
}
