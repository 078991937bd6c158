package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	redditTokenURL   = "https://www.reddit.com/api/v1/access_token"
	redditAPIBaseURL = "https://oauth.reddit.com"
	redditWWWBaseURL = "https://www.reddit.com"

	redditRequestTimeout = 30 * time.Second
)

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// userAgentTransport sets the descriptive User-Agent Reddit requires on
// every request, including the token exchange.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(clone)
}

// RedditClient is an application-only (client credentials) Reddit API client.
type RedditClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewRedditClient validates the credentials and builds an OAuth2-backed HTTP
// client. No network call happens here; use Verify to confirm the session.
func NewRedditClient(ctx context.Context, creds Credentials) (*RedditClient, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" || creds.UserAgent == "" {
		return nil, fmt.Errorf("reddit credentials missing: set REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET and REDDIT_USER_AGENT")
	}

	conf := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     redditTokenURL,
	}

	base := &http.Client{
		Timeout:   redditRequestTimeout,
		Transport: &userAgentTransport{agent: creds.UserAgent, base: http.DefaultTransport},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	return &RedditClient{
		httpClient: conf.Client(ctx),
		baseURL:    redditAPIBaseURL,
	}, nil
}

// Verify performs one lightweight identity call to confirm the session
// works. Any failure here is terminal for the run.
func (c *RedditClient) Verify(ctx context.Context) error {
	url := c.baseURL + "/api/v1/me"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating verification request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("verifying reddit session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}
	return nil
}

// listing mirrors the fields of the Reddit listing envelope used here.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Title      string  `json:"title"`
				SelfText   string  `json:"selftext"`
				IsSelf     bool    `json:"is_self"`
				Stickied   bool    `json:"stickied"`
				CreatedUTC float64 `json:"created_utc"`
				Permalink  string  `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchHot returns up to limit submissions from the subreddit's hot listing,
// in the order Reddit ranks them.
func (c *RedditClient) FetchHot(ctx context.Context, subreddit string, limit int) ([]Submission, error) {
	url := fmt.Sprintf("%s/r/%s/hot?limit=%d&raw_json=1", c.baseURL, subreddit, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating listing request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching hot listing for r/%s: %w", subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	var page listing
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding hot listing: %w", err)
	}

	subs := make([]Submission, 0, len(page.Data.Children))
	for _, child := range page.Data.Children {
		d := child.Data
		subs = append(subs, Submission{
			ID:         d.ID,
			Title:      d.Title,
			SelfText:   d.SelfText,
			IsSelf:     d.IsSelf,
			Stickied:   d.Stickied,
			CreatedUTC: int64(d.CreatedUTC),
			Permalink:  d.Permalink,
		})
	}
	return subs, nil
}

// postURL turns a Reddit permalink path into a full URL.
func postURL(permalink string) string {
	if permalink == "" {
		return ""
	}
	return redditWWWBaseURL + permalink
}
