// Package twitter is the wire-level client for the two API calls the tool
// needs: verifying credentials and destroying a status. Requests are signed
// with OAuth1.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
)

const defaultBaseURL = "https://api.twitter.com/1.1"

// Client issues signed requests against the Twitter v1.1 API.
type Client struct {
	http    *http.Client
	baseURL string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the signing HTTP client. Used by tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// NewClient builds a client signing requests with the given token.
func NewClient(creds Credentials, token *oauth1.Token, opts ...Option) *Client {
	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	httpClient := cfg.Client(oauth1.NoContext, token)
	httpClient.Timeout = 30 * time.Second

	c := &Client{
		http:    httpClient,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifyCredentials checks that the token is valid and returns the account's
// screen name. A failure here is fatal for the whole run.
func (c *Client) VerifyCredentials(ctx context.Context) (string, error) {
	url := c.baseURL + "/account/verify_credentials.json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to verify credentials: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", parseAPIError(resp)
	}

	var account struct {
		ScreenName string `json:"screen_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return "", fmt.Errorf("failed to decode account: %w", err)
	}

	return account.ScreenName, nil
}

// DestroyTweet permanently deletes one status.
func (c *Client) DestroyTweet(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/statuses/destroy/%s.json", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete tweet %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp)
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
