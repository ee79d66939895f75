package twitter

import (
	"fmt"

	"github.com/dghubble/oauth1"
	twitterauth "github.com/dghubble/oauth1/twitter"
)

// Credentials holds the OAuth1 key material for one account.
// AccessToken/AccessSecret may be empty, in which case the interactive PIN
// flow is used to obtain them.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// HasAccessToken reports whether a pre-obtained access token pair is present.
func (c Credentials) HasAccessToken() bool {
	return c.AccessToken != "" && c.AccessSecret != ""
}

// PINPrompter asks the user to visit authorizeURL and returns the PIN
// Twitter displays after authorization.
type PINPrompter func(authorizeURL string) (pin string, err error)

// Authorize resolves credentials into a usable OAuth1 token.
// With a pre-obtained access token pair it is a pass-through; otherwise it
// runs the out-of-band (PIN) three-legged flow using prompt.
func Authorize(creds Credentials, prompt PINPrompter) (*oauth1.Token, error) {
	if creds.HasAccessToken() {
		return oauth1.NewToken(creds.AccessToken, creds.AccessSecret), nil
	}

	cfg := oauth1.Config{
		ConsumerKey:    creds.ConsumerKey,
		ConsumerSecret: creds.ConsumerSecret,
		CallbackURL:    "oob",
		Endpoint:       twitterauth.AuthorizeEndpoint,
	}

	requestToken, requestSecret, err := cfg.RequestToken()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain request token: %w", err)
	}

	authorizeURL, err := cfg.AuthorizationURL(requestToken)
	if err != nil {
		return nil, fmt.Errorf("failed to build authorization URL: %w", err)
	}

	pin, err := prompt(authorizeURL.String())
	if err != nil {
		return nil, fmt.Errorf("authorization cancelled: %w", err)
	}

	accessToken, accessSecret, err := cfg.AccessToken(requestToken, requestSecret, pin)
	if err != nil {
		return nil, fmt.Errorf("invalid PIN: %w", err)
	}

	return oauth1.NewToken(accessToken, accessSecret), nil
}
