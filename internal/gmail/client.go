package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const DefaultBaseURL = "https://gmail.googleapis.com/gmail/v1"

// ReadonlyScope is the only Gmail scope this application requests.
const ReadonlyScope = "https://www.googleapis.com/auth/gmail.readonly"

// Client talks to the Google token endpoint and the Gmail REST API. The token
// endpoint comes from the stored configuration, the API base URL is fixed but
// injectable so tests can point it at a local server.
type Client struct {
	http        *http.Client
	baseURL     string
	redirectURL string
	logger      *zap.SugaredLogger
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

func NewClient(redirectURL string, logger *zap.SugaredLogger, opts ...ClientOption) *Client {
	c := &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		baseURL:     DefaultBaseURL,
		redirectURL: redirectURL,
		logger:      logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// oauthConfig builds the per-configuration oauth2 config. Auth and token
// endpoints come from the stored row so an admin can paste any Google
// client_secret.json, the redirect URL is the fixed one registered on the
// console.
func (c *Client) oauthConfig(cfg *model.GoogleAuthConfig) *oauth2.Config {
	authURI := cfg.AuthURI
	if authURI == "" {
		authURI = model.DefaultAuthURI
	}
	tokenURI := cfg.TokenURI
	if tokenURI == "" {
		tokenURI = model.DefaultTokenURI
	}

	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  c.redirectURL,
		Scopes:       []string{ReadonlyScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURI,
			TokenURL: tokenURI,
		},
	}
}

// AuthCodeURL returns the consent screen URL for a configuration. The config
// id rides along as the state parameter so the callback can find the row
// again. prompt=consent forces Google to reissue a refresh token.
func (c *Client) AuthCodeURL(cfg *model.GoogleAuthConfig) string {
	return c.oauthConfig(cfg).AuthCodeURL(cfg.ID,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades a one-time authorization code for an access/refresh token
// pair. Reused codes are rejected upstream, so a failure here is terminal.
func (c *Client) Exchange(ctx context.Context, cfg *model.GoogleAuthConfig, code string) (*oauth2.Token, error) {
	c.logger.Debugf("Exchange authorization code for config: %s", cfg.ID)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	token, err := c.oauthConfig(cfg).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code for token: %w", err)
	}

	return token, nil
}

// Refresh mints a new access token from the stored refresh token. Google does
// not rotate the refresh token for this grant type, so the returned token
// usually carries an empty RefreshToken.
func (c *Client) Refresh(ctx context.Context, cfg *model.GoogleAuthConfig) (*oauth2.Token, error) {
	c.logger.Debugf("Refresh access token for config: %s", cfg.ID)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	source := c.oauthConfig(cfg).TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}

	return token, nil
}

// ListMessages searches the inbox for messages from the given sender and
// returns their ids.
func (c *Client) ListMessages(ctx context.Context, accessToken, sender string) ([]MessageRef, error) {
	query := url.Values{}
	query.Set("q", "in:inbox from:"+sender)

	var list listMessagesResponse
	if err := c.get(ctx, accessToken, c.baseURL+"/users/me/messages?"+query.Encode(), &list); err != nil {
		return nil, err
	}

	return list.Messages, nil
}

// GetMessage fetches one message in full, including MIME structure and bodies.
func (c *Client) GetMessage(ctx context.Context, accessToken, id string) (*Message, error) {
	var msg Message
	if err := c.get(ctx, accessToken, c.baseURL+"/users/me/messages/"+url.PathEscape(id)+"?format=full", &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (c *Client) get(ctx context.Context, accessToken, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build gmail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gmail request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("failed to read gmail response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: extractErrorDetail(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode gmail response: %w", err)
	}

	return nil
}

func extractErrorDetail(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return payload.Error.Message
}
