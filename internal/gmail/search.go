package gmail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"go.uber.org/zap"
)

// MaxResults caps how many messages are fetched in full per search.
const MaxResults = 20

// TokenSaver persists refreshed or exchanged OAuth tokens onto a configuration.
type TokenSaver interface {
	SaveTokens(ctx context.Context, configID, accessToken, refreshToken string, expiry time.Time) error
}

// EmailStore is the cache the search results are written into.
type EmailStore interface {
	Upsert(ctx context.Context, email model.Email) error
}

// Searcher runs one inbox search end to end: ensure the access token is fresh,
// query the Gmail API, fan out for message details, normalize, sort and cache.
// The active configuration is passed in by the caller, stores are injected.
type Searcher struct {
	client *Client
	tokens TokenSaver
	emails EmailStore
	logger *zap.SugaredLogger

	// refreshMu serializes token refreshes per configuration id so two
	// concurrent searches holding the same stale token perform one provider
	// round trip, not two.
	refreshMu sync.Map
}

func NewSearcher(client *Client, tokens TokenSaver, emails EmailStore, logger *zap.SugaredLogger) *Searcher {
	return &Searcher{
		client: client,
		tokens: tokens,
		emails: emails,
		logger: logger,
	}
}

// Search returns the cached-normalized emails from the given sender, newest
// first. cfg may be nil when no configuration is active.
func (s *Searcher) Search(ctx context.Context, cfg *model.GoogleAuthConfig, sender string) ([]model.Email, error) {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return nil, ErrMissingParameter
	}

	if cfg == nil {
		return nil, ErrNoActiveConfig
	}

	if cfg.TokenStale(time.Now()) {
		if err := s.refreshToken(ctx, cfg); err != nil {
			return nil, err
		}
	}

	refs, err := s.client.ListMessages(ctx, cfg.AccessToken, sender)
	if isUnauthorized(err) {
		// The token can be revoked server-side before its recorded expiry.
		// One refresh, one retry, then give up.
		if err := s.refreshToken(ctx, cfg); err != nil {
			return nil, err
		}

		refs, err = s.client.ListMessages(ctx, cfg.AccessToken, sender)
		if isUnauthorized(err) {
			return nil, fmt.Errorf("%w: token rejected after refresh", ErrReauthorizeRequired)
		}
	}
	if err != nil {
		return nil, err
	}

	if len(refs) == 0 {
		return []model.Email{}, nil
	}

	if len(refs) > MaxResults {
		refs = refs[:MaxResults]
	}

	emails := s.fetchDetails(ctx, cfg.AccessToken, refs)
	SortByDateDesc(emails)

	// Best effort cache write, a failed row never fails the search.
	for _, email := range emails {
		if err := s.emails.Upsert(ctx, email); err != nil {
			s.logger.Errorf("Failed to cache email %s: %v", email.ID, err)
		}
	}

	return emails, nil
}

// fetchDetails fetches every referenced message concurrently. A failed fetch
// drops that message and leaves the rest alone.
func (s *Searcher) fetchDetails(ctx context.Context, accessToken string, refs []MessageRef) []model.Email {
	results := make([]*model.Email, len(refs))

	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref MessageRef) {
			defer wg.Done()

			msg, err := s.client.GetMessage(ctx, accessToken, ref.ID)
			if err != nil {
				s.logger.Errorf("Failed to fetch email %s: %v", ref.ID, err)
				return
			}

			email := Normalize(msg)
			results[i] = &email
		}(i, ref)
	}
	wg.Wait()

	emails := make([]model.Email, 0, len(refs))
	for _, email := range results {
		if email != nil {
			emails = append(emails, *email)
		}
	}

	return emails
}

// refreshToken refreshes the access token for cfg and persists the result.
// Refreshes for the same configuration are serialized.
func (s *Searcher) refreshToken(ctx context.Context, cfg *model.GoogleAuthConfig) error {
	mu, _ := s.refreshMu.LoadOrStore(cfg.ID, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	if !cfg.Authorized() {
		return fmt.Errorf("%w: configuration has no refresh token", ErrReauthorizeRequired)
	}

	token, err := s.client.Refresh(ctx, cfg)
	if err != nil {
		// A failed refresh almost always means the refresh token was revoked.
		return fmt.Errorf("%w: %v", ErrReauthorizeRequired, err)
	}

	cfg.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		cfg.RefreshToken = token.RefreshToken
	}
	expiry := token.Expiry
	cfg.TokenExpiry = &expiry

	if err := s.tokens.SaveTokens(ctx, cfg.ID, cfg.AccessToken, cfg.RefreshToken, expiry); err != nil {
		return fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	return nil
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}
