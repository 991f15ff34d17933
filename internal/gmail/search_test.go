package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"go.uber.org/zap"
)

// fakeGmail serves both the token endpoint and the Gmail REST endpoints so the
// whole search state machine can run against one local server.
type fakeGmail struct {
	mu           sync.Mutex
	validToken   string
	refreshCalls int
	refreshFails bool
	listIDs      []string
	messages     map[string]*Message
	failDetails  map[string]bool

	server *httptest.Server
}

func newFakeGmail(validToken string) *fakeGmail {
	f := &fakeGmail{
		validToken:  validToken,
		messages:    map[string]*Message{},
		failDetails: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", f.handleToken)
	mux.HandleFunc("/users/me/messages", f.handleList)
	mux.HandleFunc("/users/me/messages/", f.handleGet)
	f.server = httptest.NewServer(mux)

	return f
}

func (f *fakeGmail) handleToken(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.refreshCalls++
	if f.refreshFails {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Token has been revoked."}`)
		return
	}

	f.validToken = fmt.Sprintf("fresh-token-%d", f.refreshCalls)
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":3600}`, f.validToken)
}

func (f *fakeGmail) authorized(r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return r.Header.Get("Authorization") == "Bearer "+f.validToken
}

func (f *fakeGmail) handleList(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Invalid Credentials"}}`)
		return
	}

	refs := make([]MessageRef, 0, len(f.listIDs))
	for _, id := range f.listIDs {
		refs = append(refs, MessageRef{ID: id})
	}

	json.NewEncoder(w).Encode(listMessagesResponse{Messages: refs, ResultSizeEstimate: len(refs)})
}

func (f *fakeGmail) handleGet(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/users/me/messages/")
	if f.failDetails[id] {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	msg, ok := f.messages[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(msg)
}

func (f *fakeGmail) addMessage(id, date, body string) {
	f.listIDs = append(f.listIDs, id)
	f.messages[id] = &Message{
		ID:       id,
		LabelIDs: []string{"INBOX"},
		Payload: &MessagePart{
			MimeType: "text/plain",
			Headers: []Header{
				{Name: "From", Value: "sender@example.com"},
				{Name: "To", Value: "me@example.com"},
				{Name: "Subject", Value: "Subject " + id},
				{Name: "Date", Value: date},
			},
			Body: &PartBody{Data: base64.RawURLEncoding.EncodeToString([]byte(body))},
		},
	}
}

type memTokens struct {
	mu    sync.Mutex
	saves int
	last  string
}

func (m *memTokens) SaveTokens(_ context.Context, _, accessToken, _ string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.last = accessToken
	return nil
}

type memEmails struct {
	mu   sync.Mutex
	rows map[string]model.Email
	fail bool
}

func (m *memEmails) Upsert(_ context.Context, email model.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("upsert failed")
	}
	if m.rows == nil {
		m.rows = map[string]model.Email{}
	}
	m.rows[email.ID] = email
	return nil
}

func newTestSearcher(f *fakeGmail) (*Searcher, *memTokens, *memEmails) {
	logger := zap.NewNop().Sugar()
	client := NewClient("http://localhost/callback", logger, WithBaseURL(f.server.URL))
	tokens := &memTokens{}
	emails := &memEmails{}

	return NewSearcher(client, tokens, emails, logger), tokens, emails
}

func freshConfig(f *fakeGmail, accessToken string) *model.GoogleAuthConfig {
	expiry := time.Now().Add(time.Hour)
	return &model.GoogleAuthConfig{
		BaseModel:    model.BaseModel{ID: "cfg-1"},
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURI:     f.server.URL + "/token",
		AccessToken:  accessToken,
		RefreshToken: "refresh-token",
		TokenExpiry:  &expiry,
	}
}

func TestSearchMissingSender(t *testing.T) {
	f := newFakeGmail("tok")
	defer f.server.Close()

	searcher, _, _ := newTestSearcher(f)
	if _, err := searcher.Search(context.Background(), freshConfig(f, "tok"), "   "); !errors.Is(err, ErrMissingParameter) {
		t.Errorf("Search() error = %v, want ErrMissingParameter", err)
	}
}

func TestSearchNoActiveConfig(t *testing.T) {
	f := newFakeGmail("tok")
	defer f.server.Close()

	searcher, _, _ := newTestSearcher(f)
	if _, err := searcher.Search(context.Background(), nil, "sender@example.com"); !errors.Is(err, ErrNoActiveConfig) {
		t.Errorf("Search() error = %v, want ErrNoActiveConfig", err)
	}
}

func TestSearchEmptyResult(t *testing.T) {
	f := newFakeGmail("tok")
	defer f.server.Close()

	searcher, _, _ := newTestSearcher(f)
	emails, err := searcher.Search(context.Background(), freshConfig(f, "tok"), "sender@example.com")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(emails) != 0 {
		t.Errorf("Search() returned %d emails, want 0", len(emails))
	}
}

func TestSearchReturnsSortedAndCachedEmails(t *testing.T) {
	f := newFakeGmail("tok")
	defer f.server.Close()

	f.addMessage("m1", "Mon, 01 Jan 2024 09:00:00 +0000", "first")
	f.addMessage("m2", "Fri, 01 Mar 2024 09:00:00 +0000", "second")
	f.addMessage("m3", "Thu, 01 Feb 2024 09:00:00 +0000", "third")

	searcher, _, emailStore := newTestSearcher(f)
	emails, err := searcher.Search(context.Background(), freshConfig(f, "tok"), "sender@example.com")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	wantOrder := []string{"m2", "m3", "m1"}
	if len(emails) != len(wantOrder) {
		t.Fatalf("Search() returned %d emails, want %d", len(emails), len(wantOrder))
	}
	for i, want := range wantOrder {
		if emails[i].ID != want {
			t.Errorf("emails[%d].ID = %q, want %q", i, emails[i].ID, want)
		}
	}

	if emails[0].Body != "second" {
		t.Errorf("emails[0].Body = %q, want %q", emails[0].Body, "second")
	}

	if len(emailStore.rows) != 3 {
		t.Errorf("cached %d emails, want 3", len(emailStore.rows))
	}
}

func TestSearchRefreshesStaleTokenFirst(t *testing.T) {
	f := newFakeGmail("old-token")
	defer f.server.Close()

	f.addMessage("m1", "Mon, 01 Jan 2024 09:00:00 +0000", "body")

	searcher, tokens, _ := newTestSearcher(f)

	cfg := freshConfig(f, "old-token")
	staleExpiry := time.Now().Add(time.Minute) // inside the 5 minute skew
	cfg.TokenExpiry = &staleExpiry

	emails, err := searcher.Search(context.Background(), cfg, "sender@example.com")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("Search() returned %d emails, want 1", len(emails))
	}

	if f.refreshCalls != 1 {
		t.Errorf("refresh called %d times, want 1", f.refreshCalls)
	}
	if tokens.saves != 1 {
		t.Errorf("SaveTokens called %d times, want 1", tokens.saves)
	}
	if cfg.AccessToken != "fresh-token-1" {
		t.Errorf("config access token = %q, want fresh-token-1", cfg.AccessToken)
	}
}

func TestSearchRetriesOnceAfterUnauthorized(t *testing.T) {
	f := newFakeGmail("server-side-rotated")
	defer f.server.Close()

	f.addMessage("m1", "Mon, 01 Jan 2024 09:00:00 +0000", "body")

	searcher, _, _ := newTestSearcher(f)

	// Token looks fresh locally but the provider already revoked it.
	cfg := freshConfig(f, "revoked-token")

	emails, err := searcher.Search(context.Background(), cfg, "sender@example.com")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(emails) != 1 {
		t.Fatalf("Search() returned %d emails, want 1", len(emails))
	}
	if f.refreshCalls != 1 {
		t.Errorf("refresh called %d times, want 1", f.refreshCalls)
	}
}

func TestSearchFailedRefreshRequiresReauthorization(t *testing.T) {
	f := newFakeGmail("tok")
	defer f.server.Close()
	f.refreshFails = true

	searcher, _, _ := newTestSearcher(f)

	cfg := freshConfig(f, "")
	cfg.TokenExpiry = nil

	if _, err := searcher.Search(context.Background(), cfg, "sender@example.com"); !errors.Is(err, ErrReauthorizeRequired) {
		t.Errorf("Search() error = %v, want ErrReauthorizeRequired", err)
	}
}

func TestSearchStaleTokenWithoutRefreshToken(t *testing.T) {
	f := newFakeGmail("tok")
	defer f.server.Close()

	searcher, _, _ := newTestSearcher(f)

	cfg := freshConfig(f, "")
	cfg.TokenExpiry = nil
	cfg.RefreshToken = ""

	if _, err := searcher.Search(context.Background(), cfg, "sender@example.com"); !errors.Is(err, ErrReauthorizeRequired) {
		t.Errorf("Search() error = %v, want ErrReauthorizeRequired", err)
	}
	if f.refreshCalls != 0 {
		t.Errorf("refresh called %d times, want 0 without a refresh token", f.refreshCalls)
	}
}

func TestSearchDropsFailedDetailFetches(t *testing.T) {
	f := newFakeGmail("tok")
	defer f.server.Close()

	f.addMessage("m1", "Mon, 01 Jan 2024 09:00:00 +0000", "one")
	f.addMessage("m2", "Tue, 02 Jan 2024 09:00:00 +0000", "two")
	f.addMessage("m3", "Wed, 03 Jan 2024 09:00:00 +0000", "three")
	f.failDetails["m3"] = true

	searcher, _, _ := newTestSearcher(f)
	emails, err := searcher.Search(context.Background(), freshConfig(f, "tok"), "sender@example.com")
	if err != nil {
		t.Fatalf("Search() error = %v, want partial success", err)
	}

	if len(emails) != 2 {
		t.Fatalf("Search() returned %d emails, want 2", len(emails))
	}
	for _, email := range emails {
		if email.ID == "m3" {
			t.Error("failed message m3 should have been dropped from the results")
		}
	}
}

func TestSearchCapsDetailFanOut(t *testing.T) {
	f := newFakeGmail("tok")
	defer f.server.Close()

	for i := 0; i < MaxResults+10; i++ {
		f.addMessage(fmt.Sprintf("m%02d", i), "Mon, 01 Jan 2024 09:00:00 +0000", "body")
	}

	searcher, _, _ := newTestSearcher(f)
	emails, err := searcher.Search(context.Background(), freshConfig(f, "tok"), "sender@example.com")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(emails) != MaxResults {
		t.Errorf("Search() returned %d emails, want cap of %d", len(emails), MaxResults)
	}
}

func TestSearchSurfacesUpstreamErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"Request had insufficient authentication scopes."}}`)
	}))
	defer server.Close()

	logger := zap.NewNop().Sugar()
	client := NewClient("http://localhost/callback", logger, WithBaseURL(server.URL))
	searcher := NewSearcher(client, &memTokens{}, &memEmails{}, logger)

	cfg := &model.GoogleAuthConfig{
		BaseModel:    model.BaseModel{ID: "cfg-1"},
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURI:     server.URL + "/token",
		AccessToken:  "tok",
		RefreshToken: "rt",
	}
	expiry := time.Now().Add(time.Hour)
	cfg.TokenExpiry = &expiry

	_, err := searcher.Search(context.Background(), cfg, "sender@example.com")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Search() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("APIError.StatusCode = %d, want 403", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Detail, "insufficient authentication scopes") {
		t.Errorf("APIError.Detail = %q, want provider detail preserved", apiErr.Detail)
	}
	if !Retryable(err) {
		t.Error("upstream errors should be retryable")
	}
}
