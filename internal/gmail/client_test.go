package gmail

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"go.uber.org/zap"
)

func TestAuthCodeURL(t *testing.T) {
	client := NewClient("https://app.example.com/api/v1/oauth/google/callback", zap.NewNop().Sugar())

	cfg := &model.GoogleAuthConfig{
		BaseModel: model.BaseModel{ID: "cfg-42"},
		ClientID:  "client-id",
		AuthURI:   model.DefaultAuthURI,
		TokenURI:  model.DefaultTokenURI,
	}

	rawURL := client.AuthCodeURL(cfg)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("AuthCodeURL() returned unparseable URL: %v", err)
	}

	query := parsed.Query()
	if got := query.Get("state"); got != "cfg-42" {
		t.Errorf("state = %q, want the config id", got)
	}
	if got := query.Get("access_type"); got != "offline" {
		t.Errorf("access_type = %q, want offline", got)
	}
	if got := query.Get("prompt"); got != "consent" {
		t.Errorf("prompt = %q, want consent", got)
	}
	if got := query.Get("scope"); got != ReadonlyScope {
		t.Errorf("scope = %q, want %q", got, ReadonlyScope)
	}
	if got := query.Get("redirect_uri"); got != "https://app.example.com/api/v1/oauth/google/callback" {
		t.Errorf("redirect_uri = %q", got)
	}
}

func TestExchange(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token request form: %v", err)
		}
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"ya29.new","token_type":"Bearer","expires_in":3600,"refresh_token":"1//refresh"}`)
	}))
	defer server.Close()

	client := NewClient("https://app.example.com/callback", zap.NewNop().Sugar())
	cfg := &model.GoogleAuthConfig{
		BaseModel:    model.BaseModel{ID: "cfg-1"},
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURI:     server.URL,
	}

	token, err := client.Exchange(context.Background(), cfg, "one-time-code")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	if token.AccessToken != "ya29.new" {
		t.Errorf("AccessToken = %q", token.AccessToken)
	}
	if token.RefreshToken != "1//refresh" {
		t.Errorf("RefreshToken = %q", token.RefreshToken)
	}
	if remaining := time.Until(token.Expiry); remaining < 50*time.Minute || remaining > 70*time.Minute {
		t.Errorf("Expiry = %v, want roughly an hour out", token.Expiry)
	}

	if got := gotForm.Get("grant_type"); got != "authorization_code" {
		t.Errorf("grant_type = %q, want authorization_code", got)
	}
	if got := gotForm.Get("code"); got != "one-time-code" {
		t.Errorf("code = %q", got)
	}
	if got := gotForm.Get("redirect_uri"); got != "https://app.example.com/callback" {
		t.Errorf("redirect_uri = %q", got)
	}
}

func TestExchangeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Code was already redeemed."}`)
	}))
	defer server.Close()

	client := NewClient("https://app.example.com/callback", zap.NewNop().Sugar())
	cfg := &model.GoogleAuthConfig{
		BaseModel:    model.BaseModel{ID: "cfg-1"},
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURI:     server.URL,
	}

	if _, err := client.Exchange(context.Background(), cfg, "used-code"); err == nil {
		t.Error("Exchange() error = nil, want failure for redeemed code")
	}
}

func TestListMessagesQueryEncoding(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"messages":[],"resultSizeEstimate":0}`)
	}))
	defer server.Close()

	client := NewClient("https://app.example.com/callback", zap.NewNop().Sugar(), WithBaseURL(server.URL))
	if _, err := client.ListMessages(context.Background(), "tok", "sender+tag@example.com"); err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}

	if gotQuery != "in:inbox from:sender+tag@example.com" {
		t.Errorf("q = %q, want inbox-scoped from: query", gotQuery)
	}
	if !strings.HasPrefix(gotQuery, "in:inbox") {
		t.Errorf("search not scoped to inbox: %q", gotQuery)
	}
}
