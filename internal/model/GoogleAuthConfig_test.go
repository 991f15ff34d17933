package model

import (
	"testing"
	"time"
)

func TestTokenStale(t *testing.T) {
	expiry := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		config GoogleAuthConfig
		now    time.Time
		want   bool
	}{
		{
			name:   "no access token",
			config: GoogleAuthConfig{TokenExpiry: &expiry},
			now:    expiry.Add(-time.Hour),
			want:   true,
		},
		{
			name:   "no expiry recorded",
			config: GoogleAuthConfig{AccessToken: "ya29.token"},
			now:    expiry.Add(-time.Hour),
			want:   true,
		},
		{
			name:   "well before expiry",
			config: GoogleAuthConfig{AccessToken: "ya29.token", TokenExpiry: &expiry},
			now:    expiry.Add(-time.Hour),
			want:   false,
		},
		{
			name:   "exactly at skew boundary",
			config: GoogleAuthConfig{AccessToken: "ya29.token", TokenExpiry: &expiry},
			now:    expiry.Add(-TokenExpirySkew),
			want:   true,
		},
		{
			name:   "one second before skew boundary",
			config: GoogleAuthConfig{AccessToken: "ya29.token", TokenExpiry: &expiry},
			now:    expiry.Add(-TokenExpirySkew - time.Second),
			want:   false,
		},
		{
			name:   "past expiry",
			config: GoogleAuthConfig{AccessToken: "ya29.token", TokenExpiry: &expiry},
			now:    expiry.Add(time.Minute),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.TokenStale(tt.now); got != tt.want {
				t.Errorf("TokenStale() = %v, want %v", got, tt.want)
			}
		})
	}
}
