package gmail

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter means the caller did not supply a sender address.
	ErrMissingParameter = errors.New("sender email address is required")

	// ErrNoActiveConfig means no Google auth configuration is marked active.
	ErrNoActiveConfig = errors.New("no active Google authentication found")

	// ErrReauthorizeRequired means the stored credentials can no longer mint a
	// usable access token. Retrying is pointless; the admin has to run the
	// consent flow again.
	ErrReauthorizeRequired = errors.New("Google authorization expired, reauthorize in the Admin panel")
)

// APIError is a non-2xx answer from the Gmail API with the provider detail kept
// for the admin.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("gmail api responded with status %d", e.StatusCode)
	}

	return fmt.Sprintf("gmail api responded with status %d: %s", e.StatusCode, e.Detail)
}

// Retryable reports whether another attempt could plausibly succeed. Credential
// and caller errors are terminal, everything else (network, 5xx) is transient.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrMissingParameter),
		errors.Is(err, ErrNoActiveConfig),
		errors.Is(err, ErrReauthorizeRequired):
		return false
	}

	return true
}
