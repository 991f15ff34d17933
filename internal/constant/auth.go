package constant

type JwtType string

const (
	JWT_TYPE_ACCESS  JwtType = "access"
	JWT_TYPE_REFRESH JwtType = "refresh"
)

// Length of generated application access tokens (the opaque bearer secrets
// handed to end users, unrelated to Google OAuth tokens).
const ACCESS_TOKEN_LENGTH = 32
