package model

import "time"

const (
	DefaultAuthURI  = "https://accounts.google.com/o/oauth2/auth"
	DefaultTokenURI = "https://oauth2.googleapis.com/token"
)

// How long before the stored expiry a Google access token is already treated as
// stale. Covers clock drift plus the latency of the API call made right after
// the freshness check.
const TokenExpirySkew = 5 * time.Minute

type GoogleAuthConfig struct {
	BaseModel
	ClientID     string     `gorm:"not null;type:text" json:"clientId" form:"clientId" binding:"required,strNotEmpty"`
	ClientSecret string     `gorm:"not null;type:text" json:"clientSecret" form:"clientSecret" binding:"required,strNotEmpty"`
	ProjectID    string     `gorm:"type:text;default:null" json:"projectId" form:"projectId"`
	AuthURI      string     `gorm:"type:text;not null" json:"authUri" form:"authUri"`
	TokenURI     string     `gorm:"type:text;not null" json:"tokenUri" form:"tokenUri"`
	AccessToken  string     `gorm:"type:text;default:null" json:"-"`
	RefreshToken string     `gorm:"type:text;default:null" json:"-"`
	TokenExpiry  *time.Time `gorm:"type:timestamptz;default:null" json:"tokenExpiry"`
	IsActive     bool       `gorm:"not null;default:false" json:"isActive"`
}

func (gac GoogleAuthConfig) TableName() string {
	return "google_auth_configs"
}

// Authorized reports whether the config finished the consent flow at least once.
func (gac GoogleAuthConfig) Authorized() bool {
	return gac.RefreshToken != ""
}

// TokenStale reports whether the stored access token must be refreshed before
// use. A token is stale when absent, when the expiry is unknown, or when
// now+skew has reached the expiry. The boundary counts as stale.
func (gac GoogleAuthConfig) TokenStale(now time.Time) bool {
	if gac.AccessToken == "" || gac.TokenExpiry == nil {
		return true
	}

	return !now.Add(TokenExpirySkew).Before(*gac.TokenExpiry)
}
