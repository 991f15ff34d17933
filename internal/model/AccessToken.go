package model

// AccessToken is the application-level bearer secret handed to an end user so
// they may run inbox searches. Not related to Google OAuth tokens.
type AccessToken struct {
	BaseModel
	Token string `gorm:"unique;not null;type:text" json:"token" form:"token"`

	// Description is a free-form admin label, usually who the token was handed to.
	Description string `gorm:"type:text" json:"description" form:"description"`
	IsBlocked   bool   `gorm:"not null;default:false" json:"isBlocked"`
}

func (at AccessToken) TableName() string {
	return "access_tokens"
}
