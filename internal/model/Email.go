package model

import "time"

// Email is a cached copy of a Gmail message, keyed by the provider message id.
// Rows are upserted on every successful search; IsHidden is only ever mutated
// through the visibility endpoint and must survive re-fetches.
type Email struct {
	ID        string     `gorm:"type:text;primaryKey" json:"id"`
	From      string     `gorm:"column:from_address;type:text;not null" json:"from"`
	To        string     `gorm:"column:to_address;type:text;default:null" json:"to"`
	Subject   string     `gorm:"type:text;default:null" json:"subject"`
	Body      string     `gorm:"type:text;default:null" json:"body"`
	Date      time.Time  `gorm:"type:timestamptz;not null" json:"date"`
	IsRead    bool       `gorm:"not null;default:false" json:"isRead"`
	IsHidden  bool       `gorm:"not null;default:false" json:"isHidden"`
	CreatedAt *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP;not null" json:"-"`
	UpdatedAt *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP;onUpdate:CURRENT_TIMESTAMP;not null" json:"-"`
}

func (e Email) TableName() string {
	return "emails"
}
