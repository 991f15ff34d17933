package model

type Admin struct {
	BaseModel
	Username     string `gorm:"unique;not null;type:text" json:"username" form:"username" binding:"required,strNotEmpty"`
	PasswordHash string `gorm:"not null;type:text" json:"-"`
}

func (a Admin) TableName() string {
	return "admins"
}
