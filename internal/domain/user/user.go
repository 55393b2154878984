package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultLanguage = "hindi"

type User struct {
	ID                string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Username          string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password          string    `gorm:"not null;column:password" json:"-"`
	Email             *string   `gorm:"column:email" json:"email"`
	Phone             *string   `gorm:"column:phone" json:"phone"`
	PreferredLanguage string    `gorm:"column:preferred_language;index" json:"preferredLanguage"`
	CreatedAt         time.Time `gorm:"not null" json:"createdAt"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.PreferredLanguage == "" {
		u.PreferredLanguage = DefaultLanguage
	}
	return nil
}
