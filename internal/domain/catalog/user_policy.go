package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusActive  = "active"
	StatusLapsed  = "lapsed"
	StatusClaimed = "claimed"
)

// UserPolicy links a user to a purchased policy.
type UserPolicy struct {
	ID              string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	UserID          string         `gorm:"type:varchar(64);not null;index" json:"userId"`
	PolicyID        string         `gorm:"type:varchar(64);not null;index" json:"policyId"`
	Status          string         `gorm:"not null;index" json:"status"`
	StartDate       time.Time      `gorm:"not null" json:"startDate"`
	NextPremiumDate *time.Time     `json:"nextPremiumDate"`
	NomineeDetails  datatypes.JSON `json:"nomineeDetails"`
	CreatedAt       time.Time      `gorm:"not null" json:"createdAt"`
}

func (UserPolicy) TableName() string { return "user_policies" }

func (up *UserPolicy) BeforeCreate(tx *gorm.DB) error {
	if up.ID == "" {
		up.ID = uuid.NewString()
	}
	if up.Status == "" {
		up.Status = StatusActive
	}
	if up.StartDate.IsZero() {
		up.StartDate = time.Now().UTC()
	}
	return nil
}
