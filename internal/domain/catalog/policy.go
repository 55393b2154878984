package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AgeGroupYoung  = "18-30"
	AgeGroupMiddle = "31-45"
	AgeGroupMature = "46-60"
	AgeGroupSenior = "60+"
)

// AgeGroups lists the only valid values for Policy.AgeGroup.
var AgeGroups = []string{AgeGroupYoung, AgeGroupMiddle, AgeGroupMature, AgeGroupSenior}

func IsAgeGroup(v string) bool {
	for _, g := range AgeGroups {
		if g == v {
			return true
		}
	}
	return false
}

// Policy is a catalog item. Inactive policies are hidden from catalog and recommendation reads.
type Policy struct {
	ID             string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `gorm:"column:description" json:"description"`
	CoverageAmount float64        `gorm:"type:decimal(12,2);not null" json:"coverageAmount"`
	MonthlyPremium float64        `gorm:"type:decimal(8,2);not null" json:"monthlyPremium"`
	AgeGroup       string         `gorm:"not null;index" json:"ageGroup"`
	Duration       int            `gorm:"not null" json:"duration"`
	IsActive       bool           `gorm:"not null;index" json:"isActive"`
	Features       datatypes.JSON `json:"features"`
	Exclusions     datatypes.JSON `json:"exclusions"`
	CreatedAt      time.Time      `gorm:"not null" json:"createdAt"`
}

func (Policy) TableName() string { return "policies" }

func (p *Policy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
