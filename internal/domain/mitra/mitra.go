package mitra

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Mitra is a directory entry for an SHG community liaison.
type Mitra struct {
	ID        string                      `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name      string                      `gorm:"not null" json:"name"`
	Phone     string                      `gorm:"not null" json:"phone"`
	Area      string                      `gorm:"not null;index" json:"area"`
	Languages datatypes.JSONSlice[string] `json:"languages"`
	IsActive  bool                        `gorm:"not null;index" json:"isActive"`
	Rating    *float64                    `gorm:"type:decimal(3,2)" json:"rating"`
	SHGGroup  string                      `gorm:"column:shg_group" json:"shgGroup,omitempty"`
	Pincode   string                      `gorm:"index" json:"pincode,omitempty"`
	Latitude  *float64                    `json:"latitude,omitempty"`
	Longitude *float64                    `json:"longitude,omitempty"`
	CreatedAt time.Time                   `gorm:"not null" json:"createdAt"`
}

func (Mitra) TableName() string { return "mitras" }

func (m *Mitra) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Nearby is an active mitra annotated with its distance from a query point.
type Nearby struct {
	Mitra
	DistanceKm float64 `json:"distanceKm"`
}
