package advisor

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	IncomeLow    = "low"
	IncomeMedium = "medium"
	IncomeHigh   = "high"

	GoalEducation  = "education"
	GoalProtection = "protection"
	GoalRetirement = "retirement"
)

// PolicyRecommendation logs one recommendation request and, later, whether it was accepted.
type PolicyRecommendation struct {
	ID                   string                      `gorm:"type:varchar(64);primaryKey" json:"id"`
	SessionID            string                      `gorm:"not null;index" json:"sessionId"`
	Age                  *int                        `json:"age"`
	IncomeRange          *string                     `gorm:"column:income_range" json:"incomeRange"`
	Dependents           *int                        `json:"dependents"`
	Goal                 *string                     `json:"goal"`
	RecommendedPolicyIDs datatypes.JSONSlice[string] `gorm:"column:recommended_policy_ids" json:"recommendedPolicyIds"`
	SelectedPolicyID     *string                     `gorm:"type:varchar(64);column:selected_policy_id" json:"selectedPolicyId"`
	IsAccepted           bool                        `gorm:"not null;index" json:"isAccepted"`
	CreatedAt            time.Time                   `gorm:"not null;index" json:"createdAt"`
}

func (PolicyRecommendation) TableName() string { return "policy_recommendations" }

func (r *PolicyRecommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
