package advisor

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatbotQuery is an append-only log of one chat turn.
type ChatbotQuery struct {
	ID         string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	SessionID  string    `gorm:"not null;index" json:"sessionId"`
	Question   string    `gorm:"not null;index" json:"question"`
	Answer     string    `json:"answer"`
	Category   string    `gorm:"index" json:"category"`
	Language   string    `json:"language"`
	IsResolved bool      `gorm:"not null" json:"isResolved"`
	CreatedAt  time.Time `gorm:"not null;index" json:"createdAt"`
}

func (ChatbotQuery) TableName() string { return "chatbot_queries" }

func (q *ChatbotQuery) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// PopularQuestion is one row of the question frequency aggregate.
type PopularQuestion struct {
	Question string `json:"question"`
	Count    int64  `json:"count"`
}
