package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/catalog"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, language string) *types.User {
	tb.Helper()
	u := &types.User{
		Username:          username,
		Password:          "hash",
		PreferredLanguage: language,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPolicy(tb testing.TB, ctx context.Context, tx *gorm.DB, id, ageGroup string, premium float64, active bool) *types.Policy {
	tb.Helper()
	p := &types.Policy{
		ID:             id,
		Name:           id,
		Description:    "policy " + id,
		CoverageAmount: premium * 1000,
		MonthlyPremium: premium,
		AgeGroup:       ageGroup,
		Duration:       20,
		IsActive:       active,
		Features:       datatypes.JSON([]byte(`["cover"]`)),
		Exclusions:     datatypes.JSON([]byte(`[]`)),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed policy: %v", err)
	}
	return p
}

func SeedUserPolicy(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, policyID, status string) *types.UserPolicy {
	tb.Helper()
	up := &types.UserPolicy{
		UserID:         userID,
		PolicyID:       policyID,
		Status:         status,
		NomineeDetails: datatypes.JSON([]byte(`{}`)),
	}
	if up.Status == "" {
		up.Status = catalog.StatusActive
	}
	if err := tx.WithContext(ctx).Create(up).Error; err != nil {
		tb.Fatalf("seed user policy: %v", err)
	}
	return up
}

func SeedRecommendation(tb testing.TB, ctx context.Context, tx *gorm.DB, sessionID string, accepted bool, createdAt time.Time) *types.PolicyRecommendation {
	tb.Helper()
	r := &types.PolicyRecommendation{
		SessionID:            sessionID,
		RecommendedPolicyIDs: []string{"basic-plan", "family-plan"},
		IsAccepted:           accepted,
		CreatedAt:            createdAt,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed recommendation: %v", err)
	}
	return r
}

func SeedChatbotQuery(tb testing.TB, ctx context.Context, tx *gorm.DB, sessionID, question, category string, createdAt time.Time) *types.ChatbotQuery {
	tb.Helper()
	q := &types.ChatbotQuery{
		SessionID:  sessionID,
		Question:   question,
		Answer:     "answer",
		Category:   category,
		Language:   "hindi",
		IsResolved: true,
		CreatedAt:  createdAt,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed chatbot query: %v", err)
	}
	return q
}

func SeedMitra(tb testing.TB, ctx context.Context, tx *gorm.DB, name, area string, rating float64, active bool, lat, lng *float64) *types.Mitra {
	tb.Helper()
	m := &types.Mitra{
		Name:      name,
		Phone:     "+91 90000-00000",
		Area:      area,
		Languages: []string{"hindi", "english"},
		IsActive:  active,
		Rating:    &rating,
		Latitude:  lat,
		Longitude: lng,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mitra: %v", err)
	}
	return m
}

func PtrFloat(v float64) *float64 { return &v }

func PtrString(v string) *string { return &v }

func PtrInt(v int) *int { return &v }
