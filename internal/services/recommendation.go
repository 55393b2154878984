package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/data/repos"
	"github.com/yungbote/jeevandwaar-backend/internal/observability"
	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/rules"
)

type RecommendInput struct {
	SessionID   string
	Age         *int
	IncomeRange *string
	Dependents  *int
	Goal        *string
}

type RecommendationService interface {
	Recommend(dbc dbctx.Context, in RecommendInput) (*types.PolicyRecommendation, error)
	ListBySession(dbc dbctx.Context, sessionID string) ([]*types.PolicyRecommendation, error)
	Accept(dbc dbctx.Context, id string, selectedPolicyID *string) error
}

type recommendationService struct {
	db      *gorm.DB
	log     *logger.Logger
	recRepo repos.RecommendationRepo
}

func NewRecommendationService(db *gorm.DB, log *logger.Logger, recRepo repos.RecommendationRepo) RecommendationService {
	return &recommendationService{
		db:      db,
		log:     log.With("service", "RecommendationService"),
		recRepo: recRepo,
	}
}

// Recommend evaluates the decision table and logs one row per call, even for repeated input.
func (s *recommendationService) Recommend(dbc dbctx.Context, in RecommendInput) (*types.PolicyRecommendation, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, apierr.BadRequest("sessionId is required")
	}
	candidates := rules.Recommend(rules.Profile{
		Age:         in.Age,
		IncomeRange: in.IncomeRange,
		Dependents:  in.Dependents,
		Goal:        in.Goal,
	})
	row := &types.PolicyRecommendation{
		SessionID:            sessionID,
		Age:                  in.Age,
		IncomeRange:          in.IncomeRange,
		Dependents:           in.Dependents,
		Goal:                 in.Goal,
		RecommendedPolicyIDs: candidates,
	}
	created, err := s.recRepo.Create(dbc, row)
	if err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}
	observability.Current().IncRecommendation(candidates)
	s.log.Debug("Recommendation logged", "session_id", sessionID, "candidates", candidates)
	return created, nil
}

func (s *recommendationService) ListBySession(dbc dbctx.Context, sessionID string) ([]*types.PolicyRecommendation, error) {
	rows, err := s.recRepo.ListBySession(dbc, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	if rows == nil {
		rows = []*types.PolicyRecommendation{}
	}
	return rows, nil
}

// Accept overwrites any earlier acceptance. selectedPolicyID is stored as given, without
// checking it against the row's candidates; nil clears it. Unknown ids are ignored.
func (s *recommendationService) Accept(dbc dbctx.Context, id string, selectedPolicyID *string) error {
	matched, err := s.recRepo.UpdateAcceptance(dbc, id, selectedPolicyID)
	if err != nil {
		return fmt.Errorf("accept recommendation: %w", err)
	}
	if !matched {
		s.log.Debug("Accept matched no recommendation", "recommendation_id", id)
	}
	return nil
}
