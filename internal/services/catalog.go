package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/content"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos"
	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/catalog"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type CatalogService interface {
	ListActive(dbc dbctx.Context) ([]*types.Policy, error)
	ListByAgeGroup(dbc dbctx.Context, ageGroup string) ([]*types.Policy, error)
	Get(dbc dbctx.Context, id string) (*types.Policy, error)
	Seed(dbc dbctx.Context, c *content.Catalog) (int, error)
}

type catalogService struct {
	db         *gorm.DB
	log        *logger.Logger
	policyRepo repos.PolicyRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, policyRepo repos.PolicyRepo) CatalogService {
	return &catalogService{
		db:         db,
		log:        log.With("service", "CatalogService"),
		policyRepo: policyRepo,
	}
}

func (s *catalogService) ListActive(dbc dbctx.Context) ([]*types.Policy, error) {
	out, err := s.policyRepo.ListActive(dbc)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	return nonNilPolicies(out), nil
}

func (s *catalogService) ListByAgeGroup(dbc dbctx.Context, ageGroup string) ([]*types.Policy, error) {
	if !catalog.IsAgeGroup(ageGroup) {
		return nil, apierr.BadRequest("ageGroup must be one of 18-30, 31-45, 46-60, 60+")
	}
	out, err := s.policyRepo.ListActiveByAgeGroup(dbc, ageGroup)
	if err != nil {
		return nil, fmt.Errorf("list policies by age group: %w", err)
	}
	return nonNilPolicies(out), nil
}

// Get returns inactive policies too, so links to retired plans still resolve.
func (s *catalogService) Get(dbc dbctx.Context, id string) (*types.Policy, error) {
	p, err := s.policyRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("get policy: %w", err)
	}
	if p == nil {
		return nil, apierr.NotFound("policy")
	}
	return p, nil
}

func (s *catalogService) Seed(dbc dbctx.Context, c *content.Catalog) (int, error) {
	if c == nil {
		return 0, nil
	}
	models := c.PolicyModels()
	if err := s.policyRepo.Upsert(dbc, models); err != nil {
		return 0, fmt.Errorf("seed policies: %w", err)
	}
	s.log.Info("Policies seeded", "count", len(models))
	return len(models), nil
}

func nonNilPolicies(in []*types.Policy) []*types.Policy {
	if in == nil {
		return []*types.Policy{}
	}
	return in
}
