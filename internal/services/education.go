package services

import (
	"context"
	"fmt"

	"github.com/yungbote/jeevandwaar-backend/internal/content"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

// EducationService serves the read-only learning and fund content from the embedded catalog.
type EducationService interface {
	Funds(language string) []content.FundView
	Articles(language string) []content.ArticleView
	Search(ctx context.Context, q, language string, limit int) ([]content.SearchHit, error)
}

type educationService struct {
	log     *logger.Logger
	catalog *content.Catalog
	index   *content.Index
}

func NewEducationService(log *logger.Logger, catalog *content.Catalog, index *content.Index) EducationService {
	return &educationService{
		log:     log.With("service", "EducationService"),
		catalog: catalog,
		index:   index,
	}
}

func (s *educationService) Funds(language string) []content.FundView {
	return s.catalog.FundViews(language)
}

func (s *educationService) Articles(language string) []content.ArticleView {
	return s.catalog.ArticleViews(language)
}

func (s *educationService) Search(ctx context.Context, q, language string, limit int) ([]content.SearchHit, error) {
	if q == "" {
		return nil, apierr.BadRequest("q is required")
	}
	hits, err := s.index.Search(ctx, q, language, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return hits, nil
}
