package services

import (
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/content"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos"
	mitrarepo "github.com/yungbote/jeevandwaar-backend/internal/data/repos/mitra"
	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

const (
	DefaultNearbyLimit = 5
	MaxNearbyLimit     = 50
)

type MitraService interface {
	List(dbc dbctx.Context, sort string) ([]*types.Mitra, error)
	ByArea(dbc dbctx.Context, area string) ([]*types.Mitra, error)
	Nearby(dbc dbctx.Context, lat, lng float64, limit int) ([]types.NearbyMitra, error)
	Seed(dbc dbctx.Context, c *content.Catalog) (int, error)
}

type mitraService struct {
	db        *gorm.DB
	log       *logger.Logger
	mitraRepo repos.MitraRepo
}

func NewMitraService(db *gorm.DB, log *logger.Logger, mitraRepo repos.MitraRepo) MitraService {
	return &mitraService{
		db:        db,
		log:       log.With("service", "MitraService"),
		mitraRepo: mitraRepo,
	}
}

func (s *mitraService) List(dbc dbctx.Context, sortBy string) ([]*types.Mitra, error) {
	switch sortBy {
	case mitrarepo.SortDefault, mitrarepo.SortRating:
	default:
		return nil, apierr.BadRequest("sort must be rating")
	}
	out, err := s.mitraRepo.ListActive(dbc, sortBy)
	if err != nil {
		return nil, fmt.Errorf("list mitras: %w", err)
	}
	return nonNilMitras(out), nil
}

// ByArea does not distinguish an unknown area from an empty one.
func (s *mitraService) ByArea(dbc dbctx.Context, area string) ([]*types.Mitra, error) {
	out, err := s.mitraRepo.ListActiveByArea(dbc, area)
	if err != nil {
		return nil, fmt.Errorf("list mitras by area: %w", err)
	}
	return nonNilMitras(out), nil
}

func (s *mitraService) Nearby(dbc dbctx.Context, lat, lng float64, limit int) ([]types.NearbyMitra, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, apierr.BadRequest("lat must be within [-90,90] and lng within [-180,180]")
	}
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}
	if limit > MaxNearbyLimit {
		limit = MaxNearbyLimit
	}
	rows, err := s.mitraRepo.ListActiveWithCoordinates(dbc)
	if err != nil {
		return nil, fmt.Errorf("list mitras with coordinates: %w", err)
	}
	out := make([]types.NearbyMitra, 0, len(rows))
	for _, m := range rows {
		if m.Latitude == nil || m.Longitude == nil {
			continue
		}
		d := haversineKm(lat, lng, *m.Latitude, *m.Longitude)
		out = append(out, types.NearbyMitra{Mitra: *m, DistanceKm: math.Round(d*100) / 100})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *mitraService) Seed(dbc dbctx.Context, c *content.Catalog) (int, error) {
	if c == nil {
		return 0, nil
	}
	models := c.MitraModels()
	if err := s.mitraRepo.Upsert(dbc, models); err != nil {
		return 0, fmt.Errorf("seed mitras: %w", err)
	}
	s.log.Info("Mitras seeded", "count", len(models))
	return len(models), nil
}

func nonNilMitras(in []*types.Mitra) []*types.Mitra {
	if in == nil {
		return []*types.Mitra{}
	}
	return in
}
