package mitra

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

const (
	SortDefault = ""
	SortRating  = "rating"
)

type MitraRepo interface {
	Upsert(dbc dbctx.Context, mitras []*types.Mitra) error
	ListActive(dbc dbctx.Context, sort string) ([]*types.Mitra, error)
	ListActiveByArea(dbc dbctx.Context, area string) ([]*types.Mitra, error)
	ListActiveWithCoordinates(dbc dbctx.Context) ([]*types.Mitra, error)
}

type mitraRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMitraRepo(db *gorm.DB, baseLog *logger.Logger) MitraRepo {
	return &mitraRepo{db: db, log: baseLog.With("repo", "MitraRepo")}
}

func (r *mitraRepo) Upsert(dbc dbctx.Context, mitras []*types.Mitra) error {
	if len(mitras) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "area", "languages", "is_active", "rating", "shg_group", "pincode", "latitude", "longitude"}),
		}).
		Create(&mitras).Error
}

func (r *mitraRepo) ListActive(dbc dbctx.Context, sort string) ([]*types.Mitra, error) {
	q := dbc.DB(r.db).Where("is_active = ?", true)
	switch sort {
	case SortRating:
		// NULL ratings sort last on both drivers.
		q = q.Order("CASE WHEN rating IS NULL THEN 1 ELSE 0 END, rating DESC, name ASC")
	default:
		q = q.Order("name ASC")
	}
	var out []*types.Mitra
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListActiveByArea matches area exactly; an unknown area yields an empty slice.
func (r *mitraRepo) ListActiveByArea(dbc dbctx.Context, area string) ([]*types.Mitra, error) {
	var out []*types.Mitra
	if err := dbc.DB(r.db).
		Where("is_active = ? AND area = ?", true, area).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mitraRepo) ListActiveWithCoordinates(dbc dbctx.Context) ([]*types.Mitra, error) {
	var out []*types.Mitra
	if err := dbc.DB(r.db).
		Where("is_active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
