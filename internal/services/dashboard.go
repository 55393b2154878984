package services

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/data/repos"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/reports"
)

type DashboardStats struct {
	TotalPolicies   int64  `json:"totalPolicies"`
	ActiveCustomers int64  `json:"activeCustomers"`
	MonthlyRevenue  string `json:"monthlyRevenue"`
	AcceptanceRate  int    `json:"acceptanceRate"`
}

type LanguageStat struct {
	Language   string `json:"language"`
	Percentage int    `json:"percentage"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	LanguageStats(ctx context.Context) ([]LanguageStat, error)
	Export(ctx context.Context) ([]byte, error)
}

type dashboardService struct {
	db            *gorm.DB
	log           *logger.Logger
	dashboardRepo repos.DashboardRepo
	queryRepo     repos.ChatbotQueryRepo
}

func NewDashboardService(db *gorm.DB, log *logger.Logger, dashboardRepo repos.DashboardRepo, queryRepo repos.ChatbotQueryRepo) DashboardService {
	return &dashboardService{
		db:            db,
		log:           log.With("service", "DashboardService"),
		dashboardRepo: dashboardRepo,
		queryRepo:     queryRepo,
	}
}

// Stats runs the four aggregates concurrently with no shared transaction, so they may
// observe different snapshots under concurrent writes.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		totalPolicies   int64
		activeCustomers int64
		revenue         float64
		acceptance      repos.AcceptanceCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)
	g.Go(func() error {
		n, err := s.dashboardRepo.CountUserPolicies(dbc)
		if err != nil {
			return fmt.Errorf("count user policies: %w", err)
		}
		totalPolicies = n
		return nil
	})
	g.Go(func() error {
		n, err := s.dashboardRepo.CountUsers(dbc)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		activeCustomers = n
		return nil
	})
	g.Go(func() error {
		v, err := s.dashboardRepo.SumActivePremiums(dbc)
		if err != nil {
			return fmt.Errorf("sum premiums: %w", err)
		}
		revenue = v
		return nil
	})
	g.Go(func() error {
		c, err := s.dashboardRepo.AcceptanceCounts(dbc)
		if err != nil {
			return fmt.Errorf("acceptance counts: %w", err)
		}
		acceptance = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalPolicies:   totalPolicies,
		ActiveCustomers: activeCustomers,
		MonthlyRevenue:  fmt.Sprintf("%.2f", revenue),
		AcceptanceRate:  percentage(acceptance.Accepted, acceptance.Total),
	}, nil
}

func (s *dashboardService) LanguageStats(ctx context.Context) ([]LanguageStat, error) {
	counts, err := s.dashboardRepo.LanguageCounts(dbctx.New(ctx))
	if err != nil {
		return nil, fmt.Errorf("language counts: %w", err)
	}
	var total int64
	for _, c := range counts {
		total += c.Total
	}
	out := make([]LanguageStat, 0, len(counts))
	for _, c := range counts {
		out = append(out, LanguageStat{Language: c.Language, Percentage: percentage(c.Total, total)})
	}
	return out, nil
}

func (s *dashboardService) Export(ctx context.Context) ([]byte, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	langs, err := s.LanguageStats(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.queryRepo.Popular(dbctx.New(ctx), MaxByCategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("popular questions: %w", err)
	}

	report := reports.Dashboard{
		TotalPolicies:   stats.TotalPolicies,
		ActiveCustomers: stats.ActiveCustomers,
		MonthlyRevenue:  stats.MonthlyRevenue,
		AcceptanceRate:  stats.AcceptanceRate,
	}
	for _, l := range langs {
		report.Languages = append(report.Languages, reports.LanguageRow{Language: l.Language, Percentage: l.Percentage})
	}
	for _, p := range popular {
		report.Popular = append(report.Popular, reports.PopularRow{Question: p.Question, Count: p.Count})
	}
	return reports.DashboardWorkbook(report)
}

// percentage returns round(part/total*100), or 0 when total is 0.
func percentage(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
