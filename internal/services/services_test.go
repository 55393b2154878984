package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/content"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos/testutil"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/catalog"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/rules"
)

func setup(t *testing.T) (*gorm.DB, dbctx.Context) {
	t.Helper()
	if testutil.UsingPostgres() {
		t.Skip("service tests assert absolute counts; run them on sqlite")
	}
	db := testutil.DB(t)
	return db, dbctx.New(context.Background())
}

func ptr[T any](v T) *T { return &v }

func TestRecommendationService(t *testing.T) {
	db, dbc := setup(t)
	log := testutil.Logger(t)
	svc := NewRecommendationService(db, log, repos.NewRecommendationRepo(db, log))

	_, err := svc.Recommend(dbc, RecommendInput{SessionID: "  "})
	require.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))

	in := RecommendInput{SessionID: "s1", Age: ptr(25), IncomeRange: ptr("low"), Dependents: ptr(0), Goal: ptr("protection")}
	first, err := svc.Recommend(dbc, in)
	require.NoError(t, err)
	assert.Equal(t, []string{rules.PlanBasic, rules.PlanFamily}, []string(first.RecommendedPolicyIDs))
	assert.False(t, first.IsAccepted)

	second, err := svc.Recommend(dbc, in)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "each call logs a new row")
	assert.Equal(t, first.RecommendedPolicyIDs, second.RecommendedPolicyIDs)

	rows, err := svc.ListBySession(dbc, "s1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	empty, err := svc.ListBySession(dbc, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRecommendationAcceptOverwrites(t *testing.T) {
	db, dbc := setup(t)
	log := testutil.Logger(t)
	recRepo := repos.NewRecommendationRepo(db, log)
	svc := NewRecommendationService(db, log, recRepo)

	rec, err := svc.Recommend(dbc, RecommendInput{SessionID: "s2", IncomeRange: ptr("high"), Age: ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, []string{rules.PlanPremium, rules.PlanSenior}, []string(rec.RecommendedPolicyIDs))

	require.NoError(t, svc.Accept(dbc, rec.ID, ptr("premium-plan")))
	require.NoError(t, svc.Accept(dbc, rec.ID, ptr("not-a-candidate")))

	got, err := recRepo.GetByID(dbc, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAccepted)
	require.NotNil(t, got.SelectedPolicyID)
	assert.Equal(t, "not-a-candidate", *got.SelectedPolicyID)

	require.NoError(t, svc.Accept(dbc, "missing-id", nil), "unknown ids are a no-op")
}

func TestChatbotService(t *testing.T) {
	db, _ := setup(t)
	log := testutil.Logger(t)
	svc := NewChatbotService(db, log, repos.NewChatbotQueryRepo(db, log))

	englishCtx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{Language: ctxutil.LanguageEnglish})
	dbc := dbctx.New(englishCtx)

	q, err := svc.Ask(dbc, ChatInput{SessionID: "c1", Question: "How do I pay my premium?"})
	require.NoError(t, err)
	assert.Equal(t, rules.CategoryPremium, q.Category)
	assert.Equal(t, "english", q.Language)
	assert.Equal(t, rules.Answer("premium", "english").Answer, q.Answer)
	assert.True(t, q.IsResolved)

	q, err = svc.Ask(dbc, ChatInput{SessionID: "c1", Question: "premium aur claim", Language: ptr("hindi")})
	require.NoError(t, err)
	assert.Equal(t, rules.CategoryPremium, q.Category)
	assert.Equal(t, "hindi", q.Language)

	q, err = svc.Ask(dbctx.New(context.Background()), ChatInput{SessionID: "c1", Question: "नमस्ते"})
	require.NoError(t, err)
	assert.Equal(t, rules.CategoryGeneral, q.Category)
	assert.Equal(t, rules.FallbackAnswer("hindi"), q.Answer)

	_, err = svc.Ask(dbc, ChatInput{SessionID: "c1"})
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))

	popular, err := svc.Popular(dbc, 0)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	for _, p := range popular {
		assert.EqualValues(t, 1, p.Count)
	}
	assert.Equal(t, "How do I pay my premium?", popular[0].Question)

	byCat, err := svc.ByCategory(dbc, rules.CategoryPremium, 100)
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	_, err = svc.ByCategory(dbc, "weather", 5)
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))
}

func TestCatalogService(t *testing.T) {
	db, dbc := setup(t)
	log := testutil.Logger(t)
	svc := NewCatalogService(db, log, repos.NewPolicyRepo(db, log))

	c, err := content.Load()
	require.NoError(t, err)
	n, err := svc.Seed(dbc, c)
	require.NoError(t, err)
	assert.Equal(t, len(c.Policies), n)
	_, err = svc.Seed(dbc, c)
	require.NoError(t, err, "seeding twice converges")

	all, err := svc.ListActive(dbc)
	require.NoError(t, err)
	assert.Len(t, all, len(c.Policies))

	young, err := svc.ListByAgeGroup(dbc, catalog.AgeGroupYoung)
	require.NoError(t, err)
	for _, p := range young {
		assert.Equal(t, catalog.AgeGroupYoung, p.AgeGroup)
	}

	_, err = svc.ListByAgeGroup(dbc, "20-25")
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))

	p, err := svc.Get(dbc, rules.PlanFamily)
	require.NoError(t, err)
	assert.Equal(t, rules.PlanFamily, p.ID)

	_, err = svc.Get(dbc, "nope")
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}

func TestMitraService(t *testing.T) {
	db, dbc := setup(t)
	log := testutil.Logger(t)
	svc := NewMitraService(db, log, repos.NewMitraRepo(db, log))

	c, err := content.Load()
	require.NoError(t, err)
	_, err = svc.Seed(dbc, c)
	require.NoError(t, err)

	rated, err := svc.List(dbc, "rating")
	require.NoError(t, err)
	require.NotEmpty(t, rated)
	for i := 1; i < len(rated); i++ {
		assert.GreaterOrEqual(t, *rated[i-1].Rating, *rated[i].Rating)
	}

	_, err = svc.List(dbc, "distance")
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))

	area, err := svc.ByArea(dbc, "Sector 15")
	require.NoError(t, err)
	require.Len(t, area, 1)
	assert.Equal(t, "Sunita Devi", area[0].Name)

	none, err := svc.ByArea(dbc, "Atlantis")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	// Gurgaon railway station sits next to the Sector 15 mitra.
	near, err := svc.Nearby(dbc, 28.4601, 77.0270, 2)
	require.NoError(t, err)
	require.Len(t, near, 2)
	assert.Equal(t, "Sunita Devi", near[0].Name)
	assert.Less(t, near[0].DistanceKm, 1.0)
	assert.LessOrEqual(t, near[0].DistanceKm, near[1].DistanceKm)

	_, err = svc.Nearby(dbc, 95, 0, 1)
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, haversineKm(28.46, 77.03, 28.46, 77.03), 1e-9)
	// Delhi to Mumbai is roughly 1150 km.
	assert.InDelta(t, 1150, haversineKm(28.6139, 77.2090, 19.0760, 72.8777), 20)
}

func TestUserService(t *testing.T) {
	db, dbc := setup(t)
	log := testutil.Logger(t)
	policyRepo := repos.NewPolicyRepo(db, log)
	svc := NewUserService(db, log, repos.NewUserRepo(db, log), policyRepo, repos.NewUserPolicyRepo(db, log))

	u, err := svc.Create(dbc, CreateUserInput{Username: "raj", Password: "secret", PreferredLanguage: ptr("english")})
	require.NoError(t, err)
	assert.NotEqual(t, "secret", u.Password)
	assert.Equal(t, "english", u.PreferredLanguage)

	_, err = svc.Create(dbc, CreateUserInput{Username: "raj", Password: "other"})
	assert.Equal(t, http.StatusConflict, apierr.StatusOf(err))

	_, err = svc.Get(dbc, "missing")
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))

	testutil.SeedPolicy(t, dbc.Ctx, db, "svc-plan", catalog.AgeGroupMiddle, 500, true)
	testutil.SeedPolicy(t, dbc.Ctx, db, "svc-retired", catalog.AgeGroupMiddle, 500, false)

	_, err = svc.AddPolicy(dbc, u.ID, AddUserPolicyInput{PolicyID: "svc-retired"})
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))

	next := time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second)
	link, err := svc.AddPolicy(dbc, u.ID, AddUserPolicyInput{PolicyID: "svc-plan", NextPremiumDate: &next})
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusActive, link.Status)

	links, err := svc.ListPolicies(dbc, u.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)

	_, err = svc.UpdatePolicyStatus(dbc, link.ID, "expired")
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))
	updated, err := svc.UpdatePolicyStatus(dbc, link.ID, catalog.StatusClaimed)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusClaimed, updated.Status)

	nominee := json.RawMessage(`{"name":"Sita","relation":"spouse","share":100}`)
	updated, err = svc.UpdateNominee(dbc, link.ID, nominee)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(updated.NomineeDetails, &got))
	assert.Equal(t, "Sita", got["name"])

	_, err = svc.UpdateNominee(dbc, "missing", nominee)
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))
}

func TestDashboardServiceEmpty(t *testing.T) {
	db, dbc := setup(t)
	log := testutil.Logger(t)
	svc := NewDashboardService(db, log, repos.NewDashboardRepo(db, log), repos.NewChatbotQueryRepo(db, log))

	stats, err := svc.Stats(dbc.Ctx)
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{MonthlyRevenue: "0.00"}, stats)

	langs, err := svc.LanguageStats(dbc.Ctx)
	require.NoError(t, err)
	assert.Empty(t, langs)
}

func TestDashboardService(t *testing.T) {
	db, dbc := setup(t)
	log := testutil.Logger(t)
	ctx := dbc.Ctx
	svc := NewDashboardService(db, log, repos.NewDashboardRepo(db, log), repos.NewChatbotQueryRepo(db, log))

	u1 := testutil.SeedUser(t, ctx, db, "a", "hindi")
	testutil.SeedUser(t, ctx, db, "b", "hindi")
	testutil.SeedUser(t, ctx, db, "c", "english")
	testutil.SeedPolicy(t, ctx, db, "dash-plan", catalog.AgeGroupYoung, 250.5, true)
	testutil.SeedUserPolicy(t, ctx, db, u1.ID, "dash-plan", catalog.StatusActive)
	testutil.SeedUserPolicy(t, ctx, db, u1.ID, "dash-plan", catalog.StatusActive)
	testutil.SeedRecommendation(t, ctx, db, "s", true, time.Now())
	testutil.SeedRecommendation(t, ctx, db, "s", false, time.Now())
	testutil.SeedRecommendation(t, ctx, db, "s", false, time.Now())
	testutil.SeedChatbotQuery(t, ctx, db, "s", "premium?", "premium", time.Now())

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalPolicies)
	assert.EqualValues(t, 3, stats.ActiveCustomers)
	assert.Equal(t, "501.00", stats.MonthlyRevenue)
	assert.Equal(t, 33, stats.AcceptanceRate)

	langs, err := svc.LanguageStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []LanguageStat{{Language: "hindi", Percentage: 67}, {Language: "english", Percentage: 33}}, langs)

	raw, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, percentage(0, 0))
	assert.Equal(t, 0, percentage(5, 0))
	assert.Equal(t, 50, percentage(1, 2))
	assert.Equal(t, 67, percentage(2, 3))
	assert.Equal(t, 100, percentage(3, 3))
}

func TestEducationService(t *testing.T) {
	c, err := content.Load()
	require.NoError(t, err)
	ix, err := content.NewIndex(c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ix.Close() })
	svc := NewEducationService(testutil.Logger(t), c, ix)

	assert.Len(t, svc.Funds("english"), len(c.Funds))
	assert.Len(t, svc.Articles("hindi"), len(c.Articles))

	_, err = svc.Search(context.Background(), "", "", 5)
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))

	hits, err := svc.Search(context.Background(), "claim", "english", 5)
	require.NoError(t, err)
	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.Article.ID)
	}
	assert.Contains(t, ids, "claim-process")
}
