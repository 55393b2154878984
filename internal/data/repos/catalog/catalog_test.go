package catalog

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/jeevandwaar-backend/internal/data/repos/testutil"
	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/catalog"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
)

func TestPolicyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewPolicyRepo(db, testutil.Logger(t))

	testutil.SeedPolicy(t, ctx, tx, "t-young-a", catalog.AgeGroupYoung, 500, true)
	testutil.SeedPolicy(t, ctx, tx, "t-young-b", catalog.AgeGroupYoung, 300, true)
	testutil.SeedPolicy(t, ctx, tx, "t-middle", catalog.AgeGroupMiddle, 800, true)
	testutil.SeedPolicy(t, ctx, tx, "t-hidden", catalog.AgeGroupYoung, 100, false)

	active, err := repo.ListActive(dbc)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	seen := map[string]bool{}
	for _, p := range active {
		if !p.IsActive {
			t.Fatalf("ListActive: inactive policy %s returned", p.ID)
		}
		seen[p.ID] = true
	}
	if !seen["t-young-a"] || !seen["t-young-b"] || !seen["t-middle"] || seen["t-hidden"] {
		t.Fatalf("ListActive: unexpected ids: %v", seen)
	}

	young, err := repo.ListActiveByAgeGroup(dbc, catalog.AgeGroupYoung)
	if err != nil {
		t.Fatalf("ListActiveByAgeGroup: %v", err)
	}
	idx := map[string]int{}
	for i, p := range young {
		if p.AgeGroup != catalog.AgeGroupYoung {
			t.Fatalf("ListActiveByAgeGroup: wrong age group %q", p.AgeGroup)
		}
		idx[p.ID] = i + 1
	}
	if idx["t-young-b"] == 0 || idx["t-young-a"] == 0 || idx["t-young-b"] > idx["t-young-a"] || idx["t-hidden"] != 0 {
		t.Fatalf("ListActiveByAgeGroup: expected cheaper first and no inactive rows, got %v", idx)
	}

	got, err := repo.GetByID(dbc, "t-hidden")
	if err != nil || got == nil || got.IsActive {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
	missing, err := repo.GetByID(dbc, "nope")
	if err != nil || missing != nil {
		t.Fatalf("GetByID (missing): got=%+v err=%v", missing, err)
	}
}

func TestPolicyRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewPolicyRepo(db, testutil.Logger(t))

	p := &types.Policy{ID: "t-upsert", Name: "First", MonthlyPremium: 100, CoverageAmount: 1000, AgeGroup: catalog.AgeGroupYoung, Duration: 10, IsActive: true}
	if err := repo.Upsert(dbc, []*types.Policy{p}); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	p2 := &types.Policy{ID: "t-upsert", Name: "Second", MonthlyPremium: 200, CoverageAmount: 2000, AgeGroup: catalog.AgeGroupMature, Duration: 15, IsActive: false}
	if err := repo.Upsert(dbc, []*types.Policy{p2}); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	got, err := repo.GetByID(dbc, "t-upsert")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Second" || got.MonthlyPremium != 200 || got.IsActive {
		t.Fatalf("Upsert: row not replaced: %+v", got)
	}
}

func TestUserPolicyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserPolicyRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "owner", "hindi")
	testutil.SeedPolicy(t, ctx, tx, "t-owned", catalog.AgeGroupMiddle, 450, true)

	link, err := repo.Create(dbc, &types.UserPolicy{UserID: u.ID, PolicyID: "t-owned"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if link.Status != catalog.StatusActive || link.StartDate.IsZero() {
		t.Fatalf("Create: expected defaults, got %+v", link)
	}

	list, err := repo.ListByUser(dbc, u.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByUser: got=%+v err=%v", list, err)
	}

	ok, err := repo.UpdateStatus(dbc, link.ID, catalog.StatusLapsed)
	if err != nil || !ok {
		t.Fatalf("UpdateStatus: ok=%v err=%v", ok, err)
	}
	ok, err = repo.UpdateNominee(dbc, link.ID, datatypes.JSON([]byte(`{"name":"Sita","relation":"spouse"}`)))
	if err != nil || !ok {
		t.Fatalf("UpdateNominee: ok=%v err=%v", ok, err)
	}
	got, err := repo.GetByID(dbc, link.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != catalog.StatusLapsed {
		t.Fatalf("expected lapsed, got %q", got.Status)
	}
	if string(got.NomineeDetails) == "" || string(got.NomineeDetails) == "{}" {
		t.Fatalf("expected nominee details, got %s", got.NomineeDetails)
	}

	ok, err = repo.UpdateStatus(dbc, "missing", catalog.StatusClaimed)
	if err != nil || ok {
		t.Fatalf("UpdateStatus (missing): ok=%v err=%v", ok, err)
	}
}
