package usecase

import (
	"errors"
	"testing"

	"github.com/stumpline/cricket-auction/internal/domain/player"
)

func newTeamService(t *testing.T) (*TeamService, auctionFixture) {
	t.Helper()
	fx := newAuctionFixture(t)
	return NewTeamService(fx.teams, fx.players, fx.svc, &seqIDGenerator{}), fx
}

func TestTeamService_CreateAndList(t *testing.T) {
	svc, _ := newTeamService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, TeamInput{Name: "Gujarat Titans", Budget: 8_000_000})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.InitialBudget != 8_000_000 || created.CurrentBudget != 8_000_000 {
		t.Fatalf("unexpected budgets: %+v", created)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 teams, got %d", len(all))
	}

	if _, err := svc.Create(ctx, TeamInput{Name: "", Budget: 100}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := svc.Create(ctx, TeamInput{Name: "X", Budget: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero budget, got %v", err)
	}
}

func TestTeamService_GetIncludesRoster(t *testing.T) {
	svc, fx := newTeamService(t)
	ctx := t.Context()

	if _, err := fx.svc.Sell(ctx, "player_kohli", "team_rcb", 3_000_000); err != nil {
		t.Fatalf("sell player: %v", err)
	}

	details, err := svc.Get(ctx, "team_rcb")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(details.Players) != 1 || details.Players[0].ID != "player_kohli" {
		t.Fatalf("unexpected roster: %+v", details.Players)
	}
	if details.Summary.TotalSpent != 3_000_000 || details.Summary.RemainingBudget != 7_000_000 {
		t.Fatalf("unexpected summary: %+v", details.Summary)
	}

	if _, err := svc.Get(ctx, "team_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_BudgetLockedAfterPurchases(t *testing.T) {
	svc, fx := newTeamService(t)
	ctx := t.Context()

	// Before any purchase the budget may be rebased.
	rebased, err := svc.Update(ctx, "team_mi", TeamInput{Name: "Mumbai Indians", Budget: 12_000_000})
	if err != nil {
		t.Fatalf("rebase budget: %v", err)
	}
	if rebased.InitialBudget != 12_000_000 || rebased.CurrentBudget != 12_000_000 {
		t.Fatalf("unexpected rebased budgets: %+v", rebased)
	}

	if _, err := fx.svc.Sell(ctx, "player_kohli", "team_mi", 2_000_000); err != nil {
		t.Fatalf("sell player: %v", err)
	}

	// Renaming still works, budget changes do not.
	renamed, err := svc.Update(ctx, "team_mi", TeamInput{Name: "MI Originals", Budget: 12_000_000})
	if err != nil {
		t.Fatalf("rename team: %v", err)
	}
	if renamed.Name != "MI Originals" || renamed.CurrentBudget != 10_000_000 {
		t.Fatalf("unexpected team after rename: %+v", renamed)
	}

	if _, err := svc.Update(ctx, "team_mi", TeamInput{Name: "MI", Budget: 15_000_000}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected budget lock, got %v", err)
	}
}

func TestTeamService_DeleteReleasesPlayers(t *testing.T) {
	svc, fx := newTeamService(t)
	ctx := t.Context()

	if _, err := fx.svc.Sell(ctx, "player_dhoni", "team_csk", 2_000_000); err != nil {
		t.Fatalf("sell player: %v", err)
	}
	if err := svc.Delete(ctx, "team_csk"); err != nil {
		t.Fatalf("delete team: %v", err)
	}

	if _, err := svc.Get(ctx, "team_csk"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	released, exists, err := fx.players.GetByID(ctx, "player_dhoni")
	if err != nil || !exists {
		t.Fatalf("read released player: exists=%v err=%v", exists, err)
	}
	if released.Status != player.StatusAvailable || released.TeamID != "" || released.SoldPrice != 0 {
		t.Fatalf("player not released on team delete: %+v", released)
	}
}
