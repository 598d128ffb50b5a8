package usecase

import (
	"errors"
	"testing"

	"github.com/stumpline/cricket-auction/internal/domain/player"
)

func newPlayerService(t *testing.T) (*PlayerService, auctionFixture) {
	t.Helper()
	fx := newAuctionFixture(t)
	return NewPlayerService(fx.players, fx.svc, &seqIDGenerator{}), fx
}

func TestPlayerService_CreateAndGet(t *testing.T) {
	svc, _ := newPlayerService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, PlayerInput{
		Name:      "Suryakumar Yadav",
		Role:      "Batsman",
		BasePrice: 1_000_000,
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.ID == "" || created.Status != player.StatusAvailable {
		t.Fatalf("unexpected created player: %+v", created)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.Name != "Suryakumar Yadav" {
		t.Fatalf("unexpected player: %+v", got)
	}
}

func TestPlayerService_CreateValidation(t *testing.T) {
	svc, _ := newPlayerService(t)
	ctx := t.Context()

	tests := []struct {
		name  string
		input PlayerInput
	}{
		{name: "missing name", input: PlayerInput{Role: "Bowler", BasePrice: 100}},
		{name: "unknown role", input: PlayerInput{Name: "X", Role: "Coach", BasePrice: 100}},
		{name: "zero base price", input: PlayerInput{Name: "X", Role: "Bowler"}},
		{name: "negative base price", input: PlayerInput{Name: "X", Role: "Bowler", BasePrice: -5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPlayerService_ListFilters(t *testing.T) {
	svc, fx := newPlayerService(t)
	ctx := t.Context()

	if _, err := fx.svc.Sell(ctx, "player_kohli", "team_mi", 2_000_000); err != nil {
		t.Fatalf("sell player: %v", err)
	}

	sold, err := svc.List(ctx, "", "sold")
	if err != nil {
		t.Fatalf("list sold: %v", err)
	}
	if len(sold) != 1 || sold[0].ID != "player_kohli" {
		t.Fatalf("unexpected sold list: %+v", sold)
	}

	matched, err := svc.List(ctx, "sha", "")
	if err != nil {
		t.Fatalf("list by query: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches for 'sha', got %d", len(matched))
	}

	all, err := svc.List(ctx, "  ", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 8 {
		t.Fatalf("expected full roster for blank query, got %d", len(all))
	}

	if _, err := svc.List(ctx, "", "benched"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}

	eligible, err := svc.ListEligible(ctx)
	if err != nil {
		t.Fatalf("list eligible: %v", err)
	}
	if len(eligible) != 7 {
		t.Fatalf("expected 7 eligible players, got %d", len(eligible))
	}
}

func TestPlayerService_UpdatePreservesAuctionOutcome(t *testing.T) {
	svc, fx := newPlayerService(t)
	ctx := t.Context()

	if _, err := fx.svc.Sell(ctx, "player_kohli", "team_mi", 2_500_000); err != nil {
		t.Fatalf("sell player: %v", err)
	}

	updated, err := svc.Update(ctx, "player_kohli", PlayerInput{
		Name:      "V. Kohli",
		Role:      "Batsman",
		BasePrice: 2_000_000,
	})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if updated.Name != "V. Kohli" {
		t.Fatalf("name not updated: %+v", updated)
	}
	if updated.Status != player.StatusSold || updated.TeamID != "team_mi" || updated.SoldPrice != 2_500_000 {
		t.Fatalf("auction outcome clobbered by admin edit: %+v", updated)
	}
}

func TestPlayerService_Delete(t *testing.T) {
	svc, fx := newPlayerService(t)
	ctx := t.Context()

	if err := svc.Delete(ctx, "player_shami"); err != nil {
		t.Fatalf("delete player: %v", err)
	}
	if _, err := svc.Get(ctx, "player_shami"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, ok := fx.svc.Snapshot().PlayerByID("player_shami"); ok {
		t.Fatal("player still on the auction board after delete")
	}
}
