package cache

import (
	"testing"
	"time"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/infrastructure/repository/memory"
	basecache "github.com/stumpline/cricket-auction/internal/platform/cache"
)

func historyEntryFor(p player.Player) auction.HistoryEntry {
	return auction.HistoryEntry{
		ID:         "bid_test",
		PlayerID:   p.ID,
		PlayerName: p.Name,
		TeamID:     p.TeamID,
		TeamName:   "Mumbai Indians",
		Amount:     p.SoldPrice,
		RecordedAt: time.Now(),
	}
}

func TestPlayerRepositoryInvalidatesOnMutation(t *testing.T) {
	store := basecache.NewStore(time.Minute)
	next := memory.NewPlayerRepository(memory.SeedPlayers())
	repo := NewPlayerRepository(next, store)
	ctx := t.Context()

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(first) != 8 {
		t.Fatalf("expected 8 seeded players, got %d", len(first))
	}

	created := player.Player{
		ID:        "player_gill",
		Name:      "Shubman Gill",
		Role:      player.RoleBatsman,
		BasePrice: 1_200_000,
		Status:    player.StatusAvailable,
	}
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("create player: %v", err)
	}

	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list players after create: %v", err)
	}
	if len(second) != 9 {
		t.Fatalf("stale list served after mutation: got %d players", len(second))
	}

	got, exists, err := repo.GetByID(ctx, "player_gill")
	if err != nil || !exists {
		t.Fatalf("get created player: exists=%v err=%v", exists, err)
	}
	if got.Name != "Shubman Gill" {
		t.Fatalf("unexpected player: %+v", got)
	}
}

func TestLedgerInvalidatesAllNamespaces(t *testing.T) {
	store := basecache.NewStore(time.Minute)
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	teams := memory.NewTeamRepository(memory.SeedTeams())

	playerRepo := NewPlayerRepository(players, store)
	teamRepo := NewTeamRepository(teams, store)
	ledger := NewLedger(memory.NewLedger(players, teams), store)
	ctx := t.Context()

	// Warm the caches.
	if _, err := playerRepo.List(ctx); err != nil {
		t.Fatalf("warm player cache: %v", err)
	}
	if _, err := teamRepo.List(ctx); err != nil {
		t.Fatalf("warm team cache: %v", err)
	}

	sold := memory.SeedPlayers()[0]
	sold.Status = player.StatusSold
	sold.TeamID = "team_mi"
	sold.SoldPrice = 2_000_000
	if err := ledger.RecordSale(ctx, sold, historyEntryFor(sold)); err != nil {
		t.Fatalf("record sale: %v", err)
	}

	fresh, _, err := playerRepo.GetByID(ctx, sold.ID)
	if err != nil {
		t.Fatalf("get player after sale: %v", err)
	}
	if fresh.Status != player.StatusSold {
		t.Fatalf("stale player served after sale: %+v", fresh)
	}

	teamsAfter, err := teamRepo.List(ctx)
	if err != nil {
		t.Fatalf("list teams after sale: %v", err)
	}
	for _, tm := range teamsAfter {
		if tm.ID == "team_mi" && tm.CurrentBudget != 8_000_000 {
			t.Fatalf("stale budget served after sale: %+v", tm)
		}
	}
}
