package auction

import (
	"errors"
	"testing"

	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
)

func TestValidateBid(t *testing.T) {
	p := player.Player{ID: "p1", Name: "Virat Kohli", Role: player.RoleBatsman, BasePrice: 100, Status: player.StatusAvailable}

	tests := []struct {
		name      string
		amount    int64
		targetErr error
	}{
		{name: "at base price", amount: 100, targetErr: nil},
		{name: "above base price", amount: 150, targetErr: nil},
		{name: "below base price", amount: 50, targetErr: ErrInvalidBid},
		{name: "zero", amount: 0, targetErr: ErrInvalidBid},
		{name: "negative", amount: -10, targetErr: ErrInvalidBid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBid(p, tc.amount)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected bid %d to be valid, got %v", tc.amount, err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected error %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestCanAfford(t *testing.T) {
	funded := team.Team{ID: "t1", Name: "Mumbai Indians", InitialBudget: 1000, CurrentBudget: 500}

	if !CanAfford(funded, 500) {
		t.Fatal("expected team to afford a bid equal to its budget")
	}
	if CanAfford(funded, 501) {
		t.Fatal("expected team to fail a bid above its budget")
	}
	if CanAfford(team.Team{}, 1) {
		t.Fatal("expected missing team to never afford anything")
	}
}

func TestPickRandomEligible(t *testing.T) {
	players := []player.Player{
		{ID: "p1", Name: "A", Status: player.StatusSold, TeamID: "t1", SoldPrice: 100},
		{ID: "p2", Name: "B", Status: player.StatusAvailable},
		{ID: "p3", Name: "C", Status: player.StatusUnsold},
		{ID: "p4", Name: "D", Status: player.StatusSold, TeamID: "t1", SoldPrice: 200},
	}

	// Deterministic picks across the whole eligible range.
	for i := 0; i < 2; i++ {
		picked, ok := PickRandomEligible(players, func(n int) int {
			if n != 2 {
				t.Fatalf("expected 2 eligible candidates, got %d", n)
			}
			return i
		})
		if !ok {
			t.Fatal("expected a pick from a non-empty eligible set")
		}
		if picked.Status == player.StatusSold {
			t.Fatalf("picked a sold player: %s", picked.ID)
		}
	}

	onlySold := []player.Player{{ID: "p1", Status: player.StatusSold, TeamID: "t1", SoldPrice: 100}}
	if _, ok := PickRandomEligible(onlySold, func(int) int { return 0 }); ok {
		t.Fatal("expected no pick when every player is sold")
	}
	if _, ok := PickRandomEligible(nil, func(int) int { return 0 }); ok {
		t.Fatal("expected no pick from an empty pool")
	}
}

func TestSearchPlayers(t *testing.T) {
	players := []player.Player{
		{ID: "p1", Name: "Virat Kohli"},
		{ID: "p2", Name: "Rohit Sharma"},
		{ID: "p3", Name: "Mohammed Shami"},
	}

	if got := SearchPlayers(players, "sha"); len(got) != 2 {
		t.Fatalf("expected 2 matches for 'sha', got %d", len(got))
	}
	if got := SearchPlayers(players, "KOHLI"); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected case-insensitive match for 'KOHLI', got %v", got)
	}
	if got := SearchPlayers(players, "zz"); len(got) != 0 {
		t.Fatalf("expected no matches for 'zz', got %d", len(got))
	}

	// Empty and whitespace-only terms return the full list.
	if got := SearchPlayers(players, ""); len(got) != len(players) {
		t.Fatalf("expected full list for empty term, got %d", len(got))
	}
	if got := SearchPlayers(players, "   "); len(got) != len(players) {
		t.Fatalf("expected full list for whitespace term, got %d", len(got))
	}
}

func TestSummarizeTeam(t *testing.T) {
	franchise := team.Team{ID: "t1", Name: "Chennai Super Kings", InitialBudget: 1000, CurrentBudget: 700}
	players := []player.Player{
		{ID: "p1", Status: player.StatusSold, TeamID: "t1", SoldPrice: 200},
		{ID: "p2", Status: player.StatusSold, TeamID: "t1", SoldPrice: 100},
		{ID: "p3", Status: player.StatusSold, TeamID: "t2", SoldPrice: 400},
		{ID: "p4", Status: player.StatusAvailable},
	}

	summary := SummarizeTeam(franchise, players)
	if summary.PlayersCount != 2 {
		t.Fatalf("expected 2 owned players, got %d", summary.PlayersCount)
	}
	if summary.TotalSpent != 300 {
		t.Fatalf("expected 300 spent, got %d", summary.TotalSpent)
	}
	if summary.RemainingBudget != 700 {
		t.Fatalf("expected 700 remaining, got %d", summary.RemainingBudget)
	}
	if summary.AveragePrice != 150 {
		t.Fatalf("expected average 150, got %d", summary.AveragePrice)
	}

	empty := SummarizeTeam(team.Team{ID: "t9", CurrentBudget: 1000}, players)
	if empty.PlayersCount != 0 || empty.AveragePrice != 0 {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}

func TestSummarize(t *testing.T) {
	state := State{
		Players: []player.Player{
			{ID: "p1", Name: "Virat Kohli", Role: player.RoleBatsman, Status: player.StatusSold, TeamID: "t1", SoldPrice: 500},
			{ID: "p2", Name: "Jasprit Bumrah", Role: player.RoleBowler, Status: player.StatusSold, TeamID: "t2", SoldPrice: 900},
			{ID: "p3", Name: "KL Rahul", Role: player.RoleBatsman, Status: player.StatusUnsold},
		},
		Teams: []team.Team{
			{ID: "t1", Name: "Royal Challengers"},
			{ID: "t2", Name: "Mumbai Indians"},
		},
	}

	stats := Summarize(state)
	if stats.TotalSold != 2 {
		t.Fatalf("expected 2 sold, got %d", stats.TotalSold)
	}
	if stats.TotalSpent != 1400 {
		t.Fatalf("expected 1400 spent, got %d", stats.TotalSpent)
	}
	if stats.MostExpensive == nil || stats.MostExpensive.PlayerName != "Jasprit Bumrah" {
		t.Fatalf("expected Bumrah as top sale, got %+v", stats.MostExpensive)
	}
	if stats.MostExpensive.TeamName != "Mumbai Indians" {
		t.Fatalf("expected buyer Mumbai Indians, got %s", stats.MostExpensive.TeamName)
	}

	if got := Summarize(State{}); got.MostExpensive != nil || got.TotalSold != 0 {
		t.Fatalf("expected empty stats, got %+v", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{100000, "1,00,000"},
		{1500000, "15,00,000"},
		{10000000, "1,00,00,000"},
		{-1500000, "-15,00,000"},
	}

	for _, tc := range tests {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Fatalf("FormatAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
