package auction

import (
	"fmt"
	"strings"

	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
)

// ValidateBid checks a bid amount against a player's base price.
func ValidateBid(p player.Player, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidBid)
	}
	if amount < p.BasePrice {
		return fmt.Errorf("%w: amount %d is below base price %d", ErrInvalidBid, amount, p.BasePrice)
	}

	return nil
}

// CanAfford reports whether the team's remaining budget covers the amount.
func CanAfford(t team.Team, amount int64) bool {
	return t.ID != "" && t.CurrentBudget >= amount
}

// PickRandomEligible selects one player with status available or unsold,
// each with equal probability. It returns false when no player is eligible
// and never returns a sold player.
func PickRandomEligible(players []player.Player, intn func(n int) int) (player.Player, bool) {
	eligible := make([]player.Player, 0, len(players))
	for _, p := range players {
		if p.Eligible() {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return player.Player{}, false
	}

	return eligible[intn(len(eligible))], true
}

// SearchPlayers filters by case-insensitive substring match on the name.
// An empty or whitespace-only term returns the full list.
func SearchPlayers(players []player.Player, term string) []player.Player {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]player.Player(nil), players...)
	}

	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}

	return out
}

// SummarizeTeam derives the spending picture for one team from the pool.
func SummarizeTeam(t team.Team, players []player.Player) TeamSummary {
	var count int
	var spent int64
	for _, p := range players {
		if p.TeamID == t.ID && p.Status == player.StatusSold {
			count++
			spent += p.SoldPrice
		}
	}

	summary := TeamSummary{
		PlayersCount:    count,
		TotalSpent:      spent,
		RemainingBudget: t.CurrentBudget,
	}
	if count > 0 {
		summary.AveragePrice = spent / int64(count)
	}

	return summary
}

// Summarize computes the headline auction stats from a snapshot.
func Summarize(s State) Stats {
	teamNameByID := make(map[string]string, len(s.Teams))
	for _, t := range s.Teams {
		teamNameByID[t.ID] = t.Name
	}

	var stats Stats
	for _, p := range s.Players {
		if p.Status != player.StatusSold {
			continue
		}
		stats.TotalSold++
		stats.TotalSpent += p.SoldPrice
		if stats.MostExpensive == nil || p.SoldPrice > stats.MostExpensive.SoldPrice {
			stats.MostExpensive = &TopSale{
				PlayerName: p.Name,
				Role:       p.Role,
				TeamName:   teamNameByID[p.TeamID],
				SoldPrice:  p.SoldPrice,
			}
		}
	}

	return stats
}

// FormatAmount renders an amount with Indian digit grouping, the way the
// board displays prices: 10000000 -> "1,00,00,000".
func FormatAmount(v int64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	digits := fmt.Sprintf("%d", v)
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]

		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(groups, ",") + "," + tail
	}

	if negative {
		return "-" + digits
	}
	return digits
}
