package auction

import (
	"time"

	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
)

// UnsoldTeamName is the sentinel recorded in history when a lot closes
// without a buyer.
const UnsoldTeamName = "Unsold"

// HistoryEntry is an immutable record of one sale or unsold outcome.
type HistoryEntry struct {
	ID         string
	PlayerID   string
	PlayerName string
	TeamID     string
	TeamName   string
	Amount     int64
	RecordedAt time.Time
}

// Bid is the view-local running maximum for the lot currently on the
// board. It is never persisted; a sale records its own final amount.
type Bid struct {
	TeamID string
	Amount int64
}

// State is one immutable snapshot of the whole auction. The reducer is
// the only writer: applying an action yields a fresh snapshot and leaves
// the input untouched, so readers never need a lock.
type State struct {
	Players         []player.Player
	Teams           []team.Team
	CurrentPlayerID string
	CurrentBid      Bid
	History         []HistoryEntry
}

// PlayerByID returns the player with the given id from the snapshot.
func (s State) PlayerByID(playerID string) (player.Player, bool) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return player.Player{}, false
}

// TeamByID returns the team with the given id from the snapshot.
func (s State) TeamByID(teamID string) (team.Team, bool) {
	for _, t := range s.Teams {
		if t.ID == teamID {
			return t, true
		}
	}
	return team.Team{}, false
}

func (s State) clone() State {
	out := s
	out.Players = append([]player.Player(nil), s.Players...)
	out.Teams = append([]team.Team(nil), s.Teams...)
	out.History = append([]HistoryEntry(nil), s.History...)
	return out
}

// Stats aggregates the headline numbers for the stats endpoint.
type Stats struct {
	TotalSold     int
	TotalSpent    int64
	MostExpensive *TopSale
}

// TopSale identifies the most expensive purchase so far.
type TopSale struct {
	PlayerName string
	Role       player.Role
	TeamName   string
	SoldPrice  int64
}

// TeamSummary is the derived spending picture for one franchise.
type TeamSummary struct {
	PlayersCount    int
	TotalSpent      int64
	RemainingBudget int64
	AveragePrice    int64
}
