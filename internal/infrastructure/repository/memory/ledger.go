package memory

import (
	"context"
	"sync"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
)

// Ledger applies auction outcomes to the in-memory repositories and
// keeps its own append-only history, newest first.
type Ledger struct {
	mu      sync.RWMutex
	players *PlayerRepository
	teams   *TeamRepository
	entries []auction.HistoryEntry
}

func NewLedger(players *PlayerRepository, teams *TeamRepository) *Ledger {
	return &Ledger{players: players, teams: teams}
}

func (l *Ledger) RecordSale(_ context.Context, sold player.Player, entry auction.HistoryEntry) error {
	l.players.updateAll(func(items []player.Player) {
		for i := range items {
			if items[i].ID == sold.ID {
				items[i] = sold
			}
		}
	})
	l.teams.updateAll(func(items []team.Team) {
		for i := range items {
			if items[i].ID == entry.TeamID {
				items[i].CurrentBudget -= entry.Amount
			}
		}
	})

	l.mu.Lock()
	l.entries = append([]auction.HistoryEntry{entry}, l.entries...)
	l.mu.Unlock()
	return nil
}

func (l *Ledger) RecordUnsold(_ context.Context, unsold player.Player, entry auction.HistoryEntry) error {
	l.players.updateAll(func(items []player.Player) {
		for i := range items {
			if items[i].ID == unsold.ID {
				items[i] = unsold
			}
		}
	})

	l.mu.Lock()
	l.entries = append([]auction.HistoryEntry{entry}, l.entries...)
	l.mu.Unlock()
	return nil
}

func (l *Ledger) Reset(_ context.Context) error {
	l.players.updateAll(func(items []player.Player) {
		for i := range items {
			items[i].Status = player.StatusAvailable
			items[i].TeamID = ""
			items[i].SoldPrice = 0
		}
	})
	l.teams.updateAll(func(items []team.Team) {
		for i := range items {
			items[i].CurrentBudget = items[i].InitialBudget
		}
	})

	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
	return nil
}

func (l *Ledger) ListHistory(_ context.Context) ([]auction.HistoryEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]auction.HistoryEntry(nil), l.entries...), nil
}
