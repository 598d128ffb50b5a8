package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/stumpline/cricket-auction/internal/domain/player"
)

// PlayerRepository is an in-process store, used for local development
// and tests. Listing preserves insertion order.
type PlayerRepository struct {
	mu    sync.RWMutex
	items []player.Player
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	return &PlayerRepository{items: append([]player.Player(nil), seed...)}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]player.Player(nil), r.items...), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == p.ID {
			return fmt.Errorf("player %s already exists", p.ID)
		}
	}
	r.items = append(r.items, p)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == p.ID {
			r.items[i] = p
			return nil
		}
	}
	return fmt.Errorf("player %s does not exist", p.ID)
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == playerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("player %s does not exist", playerID)
}

// updateAll replaces rows in place under one lock. Used by the ledger
// for multi-row outcomes.
func (r *PlayerRepository) updateAll(mutate func(items []player.Player)) {
	r.mu.Lock()
	mutate(r.items)
	r.mu.Unlock()
}
