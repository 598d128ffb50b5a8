package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/stumpline/cricket-auction/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items []team.Team
}

func NewTeamRepository(seed []team.Team) *TeamRepository {
	return &TeamRepository{items: append([]team.Team(nil), seed...)}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]team.Team(nil), r.items...), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.items {
		if t.ID == teamID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == t.ID {
			return fmt.Errorf("team %s already exists", t.ID)
		}
	}
	r.items = append(r.items, t)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == t.ID {
			r.items[i] = t
			return nil
		}
	}
	return fmt.Errorf("team %s does not exist", t.ID)
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == teamID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("team %s does not exist", teamID)
}

func (r *TeamRepository) updateAll(mutate func(items []team.Team)) {
	r.mu.Lock()
	mutate(r.items)
	r.mu.Unlock()
}
