// Package cache wraps the persistent repositories with a read-through
// TTL cache. Mutations invalidate the touched namespace so the board,
// the admin panel and the exports never serve a stale roster.
package cache

import (
	"context"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
	basecache "github.com/stumpline/cricket-auction/internal/platform/cache"
)

const (
	playerPrefix  = "players:"
	teamPrefix    = "teams:"
	historyPrefix = "history:"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, playerPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := playerPrefix + "id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	if err := r.next.Update(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	if err := r.next.Delete(ctx, playerID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := teamPrefix + "id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	if err := r.next.Update(ctx, t); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if err := r.next.Delete(ctx, teamID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

// Ledger invalidates every namespace an auction outcome can touch
// before delegating, since one sale moves a player, a budget and the
// history at once.
type Ledger struct {
	next  auction.Ledger
	cache *basecache.Store
}

func NewLedger(next auction.Ledger, cache *basecache.Store) *Ledger {
	return &Ledger{next: next, cache: cache}
}

func (l *Ledger) RecordSale(ctx context.Context, sold player.Player, entry auction.HistoryEntry) error {
	if err := l.next.RecordSale(ctx, sold, entry); err != nil {
		return err
	}
	l.invalidate(ctx)
	return nil
}

func (l *Ledger) RecordUnsold(ctx context.Context, unsold player.Player, entry auction.HistoryEntry) error {
	if err := l.next.RecordUnsold(ctx, unsold, entry); err != nil {
		return err
	}
	l.invalidate(ctx)
	return nil
}

func (l *Ledger) Reset(ctx context.Context) error {
	if err := l.next.Reset(ctx); err != nil {
		return err
	}
	l.invalidate(ctx)
	return nil
}

func (l *Ledger) ListHistory(ctx context.Context) ([]auction.HistoryEntry, error) {
	v, err := l.cache.GetOrLoad(ctx, historyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := l.next.ListHistory(ctx)
		if err != nil {
			return nil, err
		}
		return append([]auction.HistoryEntry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]auction.HistoryEntry)
	return append([]auction.HistoryEntry(nil), items...), nil
}

func (l *Ledger) invalidate(ctx context.Context) {
	l.cache.DeletePrefix(ctx, playerPrefix)
	l.cache.DeletePrefix(ctx, teamPrefix)
	l.cache.DeletePrefix(ctx, historyPrefix)
}
