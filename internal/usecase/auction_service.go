package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
	"github.com/stumpline/cricket-auction/internal/platform/id"
	"github.com/stumpline/cricket-auction/internal/platform/logging"
)

// CurrentLot is the player on the board with the running bid, if any.
type CurrentLot struct {
	Player *player.Player
	Bid    *auction.Bid
}

// TeamStanding pairs a team with its derived spending summary.
type TeamStanding struct {
	Team    team.Team
	Summary auction.TeamSummary
}

// StatsReport is the payload for the stats endpoint.
type StatsReport struct {
	Stats auction.Stats
	Teams []TeamStanding
}

// AuctionService owns the live auction state. All transitions go through
// the reducer under one mutex; outcomes are write-through persisted and
// the in-memory snapshot is kept only when persistence succeeds.
type AuctionService struct {
	mu    sync.Mutex
	state auction.State

	reducer auction.Reducer
	players player.Repository
	teams   team.Repository
	ledger  auction.Ledger
	logger  *logging.Logger
	intn    func(n int) int
}

func NewAuctionService(
	players player.Repository,
	teams team.Repository,
	ledger auction.Ledger,
	gen id.Generator,
	logger *logging.Logger,
) *AuctionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuctionService{
		reducer: auction.Reducer{
			NewEntryID: func() (string, error) { return gen.NewID("bid") },
			Now:        time.Now,
		},
		players: players,
		teams:   teams,
		ledger:  ledger,
		logger:  logger,
		intn:    rand.IntN,
	}
}

// Load hydrates the in-memory state from the repositories. Call once at
// startup before serving traffic.
func (s *AuctionService) Load(ctx context.Context) error {
	players, err := s.players.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	history, err := s.ledger.ListHistory(ctx)
	if err != nil {
		return fmt.Errorf("list auction history: %w", err)
	}

	s.mu.Lock()
	s.state = auction.State{
		Players: players,
		Teams:   teams,
		History: history,
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "auction state loaded",
		"players", len(players),
		"teams", len(teams),
		"history_entries", len(history),
	)
	return nil
}

// Snapshot returns the current state. Snapshots are immutable; callers
// may read them without further locking.
func (s *AuctionService) Snapshot() auction.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AuctionService) Current(context.Context) CurrentLot {
	return lotFromState(s.Snapshot())
}

func lotFromState(state auction.State) CurrentLot {
	if state.CurrentPlayerID == "" {
		return CurrentLot{}
	}
	p, ok := state.PlayerByID(state.CurrentPlayerID)
	if !ok {
		return CurrentLot{}
	}
	lot := CurrentLot{Player: &p}
	if state.CurrentBid.TeamID != "" {
		bid := state.CurrentBid
		lot.Bid = &bid
	}
	return lot
}

// Select puts the given player on the board.
func (s *AuctionService) Select(ctx context.Context, playerID string) (CurrentLot, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return CurrentLot{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.SelectPlayer{PlayerID: playerID})
	if err != nil {
		return CurrentLot{}, err
	}
	s.state = next
	return lotFromState(next), nil
}

// Next selects a random eligible player (available or unsold).
func (s *AuctionService) Next(ctx context.Context) (CurrentLot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	picked, ok := auction.PickRandomEligible(s.state.Players, s.intn)
	if !ok {
		return CurrentLot{}, fmt.Errorf("%w: no eligible players left", ErrNotFound)
	}

	next, err := s.reducer.Apply(s.state, auction.SelectPlayer{PlayerID: picked.ID})
	if err != nil {
		return CurrentLot{}, err
	}
	s.state = next
	return lotFromState(next), nil
}

// PlaceBid advances the running bid for the current lot. Bids are
// view-local; nothing is persisted until the lot closes.
func (s *AuctionService) PlaceBid(ctx context.Context, teamID string, amount int64) (auction.Bid, error) {
	teamID = strings.TrimSpace(teamID)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.PlaceBid{TeamID: teamID, Amount: amount})
	if err != nil {
		return auction.Bid{}, err
	}
	s.state = next
	return next.CurrentBid, nil
}

// Sell closes the lot as sold and persists the outcome. On persistence
// failure the in-memory state stays at the prior snapshot.
func (s *AuctionService) Sell(ctx context.Context, playerID, teamID string, amount int64) (auction.HistoryEntry, error) {
	playerID = strings.TrimSpace(playerID)
	teamID = strings.TrimSpace(teamID)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.SellPlayer{PlayerID: playerID, TeamID: teamID, Amount: amount})
	if err != nil {
		return auction.HistoryEntry{}, err
	}

	sold, _ := next.PlayerByID(playerID)
	entry := next.History[0]
	if err := s.ledger.RecordSale(ctx, sold, entry); err != nil {
		s.logger.ErrorContext(ctx, "record sale failed, state rolled back",
			"player_id", playerID,
			"team_id", teamID,
			"error", err,
		)
		return auction.HistoryEntry{}, fmt.Errorf("record sale: %w", err)
	}

	s.state = next
	s.logger.InfoContext(ctx, "player sold",
		"player_id", playerID,
		"team_id", teamID,
		"amount", amount,
	)
	return entry, nil
}

// MarkUnsold closes the lot without a buyer. The player can return to
// the board and be sold later.
func (s *AuctionService) MarkUnsold(ctx context.Context, playerID string) (auction.HistoryEntry, error) {
	playerID = strings.TrimSpace(playerID)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.MarkUnsold{PlayerID: playerID})
	if err != nil {
		return auction.HistoryEntry{}, err
	}

	unsold, _ := next.PlayerByID(playerID)
	entry := next.History[0]
	if err := s.ledger.RecordUnsold(ctx, unsold, entry); err != nil {
		s.logger.ErrorContext(ctx, "record unsold failed, state rolled back",
			"player_id", playerID,
			"error", err,
		)
		return auction.HistoryEntry{}, fmt.Errorf("record unsold: %w", err)
	}

	s.state = next
	return entry, nil
}

// Reset returns every player to available, restores budgets and clears
// the history. Irreversible.
func (s *AuctionService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.ResetAuction{})
	if err != nil {
		return err
	}

	if err := s.ledger.Reset(ctx); err != nil {
		s.logger.ErrorContext(ctx, "reset failed, state rolled back", "error", err)
		return fmt.Errorf("reset auction: %w", err)
	}

	s.state = next
	s.logger.InfoContext(ctx, "auction reset")
	return nil
}

// History returns outcomes newest first.
func (s *AuctionService) History(context.Context) []auction.HistoryEntry {
	return s.Snapshot().History
}

// Stats aggregates headline numbers plus one standing per team.
func (s *AuctionService) Stats(context.Context) StatsReport {
	state := s.Snapshot()

	report := StatsReport{
		Stats: auction.Summarize(state),
		Teams: make([]TeamStanding, 0, len(state.Teams)),
	}
	for _, t := range state.Teams {
		report.Teams = append(report.Teams, TeamStanding{
			Team:    t,
			Summary: auction.SummarizeTeam(t, state.Players),
		})
	}
	return report
}

// Admin mutations below keep state and repositories in step: the reducer
// validates and computes the next snapshot, the repository write commits
// it.

func (s *AuctionService) AddPlayer(ctx context.Context, p player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.AddPlayer{Player: p})
	if err != nil {
		return err
	}
	if err := s.players.Create(ctx, p); err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	s.state = next
	return nil
}

func (s *AuctionService) UpdatePlayer(ctx context.Context, p player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.UpdatePlayer{Player: p})
	if err != nil {
		return err
	}
	if err := s.players.Update(ctx, p); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	s.state = next
	return nil
}

func (s *AuctionService) RemovePlayer(ctx context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.RemovePlayer{PlayerID: playerID})
	if err != nil {
		return err
	}
	if err := s.players.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	s.state = next
	return nil
}

func (s *AuctionService) AddTeam(ctx context.Context, t team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.AddTeam{Team: t})
	if err != nil {
		return err
	}
	if err := s.teams.Create(ctx, t); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	s.state = next
	return nil
}

func (s *AuctionService) UpdateTeam(ctx context.Context, t team.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.UpdateTeam{Team: t})
	if err != nil {
		return err
	}
	if err := s.teams.Update(ctx, t); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	s.state = next
	return nil
}

// RemoveTeam deletes the team and releases its players back to the
// available pool, persisting both sides.
func (s *AuctionService) RemoveTeam(ctx context.Context, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Apply(s.state, auction.RemoveTeam{TeamID: teamID})
	if err != nil {
		return err
	}

	if err := s.teams.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	for _, p := range next.Players {
		prior, ok := s.state.PlayerByID(p.ID)
		if !ok || prior.TeamID != teamID {
			continue
		}
		if err := s.players.Update(ctx, p); err != nil {
			return fmt.Errorf("release player %s: %w", p.ID, err)
		}
	}

	s.state = next
	return nil
}
