package auction

import (
	"fmt"
	"time"

	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
)

// Action is one discrete command dispatched against the auction state.
type Action interface {
	isAction()
}

// SelectPlayer puts a player on the board. Selecting a sold player is a
// silent no-op; candidates are expected to be filtered upstream.
type SelectPlayer struct {
	PlayerID string
}

// PlaceBid advances the view-local running bid for the current lot.
type PlaceBid struct {
	TeamID string
	Amount int64
}

// SellPlayer closes the lot as sold: player transfers, budget debits and
// a history entry appends together or not at all.
type SellPlayer struct {
	PlayerID string
	TeamID   string
	Amount   int64
}

// MarkUnsold closes the lot without a buyer.
type MarkUnsold struct {
	PlayerID string
}

// ResetAuction returns every player to available, restores every budget
// and clears the history. Irreversible.
type ResetAuction struct{}

// Admin actions mirror the management panel.
type (
	AddPlayer    struct{ Player player.Player }
	UpdatePlayer struct{ Player player.Player }
	RemovePlayer struct{ PlayerID string }
	AddTeam      struct{ Team team.Team }
	UpdateTeam   struct{ Team team.Team }
	RemoveTeam   struct{ TeamID string }
)

func (SelectPlayer) isAction() {}
func (PlaceBid) isAction()     {}
func (SellPlayer) isAction()   {}
func (MarkUnsold) isAction()   {}
func (ResetAuction) isAction() {}
func (AddPlayer) isAction()    {}
func (UpdatePlayer) isAction() {}
func (RemovePlayer) isAction() {}
func (AddTeam) isAction()      {}
func (UpdateTeam) isAction()   {}
func (RemoveTeam) isAction()   {}

// Reducer applies actions to state snapshots. NewEntryID and Now are
// injected so transitions stay deterministic under test.
type Reducer struct {
	NewEntryID func() (string, error)
	Now        func() time.Time
}

// Apply computes the next snapshot for one action. On any error the input
// snapshot is returned unchanged; no partial mutation is ever observable.
func (r Reducer) Apply(s State, action Action) (State, error) {
	switch a := action.(type) {
	case SelectPlayer:
		return r.applySelect(s, a)
	case PlaceBid:
		return r.applyBid(s, a)
	case SellPlayer:
		return r.applySell(s, a)
	case MarkUnsold:
		return r.applyUnsold(s, a)
	case ResetAuction:
		return r.applyReset(s)
	case AddPlayer:
		return r.applyAddPlayer(s, a)
	case UpdatePlayer:
		return r.applyUpdatePlayer(s, a)
	case RemovePlayer:
		return r.applyRemovePlayer(s, a)
	case AddTeam:
		return r.applyAddTeam(s, a)
	case UpdateTeam:
		return r.applyUpdateTeam(s, a)
	case RemoveTeam:
		return r.applyRemoveTeam(s, a)
	default:
		return s, fmt.Errorf("unsupported action type %T", action)
	}
}

func (r Reducer) applySelect(s State, a SelectPlayer) (State, error) {
	if a.PlayerID == "" {
		return s, fmt.Errorf("%w: select requires a player id", ErrNoPlayerSelected)
	}
	p, ok := s.PlayerByID(a.PlayerID)
	if !ok {
		return s, fmt.Errorf("%w: player=%s", ErrNotFound, a.PlayerID)
	}
	if p.Status == player.StatusSold {
		return s, nil
	}

	next := s.clone()
	next.CurrentPlayerID = p.ID
	next.CurrentBid = Bid{}
	return next, nil
}

func (r Reducer) applyBid(s State, a PlaceBid) (State, error) {
	if s.CurrentPlayerID == "" {
		return s, fmt.Errorf("%w: no lot on the board", ErrNoPlayerSelected)
	}
	if a.TeamID == "" {
		return s, fmt.Errorf("%w: bid requires a team id", ErrNoTeamSelected)
	}
	p, ok := s.PlayerByID(s.CurrentPlayerID)
	if !ok {
		return s, fmt.Errorf("%w: player=%s", ErrNotFound, s.CurrentPlayerID)
	}
	t, ok := s.TeamByID(a.TeamID)
	if !ok {
		return s, fmt.Errorf("%w: team=%s", ErrNotFound, a.TeamID)
	}
	if err := ValidateBid(p, a.Amount); err != nil {
		return s, err
	}
	if a.Amount <= s.CurrentBid.Amount {
		return s, fmt.Errorf("%w: amount %d must be higher than current bid %d", ErrInvalidBid, a.Amount, s.CurrentBid.Amount)
	}
	if !CanAfford(t, a.Amount) {
		return s, fmt.Errorf("%w: team=%s budget=%d bid=%d", ErrInsufficientBudget, t.ID, t.CurrentBudget, a.Amount)
	}

	next := s.clone()
	next.CurrentBid = Bid{TeamID: t.ID, Amount: a.Amount}
	return next, nil
}

func (r Reducer) applySell(s State, a SellPlayer) (State, error) {
	if a.PlayerID == "" {
		return s, fmt.Errorf("%w: sale requires a player id", ErrNoPlayerSelected)
	}
	if a.TeamID == "" {
		return s, fmt.Errorf("%w: sale requires a team id", ErrNoTeamSelected)
	}
	p, ok := s.PlayerByID(a.PlayerID)
	if !ok {
		return s, fmt.Errorf("%w: player=%s", ErrNotFound, a.PlayerID)
	}
	t, ok := s.TeamByID(a.TeamID)
	if !ok {
		return s, fmt.Errorf("%w: team=%s", ErrNotFound, a.TeamID)
	}
	if p.Status == player.StatusSold {
		return s, fmt.Errorf("%w: player=%s", ErrAlreadySold, p.ID)
	}
	if err := ValidateBid(p, a.Amount); err != nil {
		return s, err
	}
	if !CanAfford(t, a.Amount) {
		return s, fmt.Errorf("%w: team=%s budget=%d bid=%d", ErrInsufficientBudget, t.ID, t.CurrentBudget, a.Amount)
	}

	entry, err := r.newEntry(p, t.ID, t.Name, a.Amount)
	if err != nil {
		return s, err
	}

	next := s.clone()
	for i := range next.Players {
		if next.Players[i].ID == p.ID {
			next.Players[i].Status = player.StatusSold
			next.Players[i].TeamID = t.ID
			next.Players[i].SoldPrice = a.Amount
		}
	}
	for i := range next.Teams {
		if next.Teams[i].ID == t.ID {
			next.Teams[i].CurrentBudget -= a.Amount
		}
	}
	next.History = append([]HistoryEntry{entry}, next.History...)
	next.CurrentPlayerID = ""
	next.CurrentBid = Bid{}
	return next, nil
}

func (r Reducer) applyUnsold(s State, a MarkUnsold) (State, error) {
	if a.PlayerID == "" {
		return s, fmt.Errorf("%w: unsold requires a player id", ErrNoPlayerSelected)
	}
	p, ok := s.PlayerByID(a.PlayerID)
	if !ok {
		return s, fmt.Errorf("%w: player=%s", ErrNotFound, a.PlayerID)
	}
	if p.Status == player.StatusSold {
		return s, fmt.Errorf("%w: player=%s", ErrAlreadySold, p.ID)
	}

	entry, err := r.newEntry(p, "", UnsoldTeamName, 0)
	if err != nil {
		return s, err
	}

	next := s.clone()
	for i := range next.Players {
		if next.Players[i].ID == p.ID {
			next.Players[i].Status = player.StatusUnsold
		}
	}
	next.History = append([]HistoryEntry{entry}, next.History...)
	next.CurrentPlayerID = ""
	next.CurrentBid = Bid{}
	return next, nil
}

func (r Reducer) applyReset(s State) (State, error) {
	next := s.clone()
	for i := range next.Players {
		next.Players[i].Status = player.StatusAvailable
		next.Players[i].TeamID = ""
		next.Players[i].SoldPrice = 0
	}
	for i := range next.Teams {
		next.Teams[i].CurrentBudget = next.Teams[i].InitialBudget
	}
	next.History = nil
	next.CurrentPlayerID = ""
	next.CurrentBid = Bid{}
	return next, nil
}

func (r Reducer) applyAddPlayer(s State, a AddPlayer) (State, error) {
	if err := a.Player.Validate(); err != nil {
		return s, fmt.Errorf("validate player: %w", err)
	}
	if _, exists := s.PlayerByID(a.Player.ID); exists {
		return s, fmt.Errorf("player id %s already exists", a.Player.ID)
	}

	next := s.clone()
	next.Players = append(next.Players, a.Player)
	return next, nil
}

func (r Reducer) applyUpdatePlayer(s State, a UpdatePlayer) (State, error) {
	if err := a.Player.Validate(); err != nil {
		return s, fmt.Errorf("validate player: %w", err)
	}
	if _, exists := s.PlayerByID(a.Player.ID); !exists {
		return s, fmt.Errorf("%w: player=%s", ErrNotFound, a.Player.ID)
	}

	next := s.clone()
	for i := range next.Players {
		if next.Players[i].ID == a.Player.ID {
			next.Players[i] = a.Player
		}
	}
	return next, nil
}

func (r Reducer) applyRemovePlayer(s State, a RemovePlayer) (State, error) {
	if _, exists := s.PlayerByID(a.PlayerID); !exists {
		return s, fmt.Errorf("%w: player=%s", ErrNotFound, a.PlayerID)
	}

	next := s.clone()
	players := next.Players[:0]
	for _, p := range next.Players {
		if p.ID != a.PlayerID {
			players = append(players, p)
		}
	}
	next.Players = players
	if next.CurrentPlayerID == a.PlayerID {
		next.CurrentPlayerID = ""
		next.CurrentBid = Bid{}
	}
	return next, nil
}

func (r Reducer) applyAddTeam(s State, a AddTeam) (State, error) {
	if err := a.Team.Validate(); err != nil {
		return s, fmt.Errorf("validate team: %w", err)
	}
	if _, exists := s.TeamByID(a.Team.ID); exists {
		return s, fmt.Errorf("team id %s already exists", a.Team.ID)
	}

	next := s.clone()
	next.Teams = append(next.Teams, a.Team)
	return next, nil
}

func (r Reducer) applyUpdateTeam(s State, a UpdateTeam) (State, error) {
	if err := a.Team.Validate(); err != nil {
		return s, fmt.Errorf("validate team: %w", err)
	}
	if _, exists := s.TeamByID(a.Team.ID); !exists {
		return s, fmt.Errorf("%w: team=%s", ErrNotFound, a.Team.ID)
	}

	next := s.clone()
	for i := range next.Teams {
		if next.Teams[i].ID == a.Team.ID {
			next.Teams[i] = a.Team
		}
	}
	return next, nil
}

// applyRemoveTeam drops the team and releases its players back to the
// available pool, matching the admin panel behavior.
func (r Reducer) applyRemoveTeam(s State, a RemoveTeam) (State, error) {
	if _, exists := s.TeamByID(a.TeamID); !exists {
		return s, fmt.Errorf("%w: team=%s", ErrNotFound, a.TeamID)
	}

	next := s.clone()
	teams := next.Teams[:0]
	for _, t := range next.Teams {
		if t.ID != a.TeamID {
			teams = append(teams, t)
		}
	}
	next.Teams = teams
	for i := range next.Players {
		if next.Players[i].TeamID == a.TeamID {
			next.Players[i].Status = player.StatusAvailable
			next.Players[i].TeamID = ""
			next.Players[i].SoldPrice = 0
		}
	}
	return next, nil
}

func (r Reducer) newEntry(p player.Player, teamID, teamName string, amount int64) (HistoryEntry, error) {
	if r.NewEntryID == nil || r.Now == nil {
		return HistoryEntry{}, fmt.Errorf("reducer requires NewEntryID and Now")
	}

	id, err := r.NewEntryID()
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("generate history entry id: %w", err)
	}

	return HistoryEntry{
		ID:         id,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		TeamID:     teamID,
		TeamName:   teamName,
		Amount:     amount,
		RecordedAt: r.Now().UTC(),
	}, nil
}
