package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
	"github.com/stumpline/cricket-auction/internal/platform/id"
)

// TeamInput carries the admin-editable team fields.
type TeamInput struct {
	Name   string
	Budget int64
}

// TeamDetails is a team with its owned players and spending summary.
type TeamDetails struct {
	Team    team.Team
	Players []player.Player
	Summary auction.TeamSummary
}

type TeamService struct {
	teams   team.Repository
	players player.Repository
	auction *AuctionService
	ids     id.Generator
}

func NewTeamService(teams team.Repository, players player.Repository, auctionSvc *AuctionService, gen id.Generator) *TeamService {
	return &TeamService{
		teams:   teams,
		players: players,
		auction: auctionSvc,
		ids:     gen,
	}
}

func (s *TeamService) List(ctx context.Context) ([]TeamDetails, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]TeamDetails, 0, len(teams))
	for _, t := range teams {
		out = append(out, buildTeamDetails(t, players))
	}
	return out, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (TeamDetails, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamDetails{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return TeamDetails{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	players, err := s.players.List(ctx)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("list players: %w", err)
	}
	return buildTeamDetails(item, players), nil
}

func (s *TeamService) Create(ctx context.Context, input TeamInput) (team.Team, error) {
	if err := validateTeamInput(input); err != nil {
		return team.Team{}, err
	}

	teamID, err := s.ids.NewID("team")
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:            teamID,
		Name:          strings.TrimSpace(input.Name),
		InitialBudget: input.Budget,
		CurrentBudget: input.Budget,
	}
	if err := s.auction.AddTeam(ctx, item); err != nil {
		return team.Team{}, err
	}
	return item, nil
}

// Update renames the team and, while it has no purchases yet, allows
// rebasing the budget. Once money is spent the budget is locked so the
// ledger invariant cannot break.
func (s *TeamService) Update(ctx context.Context, teamID string, input TeamInput) (team.Team, error) {
	if err := validateTeamInput(input); err != nil {
		return team.Team{}, err
	}

	details, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	item := details.Team
	item.Name = strings.TrimSpace(input.Name)
	if input.Budget != item.InitialBudget {
		if details.Summary.TotalSpent > 0 {
			return team.Team{}, fmt.Errorf("%w: budget cannot change after purchases", ErrInvalidInput)
		}
		item.InitialBudget = input.Budget
		item.CurrentBudget = input.Budget
	}

	if err := s.auction.UpdateTeam(ctx, item); err != nil {
		return team.Team{}, err
	}
	return item, nil
}

func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	return s.auction.RemoveTeam(ctx, teamID)
}

func buildTeamDetails(t team.Team, players []player.Player) TeamDetails {
	owned := make([]player.Player, 0, 4)
	for _, p := range players {
		if p.Status == player.StatusSold && p.TeamID == t.ID {
			owned = append(owned, p)
		}
	}
	return TeamDetails{
		Team:    t,
		Players: owned,
		Summary: auction.SummarizeTeam(t, players),
	}
}

func validateTeamInput(input TeamInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if input.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrInvalidInput)
	}
	return nil
}
