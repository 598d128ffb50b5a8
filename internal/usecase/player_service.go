package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/platform/id"
)

// PlayerInput carries the admin-editable player fields.
type PlayerInput struct {
	Name      string
	Role      string
	BasePrice int64
	ImageURL  string
}

// PlayerService serves roster reads and routes admin writes through the
// auction state so the board and the store never diverge.
type PlayerService struct {
	repo    player.Repository
	auction *AuctionService
	ids     id.Generator
}

func NewPlayerService(repo player.Repository, auctionSvc *AuctionService, gen id.Generator) *PlayerService {
	return &PlayerService{
		repo:    repo,
		auction: auctionSvc,
		ids:     gen,
	}
}

// List returns players, optionally filtered by status and a
// case-insensitive name search. An empty query matches everyone.
func (s *PlayerService) List(ctx context.Context, query, status string) ([]player.Player, error) {
	status = strings.TrimSpace(status)
	if status != "" {
		if _, ok := player.AllStatuses[player.Status(status)]; !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	if status != "" {
		filtered := items[:0]
		for _, p := range items {
			if p.Status == player.Status(status) {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}

	return auction.SearchPlayers(items, query), nil
}

// ListEligible returns players still biddable (available or unsold).
func (s *PlayerService) ListEligible(ctx context.Context) ([]player.Player, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	eligible := items[:0]
	for _, p := range items {
		if p.Eligible() {
			eligible = append(eligible, p)
		}
	}
	return eligible, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (player.Player, error) {
	if err := validatePlayerInput(input); err != nil {
		return player.Player{}, err
	}

	playerID, err := s.ids.NewID("player")
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := player.Player{
		ID:        playerID,
		Name:      strings.TrimSpace(input.Name),
		Role:      player.Role(strings.TrimSpace(input.Role)),
		BasePrice: input.BasePrice,
		Status:    player.StatusAvailable,
		ImageURL:  strings.TrimSpace(input.ImageURL),
	}
	if err := s.auction.AddPlayer(ctx, item); err != nil {
		return player.Player{}, err
	}
	return item, nil
}

// Update edits the admin fields; auction outcome fields (status, owner,
// sold price) are managed by the board and never overwritten here.
func (s *PlayerService) Update(ctx context.Context, playerID string, input PlayerInput) (player.Player, error) {
	if err := validatePlayerInput(input); err != nil {
		return player.Player{}, err
	}

	item, err := s.Get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Role = player.Role(strings.TrimSpace(input.Role))
	item.BasePrice = input.BasePrice
	item.ImageURL = strings.TrimSpace(input.ImageURL)

	if err := s.auction.UpdatePlayer(ctx, item); err != nil {
		return player.Player{}, err
	}
	return item, nil
}

// SetImageURL stores a fetched portrait without touching other fields.
func (s *PlayerService) SetImageURL(ctx context.Context, playerID, imageURL string) error {
	item, err := s.Get(ctx, playerID)
	if err != nil {
		return err
	}
	item.ImageURL = strings.TrimSpace(imageURL)
	return s.auction.UpdatePlayer(ctx, item)
}

func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	return s.auction.RemovePlayer(ctx, playerID)
}

func validatePlayerInput(input PlayerInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	role := player.Role(strings.TrimSpace(input.Role))
	if _, ok := player.AllRoles[role]; !ok {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}
	if input.BasePrice <= 0 {
		return fmt.Errorf("%w: base price must be positive", ErrInvalidInput)
	}
	return nil
}
