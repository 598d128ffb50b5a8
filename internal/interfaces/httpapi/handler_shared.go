package httpapi

import (
	"context"
	"time"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
	"github.com/stumpline/cricket-auction/internal/usecase"
)

type upsertPlayerRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Role      string `json:"role" validate:"required,max=40"`
	BasePrice int64  `json:"basePrice" validate:"required,gt=0"`
	ImageURL  string `json:"imageUrl" validate:"omitempty,max=2048"`
}

type upsertTeamRequest struct {
	Name   string `json:"name" validate:"required,max=120"`
	Budget int64  `json:"budget" validate:"required,gt=0"`
}

type selectPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type placeBidRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
}

type sellPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	TeamID   string `json:"team_id" validate:"required"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}

type markUnsoldRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type playerDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	BasePrice        int64  `json:"basePrice"`
	BasePriceDisplay string `json:"basePriceDisplay"`
	Status           string `json:"status"`
	TeamID           string `json:"teamId,omitempty"`
	SoldPrice        int64  `json:"soldPrice,omitempty"`
	SoldPriceDisplay string `json:"soldPriceDisplay,omitempty"`
	ImageURL         string `json:"imageUrl,omitempty"`
}

type bidDTO struct {
	TeamID        string `json:"teamId"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amountDisplay"`
}

type lotDTO struct {
	Player *playerDTO `json:"player,omitempty"`
	Bid    *bidDTO    `json:"bid,omitempty"`
}

type teamDTO struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	InitialBudget        int64  `json:"initialBudget"`
	CurrentBudget        int64  `json:"currentBudget"`
	CurrentBudgetDisplay string `json:"currentBudgetDisplay"`
}

type teamSummaryDTO struct {
	PlayersCount      int    `json:"playersCount"`
	TotalSpent        int64  `json:"totalSpent"`
	TotalSpentDisplay string `json:"totalSpentDisplay"`
	RemainingBudget   int64  `json:"remainingBudget"`
	AveragePrice      int64  `json:"averagePrice"`
}

type teamDetailsDTO struct {
	Team    teamDTO        `json:"team"`
	Players []playerDTO    `json:"players"`
	Summary teamSummaryDTO `json:"summary"`
}

type historyEntryDTO struct {
	ID            string `json:"id"`
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	TeamID        string `json:"teamId,omitempty"`
	TeamName      string `json:"teamName"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amountDisplay"`
	RecordedAt    string `json:"recordedAt"`
}

type topSaleDTO struct {
	PlayerName       string `json:"playerName"`
	Role             string `json:"role"`
	TeamName         string `json:"teamName"`
	SoldPrice        int64  `json:"soldPrice"`
	SoldPriceDisplay string `json:"soldPriceDisplay"`
}

type teamStandingDTO struct {
	Team    teamDTO        `json:"team"`
	Summary teamSummaryDTO `json:"summary"`
}

type statsDTO struct {
	TotalSold         int               `json:"totalSold"`
	TotalSpent        int64             `json:"totalSpent"`
	TotalSpentDisplay string            `json:"totalSpentDisplay"`
	MostExpensive     *topSaleDTO       `json:"mostExpensive,omitempty"`
	Teams             []teamStandingDTO `json:"teams"`
}

type importReportDTO struct {
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Failures []string `json:"failures,omitempty"`
}

type portraitDTO struct {
	PlayerID string `json:"playerId"`
	URL      string `json:"url"`
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	dto := playerDTO{
		ID:               v.ID,
		Name:             v.Name,
		Role:             string(v.Role),
		BasePrice:        v.BasePrice,
		BasePriceDisplay: auction.FormatAmount(v.BasePrice),
		Status:           string(v.Status),
		TeamID:           v.TeamID,
		SoldPrice:        v.SoldPrice,
		ImageURL:         v.ImageURL,
	}
	if v.SoldPrice > 0 {
		dto.SoldPriceDisplay = auction.FormatAmount(v.SoldPrice)
	}
	return dto
}

func playersToDTO(ctx context.Context, items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(ctx, p))
	}
	return out
}

func lotToDTO(ctx context.Context, lot usecase.CurrentLot) lotDTO {
	ctx, span := startSpan(ctx, "httpapi.lotToDTO")
	defer span.End()

	var dto lotDTO
	if lot.Player != nil {
		p := playerToDTO(ctx, *lot.Player)
		dto.Player = &p
	}
	if lot.Bid != nil {
		dto.Bid = &bidDTO{
			TeamID:        lot.Bid.TeamID,
			Amount:        lot.Bid.Amount,
			AmountDisplay: auction.FormatAmount(lot.Bid.Amount),
		}
	}
	return dto
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:                   v.ID,
		Name:                 v.Name,
		InitialBudget:        v.InitialBudget,
		CurrentBudget:        v.CurrentBudget,
		CurrentBudgetDisplay: auction.FormatAmount(v.CurrentBudget),
	}
}

func teamSummaryToDTO(ctx context.Context, v auction.TeamSummary) teamSummaryDTO {
	ctx, span := startSpan(ctx, "httpapi.teamSummaryToDTO")
	defer span.End()

	return teamSummaryDTO{
		PlayersCount:      v.PlayersCount,
		TotalSpent:        v.TotalSpent,
		TotalSpentDisplay: auction.FormatAmount(v.TotalSpent),
		RemainingBudget:   v.RemainingBudget,
		AveragePrice:      v.AveragePrice,
	}
}

func teamDetailsToDTO(ctx context.Context, v usecase.TeamDetails) teamDetailsDTO {
	ctx, span := startSpan(ctx, "httpapi.teamDetailsToDTO")
	defer span.End()

	return teamDetailsDTO{
		Team:    teamToDTO(ctx, v.Team),
		Players: playersToDTO(ctx, v.Players),
		Summary: teamSummaryToDTO(ctx, v.Summary),
	}
}

func historyEntryToDTO(ctx context.Context, v auction.HistoryEntry) historyEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.historyEntryToDTO")
	defer span.End()

	return historyEntryDTO{
		ID:            v.ID,
		PlayerID:      v.PlayerID,
		PlayerName:    v.PlayerName,
		TeamID:        v.TeamID,
		TeamName:      v.TeamName,
		Amount:        v.Amount,
		AmountDisplay: auction.FormatAmount(v.Amount),
		RecordedAt:    v.RecordedAt.UTC().Format(time.RFC3339),
	}
}

func statsToDTO(ctx context.Context, v usecase.StatsReport) statsDTO {
	ctx, span := startSpan(ctx, "httpapi.statsToDTO")
	defer span.End()

	dto := statsDTO{
		TotalSold:         v.Stats.TotalSold,
		TotalSpent:        v.Stats.TotalSpent,
		TotalSpentDisplay: auction.FormatAmount(v.Stats.TotalSpent),
		Teams:             make([]teamStandingDTO, 0, len(v.Teams)),
	}
	if v.Stats.MostExpensive != nil {
		dto.MostExpensive = &topSaleDTO{
			PlayerName:       v.Stats.MostExpensive.PlayerName,
			Role:             string(v.Stats.MostExpensive.Role),
			TeamName:         v.Stats.MostExpensive.TeamName,
			SoldPrice:        v.Stats.MostExpensive.SoldPrice,
			SoldPriceDisplay: auction.FormatAmount(v.Stats.MostExpensive.SoldPrice),
		}
	}
	for _, standing := range v.Teams {
		dto.Teams = append(dto.Teams, teamStandingDTO{
			Team:    teamToDTO(ctx, standing.Team),
			Summary: teamSummaryToDTO(ctx, standing.Summary),
		})
	}
	return dto
}
