package usecase

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/xuri/excelize/v2"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/platform/logging"
)

// PortraitLookup resolves player portraits from the image host.
type PortraitLookup interface {
	PortraitURL(ctx context.Context, playerName string) (string, error)
	BatchPortraitURLs(ctx context.Context, playerNames []string) map[string]string
}

const (
	playersSheet = "Players"
	teamsSheet   = "Teams"
	historySheet = "History"

	importWorkers = 4
)

// ImportReport summarizes one roster import.
type ImportReport struct {
	Created  int
	Skipped  int
	Failures []string
}

// RosterSheetService exports the roster as a spreadsheet and imports
// players from one, enriching them with portraits in the background.
type RosterSheetService struct {
	auction   *AuctionService
	players   *PlayerService
	portraits PortraitLookup
	logger    *logging.Logger
}

func NewRosterSheetService(
	auctionSvc *AuctionService,
	playerSvc *PlayerService,
	portraits PortraitLookup,
	logger *logging.Logger,
) *RosterSheetService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterSheetService{
		auction:   auctionSvc,
		players:   playerSvc,
		portraits: portraits,
		logger:    logger,
	}
}

// Export renders the full auction state as an xlsx workbook with
// Players, Teams and History sheets.
func (s *RosterSheetService) Export(ctx context.Context) ([]byte, error) {
	state := s.auction.Snapshot()

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), playersSheet)
	if _, err := f.NewSheet(teamsSheet); err != nil {
		return nil, fmt.Errorf("create teams sheet: %w", err)
	}
	if _, err := f.NewSheet(historySheet); err != nil {
		return nil, fmt.Errorf("create history sheet: %w", err)
	}

	portraits := s.lookupMissingPortraits(ctx, state.Players)

	header := []any{"Name", "Role", "Base Price", "Status", "Team", "Sold Price", "Portrait"}
	if err := f.SetSheetRow(playersSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write players header: %w", err)
	}
	for i, p := range state.Players {
		teamName := ""
		if t, ok := state.TeamByID(p.TeamID); ok {
			teamName = t.Name
		}
		portrait := p.ImageURL
		if portrait == "" {
			portrait = portraits[p.Name]
		}
		row := []any{p.Name, string(p.Role), p.BasePrice, string(p.Status), teamName, p.SoldPrice, portrait}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(playersSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write player row: %w", err)
		}
	}

	teamHeader := []any{"Name", "Initial Budget", "Remaining Budget", "Players", "Total Spent"}
	if err := f.SetSheetRow(teamsSheet, "A1", &teamHeader); err != nil {
		return nil, fmt.Errorf("write teams header: %w", err)
	}
	for i, t := range state.Teams {
		summary := auction.SummarizeTeam(t, state.Players)
		row := []any{t.Name, t.InitialBudget, t.CurrentBudget, summary.PlayersCount, summary.TotalSpent}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(teamsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write team row: %w", err)
		}
	}

	historyHeader := []any{"Player", "Team", "Amount", "Recorded At"}
	if err := f.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return nil, fmt.Errorf("write history header: %w", err)
	}
	for i, entry := range state.History {
		row := []any{entry.PlayerName, entry.TeamName, entry.Amount, entry.RecordedAt.Format("2006-01-02 15:04:05")}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write history row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Import creates players from the first sheet. Expected columns are
// Name, Role, Base Price; a header row is detected and skipped. Rows
// that fail validation are reported, not fatal.
func (s *RosterSheetService) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: open workbook: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return ImportReport{}, fmt.Errorf("read sheet rows: %w", err)
	}

	var report ImportReport
	created := make([]player.Player, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(cellAt(row, 0)) == "" {
			report.Skipped++
			continue
		}

		basePrice, err := parseAmount(cellAt(row, 2))
		if err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		item, err := s.players.Create(ctx, PlayerInput{
			Name:      cellAt(row, 0),
			Role:      cellAt(row, 1),
			BasePrice: basePrice,
		})
		if err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		created = append(created, item)
		report.Created++
	}

	s.enrichPortraits(ctx, created)
	return report, nil
}

// enrichPortraits fetches portraits for freshly imported players on a
// bounded worker pool. Failures only lose the image, never the player.
func (s *RosterSheetService) enrichPortraits(ctx context.Context, players []player.Player) {
	if s.portraits == nil || len(players) == 0 {
		return
	}

	pool, err := ants.NewPool(importWorkers)
	if err != nil {
		s.logger.WarnContext(ctx, "portrait pool unavailable", "error", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, p := range players {
		p := p
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			url, err := s.portraits.PortraitURL(ctx, p.Name)
			if err != nil || url == "" {
				s.logger.WarnContext(ctx, "portrait lookup failed", "player", p.Name, "error", err)
				return
			}
			if err := s.players.SetImageURL(ctx, p.ID, url); err != nil {
				s.logger.WarnContext(ctx, "store portrait failed", "player_id", p.ID, "error", err)
			}
		})
		if submitErr != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "portrait task rejected", "player", p.Name, "error", submitErr)
		}
	}
	wg.Wait()
}

func (s *RosterSheetService) lookupMissingPortraits(ctx context.Context, players []player.Player) map[string]string {
	if s.portraits == nil {
		return nil
	}
	missing := make([]string, 0, len(players))
	for _, p := range players {
		if p.ImageURL == "" {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return s.portraits.BatchPortraitURLs(ctx, missing)
}

func isHeaderRow(row []string) bool {
	return strings.EqualFold(strings.TrimSpace(cellAt(row, 0)), "name")
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseAmount(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, fmt.Errorf("base price is required")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid base price %q", raw)
	}
	return int64(value), nil
}
