package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/domain/player"
	qb "github.com/stumpline/cricket-auction/internal/platform/querybuilder"
)

// Ledger persists auction outcomes. Every call runs in one transaction
// so the player row, the budget debit and the history entry commit
// together or not at all.
type Ledger struct {
	db *sqlx.DB
}

func NewLedger(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

type historyTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	PlayerID   string         `db:"player_public_id"`
	PlayerName string         `db:"player_name"`
	TeamID     sql.NullString `db:"team_public_id"`
	TeamName   string         `db:"team_name"`
	Amount     int64          `db:"amount"`
	RecordedAt time.Time      `db:"recorded_at"`
}

type historyInsertModel struct {
	PublicID   string         `db:"public_id"`
	PlayerID   string         `db:"player_public_id"`
	PlayerName string         `db:"player_name"`
	TeamID     sql.NullString `db:"team_public_id"`
	TeamName   string         `db:"team_name"`
	Amount     int64          `db:"amount"`
	RecordedAt time.Time      `db:"recorded_at"`
}

func (m historyTableModel) toDomain() auction.HistoryEntry {
	return auction.HistoryEntry{
		ID:         m.PublicID,
		PlayerID:   m.PlayerID,
		PlayerName: m.PlayerName,
		TeamID:     m.TeamID.String,
		TeamName:   m.TeamName,
		Amount:     m.Amount,
		RecordedAt: m.RecordedAt,
	}
}

func (l *Ledger) RecordSale(ctx context.Context, sold player.Player, entry auction.HistoryEntry) error {
	return inTx(ctx, l.db, func(tx *sqlx.Tx) error {
		if err := updatePlayerOutcome(ctx, tx, sold); err != nil {
			return err
		}

		query, args, err := qb.Update("teams").
			SetExpr("current_budget", "current_budget - ?", entry.Amount).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", entry.TeamID),
				qb.Expr("current_budget >= ?", entry.Amount),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build debit budget query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("debit team budget: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return fmt.Errorf("team %s cannot cover %d", entry.TeamID, entry.Amount)
		}

		return insertHistoryEntry(ctx, tx, entry)
	})
}

func (l *Ledger) RecordUnsold(ctx context.Context, unsold player.Player, entry auction.HistoryEntry) error {
	return inTx(ctx, l.db, func(tx *sqlx.Tx) error {
		if err := updatePlayerOutcome(ctx, tx, unsold); err != nil {
			return err
		}
		return insertHistoryEntry(ctx, tx, entry)
	})
}

func (l *Ledger) Reset(ctx context.Context) error {
	return inTx(ctx, l.db, func(tx *sqlx.Tx) error {
		query, args, err := qb.Update("players").
			Set("status", string(player.StatusAvailable)).
			Set("team_public_id", sql.NullString{}).
			Set("sold_price", int64(0)).
			SetExpr("updated_at", "NOW()").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build reset players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("reset players: %w", err)
		}

		query, args, err = qb.Update("teams").
			SetExpr("current_budget", "initial_budget").
			SetExpr("updated_at", "NOW()").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build reset budgets query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("reset budgets: %w", err)
		}

		query, args, err = qb.DeleteFrom("auction_history").ToSQL()
		if err != nil {
			return fmt.Errorf("build clear history query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		return nil
	})
}

func (l *Ledger) ListHistory(ctx context.Context) ([]auction.HistoryEntry, error) {
	query, args, err := qb.Select(
		"id", "public_id", "player_public_id", "player_name",
		"team_public_id", "team_name", "amount", "recorded_at",
	).From("auction_history").
		OrderBy("id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select history query: %w", err)
	}

	var rows []historyTableModel
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select auction history: %w", err)
	}

	out := make([]auction.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func updatePlayerOutcome(ctx context.Context, tx *sqlx.Tx, p player.Player) error {
	query, args, err := qb.Update("players").
		Set("status", string(p.Status)).
		Set("team_public_id", nullableID(p.TeamID)).
		Set("sold_price", p.SoldPrice).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player outcome query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player outcome: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("player %s does not exist", p.ID)
	}
	return nil
}

func insertHistoryEntry(ctx context.Context, tx *sqlx.Tx, entry auction.HistoryEntry) error {
	query, args, err := qb.InsertModel("auction_history", historyInsertModel{
		PublicID:   entry.ID,
		PlayerID:   entry.PlayerID,
		PlayerName: entry.PlayerName,
		TeamID:     nullableID(entry.TeamID),
		TeamName:   entry.TeamName,
		Amount:     entry.Amount,
		RecordedAt: entry.RecordedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert history query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}
