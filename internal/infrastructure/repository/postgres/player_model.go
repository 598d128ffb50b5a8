package postgres

import (
	"database/sql"
	"time"

	"github.com/stumpline/cricket-auction/internal/domain/player"
)

type playerTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	Name      string         `db:"name"`
	Role      string         `db:"role"`
	BasePrice int64          `db:"base_price"`
	Status    string         `db:"status"`
	TeamID    sql.NullString `db:"team_public_id"`
	SoldPrice int64          `db:"sold_price"`
	ImageURL  string         `db:"image_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:        m.PublicID,
		Name:      m.Name,
		Role:      player.Role(m.Role),
		BasePrice: m.BasePrice,
		Status:    player.Status(m.Status),
		TeamID:    m.TeamID.String,
		SoldPrice: m.SoldPrice,
		ImageURL:  m.ImageURL,
	}
}

func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}
