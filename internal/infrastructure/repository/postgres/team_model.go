package postgres

import (
	"time"

	"github.com/stumpline/cricket-auction/internal/domain/team"
)

type teamTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	Name          string    `db:"name"`
	InitialBudget int64     `db:"initial_budget"`
	CurrentBudget int64     `db:"current_budget"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:            m.PublicID,
		Name:          m.Name,
		InitialBudget: m.InitialBudget,
		CurrentBudget: m.CurrentBudget,
	}
}
