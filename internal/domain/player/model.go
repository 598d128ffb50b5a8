package player

import "fmt"

// Role represents the playing role categories used on the auction board.
type Role string

const (
	RoleBatsman      Role = "Batsman"
	RoleBowler       Role = "Bowler"
	RoleAllRounder   Role = "All-Rounder"
	RoleWicketKeeper Role = "Wicket-Keeper"
)

var AllRoles = map[Role]struct{}{
	RoleBatsman:      {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketKeeper: {},
}

// Status tracks where a player sits in the auction lifecycle.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusUnsold    Status = "unsold"
)

var AllStatuses = map[Status]struct{}{
	StatusAvailable: {},
	StatusSold:      {},
	StatusUnsold:    {},
}

// Player is one auctionable cricketer in the pool.
//
// TeamID and SoldPrice are zero-valued unless Status is StatusSold; the
// three fields move together and only the auction reducer changes them.
type Player struct {
	ID        string
	Name      string
	Role      Role
	BasePrice int64
	Status    Status
	TeamID    string
	SoldPrice int64
	ImageURL  string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if p.BasePrice <= 0 {
		return fmt.Errorf("player base price must be greater than zero")
	}
	if _, ok := AllStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}

	sold := p.Status == StatusSold
	if sold && (p.TeamID == "" || p.SoldPrice <= 0) {
		return fmt.Errorf("sold player must carry team id and sold price")
	}
	if !sold && (p.TeamID != "" || p.SoldPrice != 0) {
		return fmt.Errorf("unsold player cannot carry team id or sold price")
	}
	if sold && p.SoldPrice < p.BasePrice {
		return fmt.Errorf("sold price %d is below base price %d", p.SoldPrice, p.BasePrice)
	}

	return nil
}

// Eligible reports whether the player can be offered on the board.
func (p Player) Eligible() bool {
	return p.Status == StatusAvailable || p.Status == StatusUnsold
}
