package team

import "fmt"

// Team is a franchise bidding in the auction. CurrentBudget is debited on
// every sale and restored to InitialBudget on a global reset; the roster is
// derived from players carrying this team's id, never stored here.
type Team struct {
	ID            string
	Name          string
	InitialBudget int64
	CurrentBudget int64
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.InitialBudget <= 0 {
		return fmt.Errorf("team initial budget must be greater than zero")
	}
	if t.CurrentBudget < 0 || t.CurrentBudget > t.InitialBudget {
		return fmt.Errorf("team current budget %d out of range [0, %d]", t.CurrentBudget, t.InitialBudget)
	}

	return nil
}
