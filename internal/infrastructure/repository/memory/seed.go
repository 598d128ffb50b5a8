package memory

import (
	"github.com/stumpline/cricket-auction/internal/domain/player"
	"github.com/stumpline/cricket-auction/internal/domain/team"
)

// Demo roster for local development: four franchises with equal purses
// and eight marquee players.

const demoBudget = 10_000_000

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team_mi", Name: "Mumbai Indians", InitialBudget: demoBudget, CurrentBudget: demoBudget},
		{ID: "team_csk", Name: "Chennai Super Kings", InitialBudget: demoBudget, CurrentBudget: demoBudget},
		{ID: "team_rcb", Name: "Royal Challengers", InitialBudget: demoBudget, CurrentBudget: demoBudget},
		{ID: "team_kkr", Name: "Kolkata Knight Riders", InitialBudget: demoBudget, CurrentBudget: demoBudget},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "player_kohli", Name: "Virat Kohli", Role: player.RoleBatsman, BasePrice: 2_000_000, Status: player.StatusAvailable},
		{ID: "player_sharma", Name: "Rohit Sharma", Role: player.RoleBatsman, BasePrice: 2_000_000, Status: player.StatusAvailable},
		{ID: "player_bumrah", Name: "Jasprit Bumrah", Role: player.RoleBowler, BasePrice: 2_000_000, Status: player.StatusAvailable},
		{ID: "player_dhoni", Name: "MS Dhoni", Role: player.RoleWicketKeeper, BasePrice: 2_000_000, Status: player.StatusAvailable},
		{ID: "player_pandya", Name: "Hardik Pandya", Role: player.RoleAllRounder, BasePrice: 1_500_000, Status: player.StatusAvailable},
		{ID: "player_jadeja", Name: "Ravindra Jadeja", Role: player.RoleAllRounder, BasePrice: 1_500_000, Status: player.StatusAvailable},
		{ID: "player_rahul", Name: "KL Rahul", Role: player.RoleBatsman, BasePrice: 1_500_000, Status: player.StatusAvailable},
		{ID: "player_shami", Name: "Mohammed Shami", Role: player.RoleBowler, BasePrice: 1_500_000, Status: player.StatusAvailable},
	}
}
