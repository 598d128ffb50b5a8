package auction

import "errors"

// Rejection reasons surfaced to the operator. All are recoverable
// validation failures; state is never mutated when one is returned.
var (
	ErrInvalidBid         = errors.New("invalid bid")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrAlreadySold        = errors.New("player already sold")
	ErrNoPlayerSelected   = errors.New("no player selected")
	ErrNoTeamSelected     = errors.New("no team selected")
	ErrNotFound           = errors.New("unknown player or team")
)
