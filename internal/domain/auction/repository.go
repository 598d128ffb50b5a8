package auction

import (
	"context"

	"github.com/stumpline/cricket-auction/internal/domain/player"
)

// Ledger persists auction outcomes. Implementations must make each call
// atomic: the player transition, the budget debit and the history entry
// land together or not at all.
type Ledger interface {
	// RecordSale stores the post-sale player row, the buyer's debited
	// budget and the history entry.
	RecordSale(ctx context.Context, sold player.Player, entry HistoryEntry) error
	// RecordUnsold stores the unsold status flip and the history entry.
	RecordUnsold(ctx context.Context, unsold player.Player, entry HistoryEntry) error
	// Reset returns every player to available, every budget to its
	// initial value and clears the history.
	Reset(ctx context.Context) error
	// ListHistory returns outcomes newest first.
	ListHistory(ctx context.Context) ([]HistoryEntry, error)
}
