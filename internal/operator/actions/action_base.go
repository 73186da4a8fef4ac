package actions

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// IAction is a single ledger mutation executed by an operator.
type IAction interface {
	Perform(ctx context.Context, l *ledger.Ledger) error
}
