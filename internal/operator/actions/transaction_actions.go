package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

type CreateTransaction struct {
	AccountID   int64
	Amount      decimal.Decimal
	Category    string
	Description string
	Timestamp   time.Time // defaults to now if zero

	// Created is set by Perform.
	Created ledger.Transaction
}

func (t *CreateTransaction) Perform(ctx context.Context, l *ledger.Ledger) error {
	t.Created = l.AddTransaction(t.AccountID, t.Amount, t.Category, t.Description, t.Timestamp)
	return nil
}

type UpdateTransaction struct {
	ID          int64
	AccountID   int64
	Amount      decimal.Decimal
	Category    string
	Description string
}

func (t *UpdateTransaction) Perform(ctx context.Context, l *ledger.Ledger) error {
	l.UpdateTransaction(t.ID, t.AccountID, t.Amount, t.Category, t.Description)
	return nil
}

type DeleteTransaction struct {
	ID int64
}

func (t *DeleteTransaction) Perform(ctx context.Context, l *ledger.Ledger) error {
	l.DeleteTransaction(t.ID)
	return nil
}
