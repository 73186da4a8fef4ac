package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

type CreateAccount struct {
	Name           string
	Type           string
	Currency       string
	InitialBalance decimal.Decimal

	// Created is set by Perform.
	Created ledger.Account
}

func (c *CreateAccount) Perform(ctx context.Context, l *ledger.Ledger) error {
	currency := c.Currency
	if currency == "" {
		currency = l.Currency()
	}
	c.Created = l.AddAccount(c.Name, c.Type, currency, c.InitialBalance)
	return nil
}

type UpdateAccount struct {
	ID             int64
	Name           string
	Type           string
	InitialBalance decimal.Decimal
}

func (u *UpdateAccount) Perform(ctx context.Context, l *ledger.Ledger) error {
	l.UpdateAccount(u.ID, u.Name, u.Type, u.InitialBalance)
	return nil
}

type SetDisplayName struct {
	Name string
}

func (s *SetDisplayName) Perform(ctx context.Context, l *ledger.Ledger) error {
	l.SetDisplayName(s.Name)
	return nil
}
