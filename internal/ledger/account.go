package ledger

import (
	"github.com/shopspring/decimal"
)

// Account represents a holding such as a card, cash, or a deposit.
type Account struct {
	ID             int64
	Name           string
	Type           string
	Currency       string
	InitialBalance decimal.Decimal
}
