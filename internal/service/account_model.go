package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// Account is a ledger account together with its derived balance.
type Account struct {
	ledger.Account
	Balance decimal.Decimal
}

// TotalBalance sums the balances of accounts.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance)
	}
	return total
}
