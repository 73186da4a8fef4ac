package service

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// AccountService answers account queries.
type AccountService struct {
	ledger *ledger.Ledger
}

// NewAccountService creates a new AccountService.
func NewAccountService(l *ledger.Ledger) *AccountService {
	return &AccountService{ledger: l}
}

// GetAccount returns the account with its balance, and false if it does not exist.
func (s *AccountService) GetAccount(ctx context.Context, id int64) (*Account, bool) {
	account, ok := s.ledger.GetAccount(id)
	if !ok {
		return nil, false
	}
	return &Account{Account: account, Balance: s.ledger.AccountBalance(id)}, true
}

// ListAccounts returns every account in insertion order with its balance.
func (s *AccountService) ListAccounts(ctx context.Context) ([]Account, error) {
	accounts := s.ledger.ListAccounts()
	result := make([]Account, len(accounts))
	for i, account := range accounts {
		result[i] = Account{
			Account: account,
			Balance: s.ledger.AccountBalance(account.ID),
		}
	}
	return result, nil
}
