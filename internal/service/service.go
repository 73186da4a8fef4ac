package service

import (
	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// Service holds the read-side services used by the HTTP handlers.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Summary     *SummaryService
}

// NewService creates a new Service over the given ledger.
func NewService(l *ledger.Ledger) *Service {
	return &Service{
		Transaction: NewTransactionService(l),
		Account:     NewAccountService(l),
		Summary:     NewSummaryService(l),
	}
}
