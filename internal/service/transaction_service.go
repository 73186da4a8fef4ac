package service

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

const defaultLimit = 20

// TransactionService handles transaction queries.
type TransactionService struct {
	ledger *ledger.Ledger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(l *ledger.Ledger) *TransactionService {
	return &TransactionService{ledger: l}
}

// ListTransactions returns a page of transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, filter *TransactionFilter, cursor *TransactionCursor) ([]ledger.Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxTransactionID int64
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
		maxTransactionID = cursor.MaxTransactionID
	}

	var all []ledger.Transaction
	if filter != nil && filter.AccountID != nil {
		all = s.ledger.ListTransactionsForAccount(*filter.AccountID)
	} else {
		all = s.ledger.ListTransactions()
	}

	if maxTransactionID == 0 {
		for _, transaction := range all {
			if transaction.ID > maxTransactionID {
				maxTransactionID = transaction.ID
			}
		}
	}

	rows := make([]ledger.Transaction, 0, len(all))
	for _, transaction := range all {
		if transaction.ID <= maxTransactionID {
			rows = append(rows, transaction)
		}
	}

	if offset >= len(rows) {
		return nil, nil, nil
	}
	rows = rows[offset:]

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position:         offset + limit,
			Limit:            limit,
			MaxTransactionID: maxTransactionID,
		}
	}

	return rows, nextCursor, nil
}
