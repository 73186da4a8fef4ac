package transaction

import (
	"time"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              int64  `json:"id" doc:"Transaction ID"`
	AccountID       int64  `json:"accountID" doc:"Account ID"`
	Category        string `json:"category" doc:"Category label"`
	Description     string `json:"description" doc:"Free-form description"`
	Amount          string `json:"amount" doc:"Signed decimal amount, negative for expenses"`
	Currency        string `json:"currency" doc:"ISO 4217 currency code"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date"`
}

func toResponse(t ledger.Transaction) Transaction {
	return Transaction{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Category:        t.Category,
		Description:     t.Description,
		Amount:          t.Amount.String(),
		Currency:        t.Currency,
		TransactionDate: t.Timestamp.Format(time.RFC3339),
	}
}
