package ledger

import (
	"github.com/carson-networks/budget-ledger/internal/storage"
)

func accountToStorage(a Account) storage.Account {
	return storage.Account{
		ID:             a.ID,
		Name:           a.Name,
		Type:           a.Type,
		Currency:       a.Currency,
		InitialBalance: a.InitialBalance,
	}
}

func (l *Ledger) accountFromStorage(row storage.Account) Account {
	currency := row.Currency
	if currency == "" {
		currency = l.currency
	}
	return Account{
		ID:             row.ID,
		Name:           row.Name,
		Type:           row.Type,
		Currency:       currency,
		InitialBalance: row.InitialBalance,
	}
}

func transactionToStorage(t Transaction) storage.Transaction {
	return storage.Transaction{
		ID:          t.ID,
		Date:        t.Timestamp,
		AccountID:   t.AccountID,
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		Currency:    t.Currency,
	}
}

func (l *Ledger) transactionFromStorage(row storage.Transaction) Transaction {
	currency := row.Currency
	if currency == "" {
		currency = l.currency
	}
	return Transaction{
		ID:          row.ID,
		Timestamp:   row.Date,
		AccountID:   row.AccountID,
		Category:    row.Category,
		Description: row.Description,
		Amount:      row.Amount,
		Currency:    currency,
	}
}
