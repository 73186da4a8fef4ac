package jsonfile

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

var (
	errMissingID   = errors.New("missing id")
	errMissingName = errors.New("missing name")
	errMissingDate = errors.New("missing date")
)

type document struct {
	Accounts     []accountRecord     `json:"accounts"`
	Transactions []transactionRecord `json:"transactions"`
	Settings     map[string]string   `json:"settings"`
}

// Pointer fields distinguish an absent key from an explicit zero value.
type accountRecord struct {
	ID             *int64           `json:"id"`
	Name           *string          `json:"name"`
	Type           *string          `json:"acc_type,omitempty"`
	Currency       *string          `json:"currency,omitempty"`
	InitialBalance *decimal.Decimal `json:"initial_balance,omitempty"`
}

type transactionRecord struct {
	ID          *int64           `json:"id"`
	Date        *string          `json:"date"`
	AccountID   *int64           `json:"account_id,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
}

func (r accountRecord) toStorage() (storage.Account, error) {
	if r.ID == nil {
		return storage.Account{}, errMissingID
	}
	if r.Name == nil {
		return storage.Account{}, errMissingName
	}
	account := storage.Account{
		ID:             *r.ID,
		Name:           *r.Name,
		Type:           storage.DefaultAccountType,
		InitialBalance: decimal.Zero,
	}
	if r.Type != nil {
		account.Type = *r.Type
	}
	if r.Currency != nil {
		account.Currency = *r.Currency
	}
	if r.InitialBalance != nil {
		account.InitialBalance = *r.InitialBalance
	}
	return account, nil
}

func (r transactionRecord) toStorage() (storage.Transaction, error) {
	if r.ID == nil {
		return storage.Transaction{}, errMissingID
	}
	if r.Date == nil {
		return storage.Transaction{}, errMissingDate
	}
	date, err := storage.ParseTimestamp(*r.Date)
	if err != nil {
		return storage.Transaction{}, fmt.Errorf("parsing date: %w", err)
	}

	transaction := storage.Transaction{
		ID:        *r.ID,
		Date:      date,
		AccountID: storage.DefaultAccountID,
		Category:  storage.DefaultCategory,
		Amount:    decimal.Zero,
	}
	if r.AccountID != nil {
		transaction.AccountID = *r.AccountID
	}
	if r.Category != nil {
		transaction.Category = *r.Category
	}
	if r.Description != nil {
		transaction.Description = *r.Description
	}
	if r.Amount != nil {
		transaction.Amount = *r.Amount
	}
	if r.Currency != nil {
		transaction.Currency = *r.Currency
	}
	return transaction, nil
}

func accountToRecord(a storage.Account) accountRecord {
	return accountRecord{
		ID:             &a.ID,
		Name:           &a.Name,
		Type:           &a.Type,
		Currency:       &a.Currency,
		InitialBalance: &a.InitialBalance,
	}
}

func transactionToRecord(t storage.Transaction) transactionRecord {
	date := storage.FormatTimestamp(t.Date)
	return transactionRecord{
		ID:          &t.ID,
		Date:        &date,
		AccountID:   &t.AccountID,
		Category:    &t.Category,
		Description: &t.Description,
		Amount:      &t.Amount,
		Currency:    &t.Currency,
	}
}
