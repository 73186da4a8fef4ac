package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

type accountRow struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	Type           sql.NullString `db:"acc_type"`
	Currency       sql.NullString `db:"currency"`
	InitialBalance sql.NullString `db:"initial_balance"`
}

type transactionRow struct {
	ID          int64          `db:"id"`
	Date        string         `db:"date"`
	AccountID   sql.NullInt64  `db:"account_id"`
	Category    sql.NullString `db:"category"`
	Description sql.NullString `db:"description"`
	Amount      sql.NullString `db:"amount"`
	Currency    sql.NullString `db:"currency"`
}

type settingRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// Snapshot reads accounts and transactions in their stored order.
func (r *Reader) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	snap := storage.NewSnapshot()

	accounts, err := bob.All(ctx, r.exec, sqlite.Select(
		sm.Columns("id", "name", "acc_type", "currency", "initial_balance"),
		sm.From("accounts"),
		sm.OrderBy("position").Asc(),
	), scan.StructMapper[accountRow]())
	if err != nil {
		return nil, fmt.Errorf("selecting accounts: %w", err)
	}
	for _, row := range accounts {
		account, err := row.toStorage()
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", row.ID, err)
		}
		snap.Accounts = append(snap.Accounts, account)
	}

	transactions, err := bob.All(ctx, r.exec, sqlite.Select(
		sm.Columns("id", "date", "account_id", "category", "description", "amount", "currency"),
		sm.From("transactions"),
		sm.OrderBy("position").Asc(),
	), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, fmt.Errorf("selecting transactions: %w", err)
	}
	for _, row := range transactions {
		transaction, err := row.toStorage()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", row.ID, err)
		}
		snap.Transactions = append(snap.Transactions, transaction)
	}

	settings, err := bob.All(ctx, r.exec, sqlite.Select(
		sm.Columns("key", "value"),
		sm.From("settings"),
	), scan.StructMapper[settingRow]())
	if err != nil {
		return nil, fmt.Errorf("selecting settings: %w", err)
	}
	for _, row := range settings {
		snap.Settings[row.Key] = row.Value
	}

	return snap, nil
}

func (row accountRow) toStorage() (storage.Account, error) {
	account := storage.Account{
		ID:             row.ID,
		Name:           row.Name,
		Type:           storage.DefaultAccountType,
		Currency:       row.Currency.String,
		InitialBalance: decimal.Zero,
	}
	if row.Type.Valid {
		account.Type = row.Type.String
	}
	if row.InitialBalance.Valid {
		balance, err := decimal.NewFromString(row.InitialBalance.String)
		if err != nil {
			return storage.Account{}, fmt.Errorf("initial_balance: %w", err)
		}
		account.InitialBalance = balance
	}
	return account, nil
}

func (row transactionRow) toStorage() (storage.Transaction, error) {
	date, err := storage.ParseTimestamp(row.Date)
	if err != nil {
		return storage.Transaction{}, fmt.Errorf("date: %w", err)
	}
	transaction := storage.Transaction{
		ID:          row.ID,
		Date:        date,
		AccountID:   storage.DefaultAccountID,
		Category:    storage.DefaultCategory,
		Description: row.Description.String,
		Amount:      decimal.Zero,
		Currency:    row.Currency.String,
	}
	if row.AccountID.Valid {
		transaction.AccountID = row.AccountID.Int64
	}
	if row.Category.Valid {
		transaction.Category = row.Category.String
	}
	if row.Amount.Valid {
		amount, err := decimal.NewFromString(row.Amount.String)
		if err != nil {
			return storage.Transaction{}, fmt.Errorf("amount: %w", err)
		}
		transaction.Amount = amount
	}
	return transaction, nil
}
