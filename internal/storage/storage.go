package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Defaults applied to stored records that are missing a field.
const (
	DefaultAccountType = "Account"
	DefaultCategory    = "Other operating expenses"
	DefaultAccountID   = 1
)

// TimestampLayout is the textual form used for persisted transaction dates.
const TimestampLayout = time.RFC3339Nano

// localTimestampLayout accepts ISO-8601 timestamps written without a zone.
const localTimestampLayout = "2006-01-02T15:04:05.999999999"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp. Values without a zone offset
// are read in the local time zone.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err == nil {
		return t, nil
	}
	if local, localErr := time.ParseInLocation(localTimestampLayout, value, time.Local); localErr == nil {
		return local, nil
	}
	return time.Time{}, err
}

// Account is the persisted form of a ledger account.
// An empty Currency means the record did not carry one.
type Account struct {
	ID             int64
	Name           string
	Type           string
	Currency       string
	InitialBalance decimal.Decimal
}

// Transaction is the persisted form of a ledger transaction.
// An empty Currency means the record did not carry one.
type Transaction struct {
	ID          int64
	Date        time.Time
	AccountID   int64
	Category    string
	Description string
	Amount      decimal.Decimal
	Currency    string
}

// Snapshot is the full persisted ledger state.
type Snapshot struct {
	Accounts     []Account
	Transactions []Transaction
	Settings     map[string]string
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Accounts:     []Account{},
		Transactions: []Transaction{},
		Settings:     map[string]string{},
	}
}

// Store loads and saves the whole ledger state.
// Load returns an empty snapshot and no error when nothing has been persisted yet.
//
//go:generate mockery --name Store --inpackage --with-expecter
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
