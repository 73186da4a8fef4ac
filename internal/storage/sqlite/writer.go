package sqlite

import (
	"context"
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/im"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

type Writer struct {
	tx bob.Tx
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{tx: tx}
}

// Replace deletes every stored row and inserts snap in its place.
func (w *Writer) Replace(ctx context.Context, snap *storage.Snapshot) error {
	for _, table := range []string{"accounts", "transactions", "settings"} {
		if _, err := bob.Exec(ctx, w.tx, sqlite.Delete(dm.From(table))); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, a := range snap.Accounts {
		q := sqlite.Insert(
			im.Into("accounts", "id", "position", "name", "acc_type", "currency", "initial_balance"),
			im.Values(sqlite.Arg(a.ID, i, a.Name, a.Type, a.Currency, a.InitialBalance.String())),
		)
		if _, err := bob.Exec(ctx, w.tx, q); err != nil {
			return fmt.Errorf("inserting account %d: %w", a.ID, err)
		}
	}

	for i, t := range snap.Transactions {
		q := sqlite.Insert(
			im.Into("transactions", "id", "position", "date", "account_id", "category", "description", "amount", "currency"),
			im.Values(sqlite.Arg(
				t.ID, i, storage.FormatTimestamp(t.Date), t.AccountID,
				t.Category, t.Description, t.Amount.String(), t.Currency,
			)),
		)
		if _, err := bob.Exec(ctx, w.tx, q); err != nil {
			return fmt.Errorf("inserting transaction %d: %w", t.ID, err)
		}
	}

	for key, value := range snap.Settings {
		q := sqlite.Insert(
			im.Into("settings", "key", "value"),
			im.Values(sqlite.Arg(key, value)),
		)
		if _, err := bob.Exec(ctx, w.tx, q); err != nil {
			return fmt.Errorf("inserting setting %q: %w", key, err)
		}
	}
	return nil
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
