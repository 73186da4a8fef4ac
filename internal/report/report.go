// Package report renders the ledger's transactions as semicolon-delimited text
// that common spreadsheet tools open without an import dialog.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

const (
	Delimiter = ';'

	// DateLayout is the timestamp format of the Date column.
	DateLayout = "2006-01-02 15:04"

	// UnknownAccount replaces the name of an account the ledger cannot resolve.
	UnknownAccount = "?"

	byteOrderMark = "\ufeff"
)

// Header is the first row of every report.
var Header = []string{"ID", "Date", "Account", "Category", "Description", "Amount", "Currency"}

// Source is the part of the ledger a report reads.
type Source interface {
	ListAccounts() []ledger.Account
	ListTransactions() []ledger.Transaction
}

var _ Source = (*ledger.Ledger)(nil)

// ExportTransactions writes the report for every transaction in src to w,
// newest first, preceded by a byte-order mark and the header row.
func ExportTransactions(src Source, w io.Writer) error {
	if _, err := io.WriteString(w, byteOrderMark); err != nil {
		return fmt.Errorf("writing byte-order mark: %w", err)
	}

	names := make(map[int64]string)
	for _, account := range src.ListAccounts() {
		names[account.ID] = account.Name
	}

	out := csv.NewWriter(w)
	out.Comma = Delimiter
	out.UseCRLF = false

	if err := out.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, transaction := range src.ListTransactions() {
		if err := out.Write(Row(transaction, names)); err != nil {
			return fmt.Errorf("writing transaction %d: %w", transaction.ID, err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}
	return nil
}

// ExportFile writes the report to the file at path, replacing it.
func ExportFile(src Source, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	return ExportTransactions(src, f)
}

// Row renders one transaction. names maps account ids to account names.
func Row(t ledger.Transaction, names map[int64]string) []string {
	accountName, ok := names[t.AccountID]
	if !ok {
		accountName = UnknownAccount
	}
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Timestamp.Format(DateLayout),
		accountName,
		t.Category,
		EscapeDescription(t.Description),
		t.Amount.String(),
		t.Currency,
	}
}

// EscapeDescription replaces the delimiter so a description cannot split its row.
func EscapeDescription(description string) string {
	return strings.ReplaceAll(description, string(Delimiter), ",")
}
