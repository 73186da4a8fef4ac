package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/report"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

type transactionsCmd struct {
	app       *App
	accountID int64
	limit     int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list transactions, newest first" }
func (*transactionsCmd) Usage() string {
	return `budget-ledger transactions [-account <id>] [-limit <n>]
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.accountID, "account", 0, "Only list transactions of this account.")
	f.IntVar(&c.limit, "limit", 0, "Show at most this many transactions (0 shows all).")
}

func (c *transactionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.limit < 0 {
		return c.app.failf(subcommands.ExitUsageError, "-limit must not be negative")
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	var filter *service.TransactionFilter
	if c.accountID != 0 {
		filter = &service.TransactionFilter{AccountID: &c.accountID}
	}
	var cursor *service.TransactionCursor
	if c.limit > 0 {
		cursor = &service.TransactionCursor{Limit: c.limit}
	} else {
		cursor = &service.TransactionCursor{Limit: len(l.ListTransactions()) + 1}
	}

	transactions, _, err := service.NewTransactionService(l).ListTransactions(ctx, filter, cursor)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error listing transactions: %v", err)
	}

	names := make(map[int64]string)
	for _, account := range l.ListAccounts() {
		names[account.ID] = account.Name
	}

	w := tabwriter.NewWriter(c.app.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tACCOUNT\tCATEGORY\tDESCRIPTION\tAMOUNT")
	for _, t := range transactions {
		row := report.Row(t, names)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row[0], row[1], row[2], row[3], row[4], formatMoney(t.Amount, t.Currency))
	}
	if err := w.Flush(); err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error writing transactions: %v", err)
	}
	return subcommands.ExitSuccess
}

type addTxCmd struct {
	app         *App
	accountID   int64
	amount      string
	category    string
	description string
	date        string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record a transaction" }
func (*addTxCmd) Usage() string {
	return `budget-ledger add-tx -amount <amount> [-account <id>] [-category <label>] [-description <text>] [-date "YYYY-MM-DD HH:MM"]

  A negative amount is an expense, anything else is income. Without -category
  the first category matching the amount's sign is used.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.accountID, "account", storage.DefaultAccountID, "Account id.")
	f.StringVar(&c.amount, "amount", "", "Signed amount (required).")
	f.StringVar(&c.category, "category", "", "Category label.")
	f.StringVar(&c.description, "description", "", "Free-form description.")
	f.StringVar(&c.date, "date", "", "Local date and time, defaults to now.")
}

func (c *addTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		return c.app.failf(subcommands.ExitUsageError, "-amount is required")
	}
	amount, err := ledger.ParseAmount(c.amount)
	if err != nil {
		return c.app.failf(subcommands.ExitUsageError, "Invalid amount %q: %v", c.amount, err)
	}
	var timestamp time.Time
	if c.date != "" {
		if timestamp, err = time.ParseInLocation(report.DateLayout, c.date, time.Local); err != nil {
			return c.app.failf(subcommands.ExitUsageError, "Invalid date %q: %v", c.date, err)
		}
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	if _, ok := l.GetAccount(c.accountID); !ok {
		return c.app.failf(subcommands.ExitUsageError, "No account with id %d", c.accountID)
	}

	category, description := normalizeFields(amount, c.category, c.description)
	t := l.AddTransaction(c.accountID, amount, category, description, timestamp)
	if status := c.app.saved(l); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Fprintf(c.app.out(), "Created transaction %d\n", t.ID)
	return subcommands.ExitSuccess
}

type updateTxCmd struct {
	app         *App
	id          int64
	accountID   int64
	amount      string
	category    string
	description string
}

func (*updateTxCmd) Name() string     { return "update-tx" }
func (*updateTxCmd) Synopsis() string { return "change a transaction" }
func (*updateTxCmd) Usage() string {
	return `budget-ledger update-tx -id <id> [-account <id>] [-amount <amount>] [-category <label>] [-description <text>]

  Only the given flags change; the rest keep their current values. The
  transaction date never changes.
`
}

func (c *updateTxCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Transaction id (required).")
	f.Int64Var(&c.accountID, "account", 0, "New account id.")
	f.StringVar(&c.amount, "amount", "", "New signed amount.")
	f.StringVar(&c.category, "category", "", "New category label.")
	f.StringVar(&c.description, "description", "", "New description.")
}

func (c *updateTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		return c.app.failf(subcommands.ExitUsageError, "-id is required")
	}
	set := visited(f)

	var amount decimal.Decimal
	if set["amount"] {
		var err error
		if amount, err = ledger.ParseAmount(c.amount); err != nil {
			return c.app.failf(subcommands.ExitUsageError, "Invalid amount %q: %v", c.amount, err)
		}
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	t, ok := l.GetTransaction(c.id)
	if !ok {
		return c.app.failf(subcommands.ExitFailure, "No transaction with id %d", c.id)
	}
	if set["account"] {
		if _, ok := l.GetAccount(c.accountID); !ok {
			return c.app.failf(subcommands.ExitUsageError, "No account with id %d", c.accountID)
		}
		t.AccountID = c.accountID
	}
	if set["amount"] {
		t.Amount = amount
	}
	if set["category"] {
		t.Category = c.category
	}
	if set["description"] {
		t.Description = c.description
	}
	t.Category, t.Description = normalizeFields(t.Amount, t.Category, t.Description)

	l.UpdateTransaction(t.ID, t.AccountID, t.Amount, t.Category, t.Description)
	if status := c.app.saved(l); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Fprintf(c.app.out(), "Updated transaction %d\n", t.ID)
	return subcommands.ExitSuccess
}

type deleteTxCmd struct {
	app *App
	id  int64
}

func (*deleteTxCmd) Name() string     { return "delete-tx" }
func (*deleteTxCmd) Synopsis() string { return "delete a transaction" }
func (*deleteTxCmd) Usage() string {
	return `budget-ledger delete-tx -id <id>
`
}

func (c *deleteTxCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Transaction id (required).")
}

func (c *deleteTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		return c.app.failf(subcommands.ExitUsageError, "-id is required")
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	if _, ok := l.GetTransaction(c.id); !ok {
		return c.app.failf(subcommands.ExitFailure, "No transaction with id %d", c.id)
	}
	l.DeleteTransaction(c.id)
	if status := c.app.saved(l); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Fprintf(c.app.out(), "Deleted transaction %d\n", c.id)
	return subcommands.ExitSuccess
}

func normalizeFields(amount decimal.Decimal, category, description string) (string, string) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = ledger.DefaultCategory(amount)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = ledger.EmptyDescription
	}
	return category, description
}
