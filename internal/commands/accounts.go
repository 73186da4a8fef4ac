package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/service"
)

type accountsCmd struct {
	app  *App
	dump bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts with their balances" }
func (*accountsCmd) Usage() string {
	return `budget-ledger accounts [-dump]

  Lists every account in creation order with its current balance, followed by
  the overall balance.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dump, "dump", false, "Dump the raw account records instead of a table.")
}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	accounts, err := service.NewAccountService(l).ListAccounts(ctx)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error listing accounts: %v", err)
	}

	if c.dump {
		spew.Fdump(c.app.out(), accounts)
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.app.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCURRENCY\tBALANCE")
	for _, account := range accounts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			account.ID, account.Name, account.Type, account.Currency,
			formatMoney(account.Balance, account.Currency))
	}
	if err := w.Flush(); err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error writing accounts: %v", err)
	}

	fmt.Fprintf(c.app.out(), "Overall balance: %s\n", formatMoney(service.TotalBalance(accounts), l.Currency()))
	return subcommands.ExitSuccess
}

type addAccountCmd struct {
	app         *App
	name        string
	accountType string
	currency    string
	balance     string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create an account" }
func (*addAccountCmd) Usage() string {
	return `budget-ledger add-account -name <name> [-type <type>] [-currency <code>] [-balance <amount>]
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (required).")
	f.StringVar(&c.accountType, "type", ledger.DefaultAccountType, "Account type label.")
	f.StringVar(&c.currency, "currency", "", "Currency code, defaults to the ledger base currency.")
	f.StringVar(&c.balance, "balance", "0", "Initial balance.")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.TrimSpace(c.name)
	if name == "" {
		return c.app.failf(subcommands.ExitUsageError, "-name is required")
	}
	balance, err := ledger.ParseAmount(c.balance)
	if err != nil {
		return c.app.failf(subcommands.ExitUsageError, "Invalid balance %q: %v", c.balance, err)
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	currency := strings.ToUpper(c.currency)
	if currency == "" {
		currency = l.Currency()
	}
	account := l.AddAccount(name, c.accountType, currency, balance)
	if status := c.app.saved(l); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Fprintf(c.app.out(), "Created account %d (%s)\n", account.ID, account.Name)
	return subcommands.ExitSuccess
}

type updateAccountCmd struct {
	app         *App
	id          int64
	name        string
	accountType string
	balance     string
}

func (*updateAccountCmd) Name() string     { return "update-account" }
func (*updateAccountCmd) Synopsis() string { return "change an account's name, type or initial balance" }
func (*updateAccountCmd) Usage() string {
	return `budget-ledger update-account -id <id> [-name <name>] [-type <type>] [-balance <amount>]

  Only the given flags change; the rest keep their current values.
`
}

func (c *updateAccountCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Account id (required).")
	f.StringVar(&c.name, "name", "", "New account name.")
	f.StringVar(&c.accountType, "type", "", "New account type label.")
	f.StringVar(&c.balance, "balance", "", "New initial balance.")
}

func (c *updateAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		return c.app.failf(subcommands.ExitUsageError, "-id is required")
	}
	set := visited(f)

	var balance decimal.Decimal
	if set["balance"] {
		var err error
		if balance, err = ledger.ParseAmount(c.balance); err != nil {
			return c.app.failf(subcommands.ExitUsageError, "Invalid balance %q: %v", c.balance, err)
		}
	}
	if set["name"] && strings.TrimSpace(c.name) == "" {
		return c.app.failf(subcommands.ExitUsageError, "-name must not be blank")
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	account, ok := l.GetAccount(c.id)
	if !ok {
		return c.app.failf(subcommands.ExitFailure, "No account with id %d", c.id)
	}
	if set["name"] {
		account.Name = strings.TrimSpace(c.name)
	}
	if set["type"] {
		account.Type = c.accountType
	}
	if set["balance"] {
		account.InitialBalance = balance
	}

	l.UpdateAccount(account.ID, account.Name, account.Type, account.InitialBalance)
	if status := c.app.saved(l); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Fprintf(c.app.out(), "Updated account %d\n", account.ID)
	return subcommands.ExitSuccess
}
