// Package commands implements the budget-ledger command-line interface.
package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/bootstrap"
	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// App carries what every subcommand needs to open the ledger.
type App struct {
	Config *config.Config
	Logger *logrus.Logger
	Out    io.Writer
	Err    io.Writer

	// Store replaces the configured store when set.
	Store storage.Store
	// Now replaces time.Now when set.
	Now func() time.Time
}

// Register the subcommands.
// A main package calls Register and then Execute on the user-selected one.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&serveCmd{app: app}, "server")
	c.Register(&migrateCmd{app: app}, "server")

	c.Register(&accountsCmd{app: app}, "accounts")
	c.Register(&addAccountCmd{app: app}, "accounts")
	c.Register(&updateAccountCmd{app: app}, "accounts")

	c.Register(&transactionsCmd{app: app}, "transactions")
	c.Register(&addTxCmd{app: app}, "transactions")
	c.Register(&updateTxCmd{app: app}, "transactions")
	c.Register(&deleteTxCmd{app: app}, "transactions")

	c.Register(&summaryCmd{app: app}, "reports")
	c.Register(&exportCmd{app: app}, "reports")
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) errOut() io.Writer {
	if a.Err == nil {
		return os.Stderr
	}
	return a.Err
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// openLedger opens the configured store and loads the ledger from it.
// The returned function releases the store.
func (a *App) openLedger() (*ledger.Ledger, func(), error) {
	store, closeStore := a.Store, func() error { return nil }
	if store == nil {
		var err error
		store, closeStore, err = bootstrap.OpenStore(a.Config)
		if err != nil {
			return nil, nil, err
		}
	}

	var opts []ledger.Option
	if a.Now != nil {
		opts = append(opts, ledger.WithClock(a.Now))
	}
	l := bootstrap.NewLedger(a.Config, a.Logger, store, opts...)

	return l, func() {
		if err := closeStore(); err != nil {
			a.Logger.WithError(err).Error("Commands.CloseStore.Error")
		}
	}, nil
}

// failf prints a formatted error and returns status.
func (a *App) failf(status subcommands.ExitStatus, format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut(), format+"\n", args...)
	return status
}

// saved reports whether the last mutation reached the store.
func (a *App) saved(l *ledger.Ledger) subcommands.ExitStatus {
	if err := l.PersistErr(); err != nil {
		return a.failf(subcommands.ExitFailure, "Error saving ledger: %v", err)
	}
	return subcommands.ExitSuccess
}

// visited returns the names of the flags set on the command line.
func visited(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}
