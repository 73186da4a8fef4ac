package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/subcommands"

	"github.com/carson-networks/budget-ledger/api"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/service"
)

type serveCmd struct {
	app  *App
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the JSON HTTP API" }
func (*serveCmd) Usage() string {
	return `budget-ledger serve [-port <port>]

  Serves the ledger over HTTP until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "Listen port, defaults to http.port from the configuration.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	port := c.port
	if port == "" {
		port = c.app.Config.HTTP.Port
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	delegator := operator.NewOperatorDelegator(l)
	delegator.Start()
	defer delegator.Stop()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:         c.app.Logger,
		Port:           port,
		Ledger:         l,
		Service:        service.NewService(l),
		Operator:       delegator,
		ReportFilename: filepath.Base(c.app.Config.Report.Path),
	}
	if err := httpRest.Serve(ctx); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
