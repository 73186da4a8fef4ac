package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/carson-networks/budget-ledger/internal/report"
)

type exportCmd struct {
	app  *App
	path string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write every transaction to a semicolon-delimited report" }
func (*exportCmd) Usage() string {
	return `budget-ledger export [-o <path>]

  Writes the report to -o, or to report.path from the configuration.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "o", "", "Output file.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := c.path
	if path == "" {
		path = c.app.Config.Report.Path
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	if err := report.ExportFile(l, path); err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error exporting report: %v", err)
	}

	c.app.Logger.WithField("path", path).Info("Commands.Export.Complete")
	fmt.Fprintf(c.app.out(), "Report written to %s\n", path)
	return subcommands.ExitSuccess
}
