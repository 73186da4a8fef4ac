package commands

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/google/subcommands"

	"github.com/carson-networks/budget-ledger/internal/service"
)

const monthLayout = "2006-01"

type summaryCmd struct {
	app   *App
	month string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show income, expense and category totals for a month" }
func (*summaryCmd) Usage() string {
	return `budget-ledger summary [-month YYYY-MM]
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to summarize, defaults to the current month.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reference := c.app.now()
	if c.month != "" {
		var err error
		if reference, err = time.ParseInLocation(monthLayout, c.month, time.Local); err != nil {
			return c.app.failf(subcommands.ExitUsageError, "Invalid month %q: %v", c.month, err)
		}
	}

	l, closeLedger, err := c.app.openLedger()
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error opening ledger: %v", err)
	}
	defer closeLedger()

	summary, err := service.NewSummaryService(l).MonthSummary(ctx, reference)
	if err != nil {
		return c.app.failf(subcommands.ExitFailure, "Error summarizing month: %v", err)
	}

	out := c.app.out()
	fmt.Fprintf(out, "%s, %s\n", summary.DisplayName, summary.Month.Format(monthLayout))
	fmt.Fprintf(out, "Income:  %s\n", formatMoney(summary.Income, summary.Currency))
	fmt.Fprintf(out, "Expense: %s\n", formatMoney(summary.Expense, summary.Currency))
	fmt.Fprintf(out, "Net:     %s\n", formatMoney(summary.Net(), summary.Currency))

	categories := make([]string, 0, len(summary.ByCategory))
	for category := range summary.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(out, "  %s: %s\n", category, formatMoney(summary.ByCategory[category], summary.Currency))
	}
	if top, total, ok := summary.TopCategory(); ok {
		fmt.Fprintf(out, "Top category: %s (%s)\n", top, formatMoney(total, summary.Currency))
	}

	fmt.Fprintf(out, "Overall balance: %s\n", formatMoney(summary.OverallBalance, summary.Currency))
	return subcommands.ExitSuccess
}
