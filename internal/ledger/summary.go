package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthSummary aggregates the transactions of one calendar month.
// Expense is the sum of negative amounts and is never positive.
type MonthSummary struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	ByCategory map[string]decimal.Decimal
}

// Net is income plus expense.
func (s MonthSummary) Net() decimal.Decimal {
	return s.Income.Add(s.Expense)
}

// IsEmpty reports whether the month had no movement at all.
func (s MonthSummary) IsEmpty() bool {
	return s.Income.IsZero() && s.Expense.IsZero()
}

// TopCategory returns the category with the largest absolute total.
// Ties go to the alphabetically first label.
func (s MonthSummary) TopCategory() (string, decimal.Decimal, bool) {
	var (
		name  string
		total decimal.Decimal
		found bool
	)
	for category, amount := range s.ByCategory {
		cmp := amount.Abs().Cmp(total.Abs())
		if !found || cmp > 0 || (cmp == 0 && category < name) {
			name, total, found = category, amount, true
		}
	}
	return name, total, found
}

// MonthSummary aggregates every transaction dated in the same calendar year
// and month as reference, evaluated in reference's location. Zero amounts
// count as income.
func (l *Ledger) MonthSummary(reference time.Time) MonthSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summary := MonthSummary{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: map[string]decimal.Decimal{},
	}
	year, month, _ := reference.Date()
	for _, transaction := range l.transactions {
		y, m, _ := transaction.Timestamp.In(reference.Location()).Date()
		if y != year || m != month {
			continue
		}
		if transaction.IsIncome() {
			summary.Income = summary.Income.Add(transaction.Amount)
		} else {
			summary.Expense = summary.Expense.Add(transaction.Amount)
		}
		summary.ByCategory[transaction.Category] = summary.ByCategory[transaction.Category].Add(transaction.Amount)
	}
	return summary
}

// CurrentMonthSummary is MonthSummary for the ledger clock's current month.
func (l *Ledger) CurrentMonthSummary() MonthSummary {
	return l.MonthSummary(l.now())
}
