package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

func TestMonthSummary(t *testing.T) {
	l := newTestLedger(t)
	l.UpdateAccount(1, "Current account", "Card", decimal.NewFromInt(1000))
	l.AddTransaction(1, decimal.NewFromInt(500), "Services rendered", "-", time.Time{})
	l.AddTransaction(1, decimal.NewFromInt(-200), "Rent", "-", time.Time{})
	l.AddTransaction(1, decimal.NewFromInt(-50), "Transport", "-", testNow.AddDate(0, -1, 0))

	summary, err := NewSummaryService(l).MonthSummary(context.Background(), testNow)

	require.NoError(t, err)
	assert.True(t, summary.Income.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.Expense.Equal(decimal.NewFromInt(-200)))
	assert.True(t, summary.OverallBalance.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), summary.Month)
	assert.Equal(t, ledger.DefaultCurrency, summary.Currency)
	assert.Equal(t, ledger.DefaultDisplayName, summary.DisplayName)
}
