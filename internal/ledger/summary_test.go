package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/storage/memory"
)

func TestMonthSummary_EndToEnd(t *testing.T) {
	store := memory.NewStore()
	l := newTestLedger(t, store)
	l.UpdateAccount(1, "Current account", "Card", dec("1000"))
	l.AddTransaction(1, dec("500"), "Services rendered", "invoice #1", time.Time{})
	l.AddTransaction(1, dec("-200"), "Rent", "March rent", time.Time{})

	assert.True(t, l.AccountBalance(1).Equal(dec("1300")))

	summary := l.CurrentMonthSummary()
	assert.True(t, summary.Income.Equal(dec("500")))
	assert.True(t, summary.Expense.Equal(dec("-200")))
	assert.True(t, summary.Net().Equal(dec("300")))
	require.Len(t, summary.ByCategory, 2)
	assert.True(t, summary.ByCategory["Services rendered"].Equal(dec("500")))
	assert.True(t, summary.ByCategory["Rent"].Equal(dec("-200")))

	reloaded := newTestLedger(t, store)
	assert.True(t, reloaded.AccountBalance(1).Equal(dec("1300")))
	assert.True(t, reloaded.CurrentMonthSummary().Income.Equal(dec("500")))
}

func TestMonthSummary_OnlyCountsReferenceMonth(t *testing.T) {
	l := newTestLedger(t, memory.NewStore())
	l.AddTransaction(1, dec("100"), "Goods sold", "-", time.Date(2025, time.February, 28, 23, 59, 0, 0, time.UTC))
	l.AddTransaction(1, dec("40"), "Goods sold", "-", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	l.AddTransaction(1, dec("-15"), "Transport", "-", time.Date(2025, time.March, 31, 18, 0, 0, 0, time.UTC))
	l.AddTransaction(1, dec("7"), "Goods sold", "-", time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))

	march := l.MonthSummary(time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC))
	assert.True(t, march.Income.Equal(dec("40")))
	assert.True(t, march.Expense.Equal(dec("-15")))

	february := l.MonthSummary(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, february.Income.Equal(dec("100")))
	assert.True(t, february.Expense.IsZero())
	assert.Len(t, february.ByCategory, 1)
}

func TestMonthSummary_UsesReferenceLocation(t *testing.T) {
	l := newTestLedger(t, memory.NewStore())
	// 23:30 UTC on March 31st is already April 1st three hours east
	l.AddTransaction(1, dec("10"), "Goods sold", "-", time.Date(2025, time.March, 31, 23, 30, 0, 0, time.UTC))

	east := time.FixedZone("UTC+3", 3*60*60)
	assert.True(t, l.MonthSummary(time.Date(2025, time.April, 5, 0, 0, 0, 0, east)).Income.Equal(dec("10")))
	assert.True(t, l.MonthSummary(time.Date(2025, time.March, 5, 0, 0, 0, 0, east)).IsEmpty())
}

func TestMonthSummary_ZeroAmountCountsAsIncome(t *testing.T) {
	l := newTestLedger(t, memory.NewStore())
	l.AddTransaction(1, decimal.Zero, "Other income", "-", time.Time{})

	summary := l.CurrentMonthSummary()
	assert.True(t, summary.IsEmpty())
	_, ok := summary.ByCategory["Other income"]
	assert.True(t, ok)
}

func TestMonthSummary_Empty(t *testing.T) {
	l := newTestLedger(t, memory.NewStore())

	summary := l.CurrentMonthSummary()
	assert.True(t, summary.IsEmpty())
	assert.NotNil(t, summary.ByCategory)
	_, _, ok := summary.TopCategory()
	assert.False(t, ok)
}

func TestTopCategory(t *testing.T) {
	summary := MonthSummary{ByCategory: map[string]decimal.Decimal{
		"Goods sold": dec("120"),
		"Rent":       dec("-300"),
		"Transport":  dec("-20"),
	}}

	name, total, ok := summary.TopCategory()
	require.True(t, ok)
	assert.Equal(t, "Rent", name)
	assert.True(t, total.Equal(dec("-300")))
}

func TestTopCategory_TiesGoToFirstLabel(t *testing.T) {
	summary := MonthSummary{ByCategory: map[string]decimal.Decimal{
		"Utilities":  dec("-50"),
		"Goods sold": dec("50"),
		"Rent":       dec("-50"),
	}}

	name, _, ok := summary.TopCategory()
	require.True(t, ok)
	assert.Equal(t, "Goods sold", name)
}

func TestCategoriesFor(t *testing.T) {
	assert.Equal(t, ExpenseCategories, CategoriesFor(dec("-1")))
	assert.Equal(t, IncomeCategories, CategoriesFor(decimal.Zero))
	assert.Equal(t, "Transport", DefaultCategory(dec("-0.01")))
	assert.Equal(t, "Services rendered", DefaultCategory(dec("5")))

	categories := CategoriesFor(dec("1"))
	categories[0] = "changed"
	assert.Equal(t, "Services rendered", IncomeCategories[0])
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1500":       "1500",
		"-200,50":    "-200.5",
		" 1 234,5 ":  "1234.5",
		"0.01":       "0.01",
		"-1 000 000": "-1000000",
	}
	for input, want := range cases {
		got, err := ParseAmount(input)
		require.NoError(t, err, input)
		assert.True(t, got.Equal(dec(want)), "%q parsed as %s", input, got)
	}

	_, err := ParseAmount("twelve")
	assert.Error(t, err)
	_, err = ParseAmount("")
	assert.Error(t, err)
}
