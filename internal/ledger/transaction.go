package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EmptyDescription is shown in place of a description the user left blank.
const EmptyDescription = "-"

// Transaction represents a single signed movement against one account.
// A non-negative Amount is income, a negative Amount is an expense.
type Transaction struct {
	ID          int64
	Timestamp   time.Time
	AccountID   int64
	Category    string
	Description string
	Amount      decimal.Decimal
	Currency    string
}

// IsIncome reports whether the transaction counts as income.
func (t Transaction) IsIncome() bool {
	return !t.Amount.IsNegative()
}

// Expense categories offered to callers. The Ledger does not enforce them.
var ExpenseCategories = []string{
	"Transport",
	"Rent",
	"Utilities",
	"Communications/Internet",
	"Other operating expenses",
}

// Income categories offered to callers. The Ledger does not enforce them.
var IncomeCategories = []string{
	"Services rendered",
	"Goods sold",
	"Interest/other income",
	"Other income",
}

// CategoriesFor returns the category list matching the sign of amount.
func CategoriesFor(amount decimal.Decimal) []string {
	if amount.IsNegative() {
		return append([]string(nil), ExpenseCategories...)
	}
	return append([]string(nil), IncomeCategories...)
}

// DefaultCategory is the category a caller should use when the user picked none.
func DefaultCategory(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return ExpenseCategories[0]
	}
	return IncomeCategories[0]
}

// ParseAmount parses a user-typed amount, accepting a comma as the decimal
// separator and spaces as digit grouping.
func ParseAmount(value string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(value), " ", ""), ",", ".")
	return decimal.NewFromString(normalized)
}
