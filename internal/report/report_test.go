package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledger"
)

type fakeSource struct {
	accounts     []ledger.Account
	transactions []ledger.Transaction
}

func (f fakeSource) ListAccounts() []ledger.Account         { return f.accounts }
func (f fakeSource) ListTransactions() []ledger.Transaction { return f.transactions }

func testSource() fakeSource {
	return fakeSource{
		accounts: []ledger.Account{{ID: 1, Name: "Current account", Type: "Card", Currency: "RUB"}},
		transactions: []ledger.Transaction{
			{
				ID: 2, Timestamp: time.Date(2025, time.March, 4, 18, 5, 59, 0, time.UTC), AccountID: 1,
				Category: "Rent", Description: "office; March", Amount: decimal.RequireFromString("-200.50"), Currency: "RUB",
			},
			{
				ID: 1, Timestamp: time.Date(2025, time.March, 3, 9, 30, 0, 0, time.UTC), AccountID: 9,
				Category: "Services rendered", Description: "invoice", Amount: decimal.RequireFromString("500"), Currency: "RUB",
			},
		},
	}
}

func TestExportTransactions(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, ExportTransactions(testSource(), &buf))

	content := buf.String()
	require.True(t, strings.HasPrefix(content, byteOrderMark), "report starts with a byte-order mark")
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(content, byteOrderMark), "\n"), "\n")
	assert.Equal(t, []string{
		"ID;Date;Account;Category;Description;Amount;Currency",
		"2;2025-03-04 18:05;Current account;Rent;office, March;-200.5;RUB",
		"1;2025-03-03 09:30;?;Services rendered;invoice;500;RUB",
	}, lines)
}

func TestExportTransactions_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, ExportTransactions(fakeSource{}, &buf))

	assert.Equal(t, byteOrderMark+"ID;Date;Account;Category;Description;Amount;Currency\n", buf.String())
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than nothing"), 0o644))

	require.NoError(t, ExportFile(testSource(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), byteOrderMark+"ID;Date;"))
	assert.NotContains(t, string(content), "stale")
}

func TestExportFile_BadPath(t *testing.T) {
	err := ExportFile(testSource(), filepath.Join(t.TempDir(), "missing", "report.csv"))
	assert.Error(t, err)
}

func TestEscapeDescription(t *testing.T) {
	assert.Equal(t, "a, b, c", EscapeDescription("a; b; c"))
	assert.Equal(t, "plain", EscapeDescription("plain"))
}
