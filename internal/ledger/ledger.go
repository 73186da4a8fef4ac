package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

const (
	DefaultCurrency    = "RUB"
	DefaultDisplayName = "Company"

	// SettingDisplayName is the settings key holding the ledger's display name.
	SettingDisplayName = "display_name"
	// settingUserName is the older key for the display name, read when
	// SettingDisplayName is absent.
	settingUserName = "user_name"

	// DefaultAccountType labels accounts created without a type, including
	// the seeded one.
	DefaultAccountType = "Card"

	seedAccountName = "Current account"
)

// Ledger owns every account and transaction, issues identifiers, computes
// balances, and persists its full state after each mutation.
type Ledger struct {
	mu       sync.RWMutex
	store    storage.Store
	logger   *logrus.Logger
	now      func() time.Time
	currency string

	accounts     []Account
	transactions []Transaction
	settings     map[string]string

	nextAccountID     int64
	nextTransactionID int64

	saves      uint64
	persistErr error
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *logrus.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithClock replaces time.Now as the source of default timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithCurrency sets the base currency. Defaults to DefaultCurrency.
func WithCurrency(currency string) Option {
	return func(l *Ledger) {
		l.currency = currency
	}
}

// WithDisplayName sets the display name used until a persisted one is loaded.
func WithDisplayName(name string) Option {
	return func(l *Ledger) {
		l.settings[SettingDisplayName] = name
	}
}

// New constructs a Ledger backed by store and loads the persisted state.
// A load failure is logged and the Ledger starts empty. When no account exists
// after loading, a default account is created and persisted.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:             store,
		logger:            logrus.StandardLogger(),
		now:               time.Now,
		currency:          DefaultCurrency,
		accounts:          []Account{},
		transactions:      []Transaction{},
		settings:          map[string]string{SettingDisplayName: DefaultDisplayName},
		nextAccountID:     1,
		nextTransactionID: 1,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.load()
	if len(l.accounts) == 0 {
		l.logger.WithField("currency", l.currency).Info("Ledger.New.seedAccount")
		l.AddAccount(seedAccountName, DefaultAccountType, l.currency, decimal.Zero)
	}
	return l
}

func (l *Ledger) load() {
	snap, err := l.store.Load(context.Background())
	if err != nil {
		l.logger.WithError(err).Error("Ledger.Load.Error")
		return
	}
	if snap == nil {
		return
	}

	accounts := make([]Account, 0, len(snap.Accounts))
	for _, row := range snap.Accounts {
		accounts = append(accounts, l.accountFromStorage(row))
	}
	transactions := make([]Transaction, 0, len(snap.Transactions))
	for _, row := range snap.Transactions {
		transactions = append(transactions, l.transactionFromStorage(row))
	}

	l.accounts = accounts
	l.transactions = transactions
	for key, value := range snap.Settings {
		l.settings[key] = value
	}
	if _, ok := snap.Settings[SettingDisplayName]; !ok {
		if name, ok := snap.Settings[settingUserName]; ok {
			l.settings[SettingDisplayName] = name
		}
	}
	l.nextAccountID = nextAccountID(accounts)
	l.nextTransactionID = nextTransactionID(transactions)

	l.logger.WithFields(logrus.Fields{
		"accounts":     len(accounts),
		"transactions": len(transactions),
	}).Debug("Ledger.Load.Complete")
}

// persist writes the full state. Callers must hold l.mu for writing.
func (l *Ledger) persist() {
	err := l.store.Save(context.Background(), l.snapshot())
	l.saves++
	l.persistErr = err
	if err != nil {
		l.logger.WithError(err).Error("Ledger.Save.Error")
	}
}

func (l *Ledger) snapshot() *storage.Snapshot {
	snap := &storage.Snapshot{
		Accounts:     make([]storage.Account, len(l.accounts)),
		Transactions: make([]storage.Transaction, len(l.transactions)),
		Settings:     make(map[string]string, len(l.settings)),
	}
	for i, account := range l.accounts {
		snap.Accounts[i] = accountToStorage(account)
	}
	for i, transaction := range l.transactions {
		snap.Transactions[i] = transactionToStorage(transaction)
	}
	for key, value := range l.settings {
		snap.Settings[key] = value
	}
	return snap
}

// PersistErr returns the error of the most recent save, or nil if it succeeded.
func (l *Ledger) PersistErr() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.persistErr
}

// LastSave returns how many saves have been attempted and the error of the
// most recent one. A mutation that found nothing to change leaves both as
// they were.
func (l *Ledger) LastSave() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.saves, l.persistErr
}

// Currency returns the ledger's base currency.
func (l *Ledger) Currency() string {
	return l.currency
}

// DisplayName returns the display-name setting.
func (l *Ledger) DisplayName() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if name, ok := l.settings[SettingDisplayName]; ok {
		return name
	}
	return DefaultDisplayName
}

// SetDisplayName updates the display-name setting and persists.
func (l *Ledger) SetDisplayName(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings[SettingDisplayName] = name
	l.persist()
}

// Settings returns a copy of the settings map.
func (l *Ledger) Settings() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	settings := make(map[string]string, len(l.settings))
	for key, value := range l.settings {
		settings[key] = value
	}
	return settings
}

// -- Accounts --

// AddAccount creates an account with the next identifier and persists.
func (l *Ledger) AddAccount(name, accountType, currency string, initialBalance decimal.Decimal) Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	account := Account{
		ID:             l.nextAccountID,
		Name:           name,
		Type:           accountType,
		Currency:       currency,
		InitialBalance: initialBalance,
	}
	l.accounts = append(l.accounts, account)
	l.nextAccountID++
	l.persist()
	return account
}

// UpdateAccount replaces the mutable fields of an account. Unknown ids are ignored.
func (l *Ledger) UpdateAccount(id int64, name, accountType string, initialBalance decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.accountIndex(id)
	if i < 0 {
		l.logger.WithField("accountID", id).Debug("Ledger.UpdateAccount.notFound")
		return
	}
	l.accounts[i].Name = name
	l.accounts[i].Type = accountType
	l.accounts[i].InitialBalance = initialBalance
	l.persist()
}

// GetAccount returns the account with the given id.
func (l *Ledger) GetAccount(id int64) (Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.accountIndex(id)
	if i < 0 {
		return Account{}, false
	}
	return l.accounts[i], true
}

// ListAccounts returns all accounts in insertion order.
func (l *Ledger) ListAccounts() []Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Account(nil), l.accounts...)
}

// AccountBalance returns the initial balance plus every transaction booked
// against the account in the account's currency. Unknown accounts yield zero.
func (l *Ledger) AccountBalance(id int64) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accountBalance(id)
}

// OverallBalance is the sum of every account balance.
func (l *Ledger) OverallBalance() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, account := range l.accounts {
		total = total.Add(l.accountBalance(account.ID))
	}
	return total
}

func (l *Ledger) accountBalance(id int64) decimal.Decimal {
	i := l.accountIndex(id)
	if i < 0 {
		return decimal.Zero
	}
	account := l.accounts[i]

	total := account.InitialBalance
	for _, transaction := range l.transactions {
		if transaction.AccountID == id && transaction.Currency == account.Currency {
			total = total.Add(transaction.Amount)
		}
	}
	return total
}

func (l *Ledger) accountIndex(id int64) int {
	for i, account := range l.accounts {
		if account.ID == id {
			return i
		}
	}
	return -1
}

// -- Transactions --

// AddTransaction records a movement against accountID and persists. A zero
// timestamp means now. The account is not required to exist.
func (l *Ledger) AddTransaction(accountID int64, amount decimal.Decimal, category, description string, timestamp time.Time) Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	if timestamp.IsZero() {
		timestamp = l.now()
	}
	transaction := Transaction{
		ID:          l.nextTransactionID,
		Timestamp:   timestamp,
		AccountID:   accountID,
		Category:    category,
		Description: description,
		Amount:      amount,
		Currency:    l.currency,
	}
	l.transactions = append(l.transactions, transaction)
	l.nextTransactionID++
	l.persist()
	return transaction
}

// UpdateTransaction replaces every mutable field except the timestamp and
// currency. Unknown ids are ignored.
func (l *Ledger) UpdateTransaction(id, accountID int64, amount decimal.Decimal, category, description string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.transactionIndex(id)
	if i < 0 {
		l.logger.WithField("transactionID", id).Debug("Ledger.UpdateTransaction.notFound")
		return
	}
	l.transactions[i].AccountID = accountID
	l.transactions[i].Amount = amount
	l.transactions[i].Category = category
	l.transactions[i].Description = description
	l.persist()
}

// DeleteTransaction removes the transaction with the given id, if any, and persists.
func (l *Ledger) DeleteTransaction(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.transactions[:0:0]
	for _, transaction := range l.transactions {
		if transaction.ID != id {
			kept = append(kept, transaction)
		}
	}
	l.transactions = kept
	l.persist()
}

// GetTransaction returns the transaction with the given id.
func (l *Ledger) GetTransaction(id int64) (Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.transactionIndex(id)
	if i < 0 {
		return Transaction{}, false
	}
	return l.transactions[i], true
}

// ListTransactions returns every transaction, newest first. Transactions with
// equal timestamps keep their insertion order.
func (l *Ledger) ListTransactions() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedTransactions(func(Transaction) bool { return true })
}

// ListTransactionsForAccount is ListTransactions restricted to one account.
func (l *Ledger) ListTransactionsForAccount(accountID int64) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedTransactions(func(t Transaction) bool { return t.AccountID == accountID })
}

func (l *Ledger) sortedTransactions(keep func(Transaction) bool) []Transaction {
	result := make([]Transaction, 0, len(l.transactions))
	for _, transaction := range l.transactions {
		if keep(transaction) {
			result = append(result, transaction)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result
}

func (l *Ledger) transactionIndex(id int64) int {
	for i, transaction := range l.transactions {
		if transaction.ID == id {
			return i
		}
	}
	return -1
}

func nextAccountID(accounts []Account) int64 {
	var highest int64
	for _, account := range accounts {
		if account.ID > highest {
			highest = account.ID
		}
	}
	return highest + 1
}

func nextTransactionID(transactions []Transaction) int64 {
	var highest int64
	for _, transaction := range transactions {
		if transaction.ID > highest {
			highest = transaction.ID
		}
	}
	return highest + 1
}
