package operator

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/memory"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func startDelegator(t *testing.T, store storage.Store) (*OperatorDelegator, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(store, ledger.WithLogger(quietLogger()))
	d := NewOperatorDelegator(l)
	d.Start()
	t.Cleanup(d.Stop)
	return d, l
}

type failingAction struct {
	err error
}

func (f failingAction) Perform(context.Context, *ledger.Ledger) error { return f.err }

func TestProcess_CreateAccountAndTransaction(t *testing.T) {
	d, l := startDelegator(t, memory.NewStore())

	createAccount := &actions.CreateAccount{Name: "Savings", Type: "Deposit", InitialBalance: decimal.NewFromInt(100)}
	require.NoError(t, d.Process(context.Background(), createAccount))
	assert.Equal(t, int64(2), createAccount.Created.ID)
	assert.Equal(t, ledger.DefaultCurrency, createAccount.Created.Currency, "empty currency means the base currency")

	createTransaction := &actions.CreateTransaction{
		AccountID: createAccount.Created.ID, Amount: decimal.NewFromInt(-30), Category: "Rent", Description: "-",
	}
	require.NoError(t, d.Process(context.Background(), createTransaction))
	assert.Equal(t, int64(1), createTransaction.Created.ID)
	assert.True(t, l.AccountBalance(createAccount.Created.ID).Equal(decimal.NewFromInt(70)))
}

func TestProcess_UpdateAndDelete(t *testing.T) {
	d, l := startDelegator(t, memory.NewStore())
	created := &actions.CreateTransaction{AccountID: 1, Amount: decimal.NewFromInt(5), Category: "Goods sold", Description: "a"}
	require.NoError(t, d.Process(context.Background(), created))

	require.NoError(t, d.Process(context.Background(), &actions.UpdateTransaction{
		ID: created.Created.ID, AccountID: 1, Amount: decimal.NewFromInt(8), Category: "Goods sold", Description: "b",
	}))
	updated, ok := l.GetTransaction(created.Created.ID)
	require.True(t, ok)
	assert.Equal(t, "b", updated.Description)

	require.NoError(t, d.Process(context.Background(), &actions.UpdateAccount{ID: 1, Name: "Main", Type: "Card", InitialBalance: decimal.NewFromInt(1)}))
	account, _ := l.GetAccount(1)
	assert.Equal(t, "Main", account.Name)

	require.NoError(t, d.Process(context.Background(), &actions.SetDisplayName{Name: "Acme"}))
	assert.Equal(t, "Acme", l.DisplayName())

	require.NoError(t, d.Process(context.Background(), &actions.DeleteTransaction{ID: created.Created.ID}))
	_, ok = l.GetTransaction(created.Created.ID)
	assert.False(t, ok)
}

func TestProcess_UnknownIDsIgnoreEarlierSaveFailure(t *testing.T) {
	store := storage.NewMockStore(t)
	store.EXPECT().Load(mock.Anything).Return(storage.NewSnapshot(), nil)
	store.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	store.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	store.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	d, l := startDelegator(t, store)

	err := d.Process(context.Background(), &actions.CreateAccount{Name: "Savings", Type: "Deposit", InitialBalance: decimal.Zero})
	require.ErrorIs(t, err, ErrNotPersisted)

	assert.NoError(t, d.Process(context.Background(), &actions.UpdateTransaction{
		ID: 999, AccountID: 1, Amount: decimal.NewFromInt(1), Category: "Goods sold", Description: "-",
	}))
	assert.NoError(t, d.Process(context.Background(), &actions.UpdateAccount{ID: 42, Name: "Ghost", Type: "Card", InitialBalance: decimal.Zero}))
	assert.Error(t, l.PersistErr(), "no-ops do not clear the last save error")

	assert.NoError(t, d.Process(context.Background(), &actions.UpdateAccount{ID: 2, Name: "Deposit", Type: "Deposit", InitialBalance: decimal.Zero}))
	assert.NoError(t, l.PersistErr())
}

func TestProcess_ConcurrentCallersGetDistinctIDs(t *testing.T) {
	d, l := startDelegator(t, memory.NewStore())

	const callers = 50
	created := make([]*actions.CreateTransaction, callers)
	var wg sync.WaitGroup
	for i := range created {
		created[i] = &actions.CreateTransaction{AccountID: 1, Amount: decimal.NewFromInt(1), Category: "Goods sold", Description: "-"}
		wg.Add(1)
		go func(action *actions.CreateTransaction) {
			defer wg.Done()
			assert.NoError(t, d.Process(context.Background(), action))
		}(created[i])
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, action := range created {
		assert.False(t, seen[action.Created.ID], "duplicate id %d", action.Created.ID)
		seen[action.Created.ID] = true
	}
	assert.Len(t, l.ListTransactions(), callers)
	assert.True(t, l.AccountBalance(1).Equal(decimal.NewFromInt(callers)))
}

func TestProcess_ActionError(t *testing.T) {
	d, _ := startDelegator(t, memory.NewStore())
	actionErr := errors.New("rejected")

	err := d.Process(context.Background(), failingAction{err: actionErr})

	assert.ErrorIs(t, err, actionErr)
}

func TestProcess_SaveFailureIsReported(t *testing.T) {
	store := storage.NewMockStore(t)
	store.EXPECT().Load(mock.Anything).Return(storage.NewSnapshot(), nil)
	store.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	store.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	d, l := startDelegator(t, store)

	action := &actions.CreateTransaction{AccountID: 1, Amount: decimal.NewFromInt(1), Category: "Goods sold", Description: "-"}
	err := d.Process(context.Background(), action)

	assert.ErrorIs(t, err, ErrNotPersisted)
	assert.ErrorContains(t, err, "disk full")
	_, ok := l.GetTransaction(action.Created.ID)
	assert.True(t, ok)
}

func TestStop_IsIdempotent(t *testing.T) {
	d, _ := startDelegator(t, memory.NewStore())
	d.Stop()
	d.Stop()
}
