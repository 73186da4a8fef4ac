package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

func TestStore_LoadBeforeSave(t *testing.T) {
	snap, err := NewStore().Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, snap.Accounts)
	assert.Equal(t, 0, NewStore().Saves())
}

func TestStore_SaveIsolatesSnapshots(t *testing.T) {
	store := NewStore()
	snap := storage.NewSnapshot()
	snap.Accounts = append(snap.Accounts, storage.Account{ID: 1, Name: "Cash"})
	snap.Settings["display_name"] = "Acme"

	require.NoError(t, store.Save(context.Background(), snap))
	snap.Accounts[0].Name = "changed after save"
	snap.Settings["display_name"] = "changed after save"

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cash", loaded.Accounts[0].Name)
	assert.Equal(t, "Acme", loaded.Settings["display_name"])
	assert.Equal(t, 1, store.Saves())

	loaded.Accounts[0].Name = "changed after load"
	again, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cash", again.Accounts[0].Name)
}
