// Package bootstrap builds the configured store and the ledger on top of it.
package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/jsonfile"
	"github.com/carson-networks/budget-ledger/internal/storage/sqlite"
)

// OpenStore returns the store selected by cfg.Storage and a function that
// releases it.
func OpenStore(cfg *config.Config) (storage.Store, func() error, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverJSON:
		return jsonfile.NewStore(cfg.Storage.Path), func() error { return nil }, nil
	case config.StorageDriverSQLite:
		store, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite.Open: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewLedger constructs the ledger over store with the configured currency and
// display name. Extra options are applied last.
func NewLedger(cfg *config.Config, logger *logrus.Logger, store storage.Store, opts ...ledger.Option) *ledger.Ledger {
	options := []ledger.Option{
		ledger.WithLogger(logger),
		ledger.WithCurrency(cfg.Ledger.Currency),
		ledger.WithDisplayName(cfg.Ledger.DisplayName),
	}
	options = append(options, opts...)

	l := ledger.New(store, options...)
	logger.WithFields(logrus.Fields{
		"driver":   cfg.Storage.Driver,
		"path":     cfg.Storage.Path,
		"currency": l.Currency(),
	}).Debug("Bootstrap.NewLedger.Complete")
	return l
}
