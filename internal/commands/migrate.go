package commands

import (
	"context"
	"database/sql"
	"flag"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/storage/sqlite"
)

type migrateCmd struct {
	app *App
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending SQLite schema migrations" }
func (*migrateCmd) Usage() string {
	return `budget-ledger migrate

  Only meaningful with storage.driver=sqlite.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.app.Config.Storage.Driver != config.StorageDriverSQLite {
		return c.app.failf(subcommands.ExitUsageError, "migrate requires storage.driver=%s", config.StorageDriverSQLite)
	}

	db, err := sql.Open(sqlite.DriverName, c.app.Config.Storage.Path)
	if err != nil {
		c.app.Logger.WithError(err).Error("sql.Open")
		return subcommands.ExitFailure
	}
	defer db.Close()

	preMigrationVersion, postMigrationVersion, err := sqlite.Migrate(db)
	if err != nil {
		c.app.Logger.WithError(err).Error("sqlite.Migrate")
		return subcommands.ExitFailure
	}

	c.app.Logger.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
	return subcommands.ExitSuccess
}
