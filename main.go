package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/commands"
	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLoggingWithLevel(envConfig.Log.Level)
	// stdout belongs to command output
	logger.Out = os.Stderr
	logger.WithField("driver", envConfig.Storage.Driver).Debug("budget-ledger starting")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commands.Register(commander, &commands.App{
		Config: envConfig,
		Logger: logger,
	})

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
