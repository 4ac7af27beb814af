package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/carson-networks/ledger-engine/commands"
	"github.com/carson-networks/ledger-engine/internal/config"
	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/logging"
	"github.com/carson-networks/ledger-engine/internal/operator"
	"github.com/carson-networks/ledger-engine/internal/service"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := logging.SetupLogging()

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Error("config.ProcessEnvironmentVariables")
		return 2
	}

	if err := logging.Configure(logger, envConfig.LogLevel, envConfig.LogFormat); err != nil {
		logger.WithError(err).Error("logging.Configure")
		return 2
	}

	fileStorage, err := storage.NewStorage(envConfig, logger)
	if err != nil {
		logger.WithError(err).Error("storage.NewStorage")
		return 1
	}

	op := operator.NewOperatorDelegator(fileStorage, envConfig.OperatorWorkers, envConfig.OperatorQueueSize, logger)
	op.Start()
	defer op.Stop()

	svc := service.NewService(fileStorage, op, logger, service.Options{
		Allocator:         domain.NewAccountNumberAllocator(nil, envConfig.MaxAllocationAttempts),
		MiniStatementSize: envConfig.MiniStatementSize,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := commands.NewApp(svc, os.Stdout)
	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.WithError(err).Error("ledger command failed")
		return 1
	}
	return 0
}
