package main

import (
	"os"

	"github.com/carson-networks/ledger-engine/internal/config"
	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/logging"
	"github.com/carson-networks/ledger-engine/internal/storage"
	"github.com/carson-networks/ledger-engine/internal/storage/account"
	"github.com/carson-networks/ledger-engine/internal/storage/transaction"
)

// reconcile replays the journal against the account snapshot, repairs any
// drift and reports what changed.
func main() {
	logger := logging.SetupLogging()
	logger.SetOutput(os.Stdout)

	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}
	if err := logging.Configure(logger, env.LogLevel, env.LogFormat); err != nil {
		logger.WithError(err).Fatal("logging.Configure")
		return
	}

	before, err := account.NewTable(env.AccountsFile).Load()
	if err != nil {
		logger.WithError(err).Fatal("account.Load")
		return
	}

	records, err := transaction.Collect(transaction.NewJournal(env.TransactionsFile).Scan(nil))
	if err != nil {
		logger.WithError(err).Fatal("transaction.Scan")
		return
	}

	s, err := storage.NewStorage(env, logger)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}

	for _, r := range s.Repairs() {
		logger.WithField("accountNo", r.AccountNo).
			WithField("kind", r.Kind).
			WithField("from", domain.FormatAmount(r.From)).
			WithField("to", domain.FormatAmount(r.To)).
			Info("Repaired")
	}

	logger.WithField("preReconcileAccounts", before.Len()).
		WithField("postReconcileAccounts", len(s.ListAccounts())).
		WithField("journalRecords", len(records)).
		WithField("repairs", len(s.Repairs())).
		Info("Reconcile completed")
}
