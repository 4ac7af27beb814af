package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/operator/actions"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

const DefaultMiniStatementSize = 10

// ActionProcessor runs a mutating action to commit or rollback.
// *operator.OperatorDelegator satisfies it.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options tunes the engine. Zero values select the defaults.
type Options struct {
	Allocator         *domain.AccountNumberAllocator
	Clock             func() time.Time
	MiniStatementSize int
}

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Statement   *StatementService
}

// NewService creates a new Service over the given storage. Mutations are
// routed through op; reads go straight to storage.
func NewService(store *storage.Storage, op ActionProcessor, logger *logrus.Logger, opts Options) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if opts.Allocator == nil {
		opts.Allocator = domain.NewAccountNumberAllocator(nil, domain.DefaultMaxAllocationAttempts)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.MiniStatementSize < 1 {
		opts.MiniStatementSize = DefaultMiniStatementSize
	}

	return &Service{
		Account:     NewAccountService(store, op, logger, opts.Allocator, opts.Clock),
		Transaction: NewTransactionService(op, logger, opts.Clock),
		Statement:   NewStatementService(store, logger, opts.MiniStatementSize),
	}
}
