package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/logging"
	"github.com/carson-networks/ledger-engine/internal/operator/actions"
)

// TransactionService handles balance movements.
type TransactionService struct {
	operator ActionProcessor
	logger   *logrus.Logger
	clock    func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(op ActionProcessor, logger *logrus.Logger, clock func() time.Time) *TransactionService {
	return &TransactionService{
		operator: op,
		logger:   logger,
		clock:    clock,
	}
}

// Credit adds amount to the account and journals it. The handle is refreshed on success.
func (s *TransactionService) Credit(ctx context.Context, account *domain.Account, amount decimal.Decimal) error {
	return logging.LoggingWrapper("TransactionService.Credit", s.logger, func(logData *logging.LogData) error {
		logData.AddData("accountNo", account.Number)
		logData.AddData("amount", domain.FormatAmount(amount))

		action := &actions.Credit{
			AccountNo: account.Number,
			Amount:    amount,
			At:        s.clock(),
		}
		if err := s.operator.Process(ctx, action); err != nil {
			return err
		}

		*account = *action.Account
		logData.AddData("balance", domain.FormatAmount(account.Balance))
		return nil
	})
}

// Debit removes amount from the account and journals it. The handle is refreshed on success.
func (s *TransactionService) Debit(ctx context.Context, account *domain.Account, amount decimal.Decimal) error {
	return logging.LoggingWrapper("TransactionService.Debit", s.logger, func(logData *logging.LogData) error {
		logData.AddData("accountNo", account.Number)
		logData.AddData("amount", domain.FormatAmount(amount))

		action := &actions.Debit{
			AccountNo: account.Number,
			Amount:    amount,
			At:        s.clock(),
		}
		if err := s.operator.Process(ctx, action); err != nil {
			return err
		}

		*account = *action.Account
		logData.AddData("balance", domain.FormatAmount(account.Balance))
		return nil
	})
}

// Transfer moves amount from sender to receiver in one commit: a debit record
// for the sender followed by a credit record for the receiver. Either both
// balances change or neither does.
func (s *TransactionService) Transfer(ctx context.Context, sender, receiver *domain.Account, amount decimal.Decimal) error {
	return logging.LoggingWrapper("TransactionService.Transfer", s.logger, func(logData *logging.LogData) error {
		logData.AddData("fromAccountNo", sender.Number)
		logData.AddData("toAccountNo", receiver.Number)
		logData.AddData("amount", domain.FormatAmount(amount))

		if sender.Number == receiver.Number {
			return domain.ErrSameAccount
		}

		action := &actions.Transfer{
			FromAccountNo: sender.Number,
			ToAccountNo:   receiver.Number,
			Amount:        amount,
			At:            s.clock(),
		}
		if err := s.operator.Process(ctx, action); err != nil {
			return err
		}

		*sender = *action.From
		*receiver = *action.To
		return nil
	})
}
