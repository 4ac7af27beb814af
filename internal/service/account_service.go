package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/logging"
	"github.com/carson-networks/ledger-engine/internal/operator/actions"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

// AccountService handles account business logic.
type AccountService struct {
	storage   *storage.Storage
	operator  ActionProcessor
	logger    *logrus.Logger
	allocator *domain.AccountNumberAllocator
	clock     func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	store *storage.Storage,
	op ActionProcessor,
	logger *logrus.Logger,
	allocator *domain.AccountNumberAllocator,
	clock func() time.Time,
) *AccountService {
	return &AccountService{
		storage:   store,
		operator:  op,
		logger:    logger,
		allocator: allocator,
		clock:     clock,
	}
}

// CreateAccount allocates a number, hashes the password and persists the account.
func (s *AccountService) CreateAccount(ctx context.Context, create AccountCreate) (*domain.Account, error) {
	var created *domain.Account
	err := logging.LoggingWrapper("AccountService.CreateAccount", s.logger, func(logData *logging.LogData) error {
		logData.AddData("username", create.Username)

		action := &actions.CreateAccount{
			Username:       create.Username,
			Password:       create.Password,
			Name:           create.Name,
			InitialBalance: create.InitialBalance,
			Allocator:      s.allocator,
		}
		if err := s.operator.Process(ctx, action); err != nil {
			return err
		}

		created = action.Created
		logData.AddData("accountNo", created.Number)
		return nil
	})
	return created, err
}

// Authenticate returns the active account for username if password matches.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	var account *domain.Account
	err := logging.LoggingWrapper("AccountService.Authenticate", s.logger, func(logData *logging.LogData) error {
		logData.AddData("username", username)

		a, ok := s.storage.FindByUsername(username)
		if !ok {
			return domain.ErrUnknownUser
		}
		if !a.VerifyPassword(password) {
			return domain.ErrAuthFailed
		}

		account = a
		logData.AddData("accountNo", a.Number)
		return nil
	})
	return account, err
}

// FindByAccountNo returns the active account with the number.
func (s *AccountService) FindByAccountNo(ctx context.Context, accountNo int64) (*domain.Account, error) {
	return s.storage.FindByNumber(accountNo)
}

// Balance returns the stored balance and refreshes the handle with it.
func (s *AccountService) Balance(ctx context.Context, account *domain.Account) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := logging.LoggingWrapper("AccountService.Balance", s.logger, func(logData *logging.LogData) error {
		logData.AddData("accountNo", account.Number)

		current, err := s.storage.FindByNumber(account.Number)
		if err != nil {
			return err
		}

		*account = *current
		balance = current.Balance
		return nil
	})
	return balance, err
}

func (s *AccountService) ChangePassword(ctx context.Context, account *domain.Account, oldPassword, newPassword string) error {
	return logging.LoggingWrapper("AccountService.ChangePassword", s.logger, func(logData *logging.LogData) error {
		logData.AddData("accountNo", account.Number)

		action := &actions.ChangePassword{
			AccountNo:   account.Number,
			OldPassword: oldPassword,
			NewPassword: newPassword,
		}
		if err := s.operator.Process(ctx, action); err != nil {
			return err
		}

		*account = *action.Account
		return nil
	})
}

// CloseAccount removes a zero-balance account and journals the closure.
func (s *AccountService) CloseAccount(ctx context.Context, account *domain.Account) error {
	return logging.LoggingWrapper("AccountService.CloseAccount", s.logger, func(logData *logging.LogData) error {
		logData.AddData("accountNo", account.Number)

		action := &actions.CloseAccount{
			AccountNo: account.Number,
			At:        s.clock(),
		}
		return s.operator.Process(ctx, action)
	})
}

