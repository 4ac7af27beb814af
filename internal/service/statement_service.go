package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/logging"
	"github.com/carson-networks/ledger-engine/internal/storage"
	"github.com/carson-networks/ledger-engine/internal/storage/transaction"
)

// StatementService rebuilds statements by replaying the journal.
type StatementService struct {
	storage  *storage.Storage
	logger   *logrus.Logger
	miniSize int
}

func NewStatementService(store *storage.Storage, logger *logrus.Logger, miniSize int) *StatementService {
	return &StatementService{
		storage:  store,
		logger:   logger,
		miniSize: miniSize,
	}
}

// MiniStatement returns the account's most recent records, oldest first.
// It returns domain.ErrNoHistory when the account has none.
func (s *StatementService) MiniStatement(ctx context.Context, account *domain.Account) ([]domain.Transaction, error) {
	var recent []domain.Transaction
	err := logging.LoggingWrapper("StatementService.MiniStatement", s.logger, func(logData *logging.LogData) error {
		logData.AddData("accountNo", account.Number)

		endScan := logData.AddTiming("scan")
		defer endScan()

		// ring holds the last miniSize records; next is the oldest slot once full.
		ring := make([]domain.Transaction, 0, s.miniSize)
		next := 0
		for record, err := range s.storage.ScanTransactions(transaction.ForAccount(account.Number)) {
			if err != nil {
				return err
			}
			if len(ring) < s.miniSize {
				ring = append(ring, record)
				continue
			}
			ring[next] = record
			next = (next + 1) % s.miniSize
		}

		recent = append(ring[next:], ring[:next]...)
		logData.AddData("records", len(recent))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, domain.ErrNoHistory
	}
	return recent, nil
}

// MonthlyStatement returns the account's activity for the calendar month.
// It returns domain.ErrNoActivity when the month has no records.
func (s *StatementService) MonthlyStatement(ctx context.Context, account *domain.Account, month time.Month, year int) (*MonthlyStatement, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", domain.ErrInvalidPeriod, month)
	}

	var statement *MonthlyStatement
	err := logging.LoggingWrapper("StatementService.MonthlyStatement", s.logger, func(logData *logging.LogData) error {
		logData.AddData("accountNo", account.Number)
		logData.AddData("period", fmt.Sprintf("%04d-%02d", year, int(month)))

		endScan := logData.AddTiming("scan")
		records, err := transaction.Collect(s.storage.ScanTransactions(transaction.And(
			transaction.ForAccount(account.Number),
			transaction.InPeriod(year, month),
		)))
		endScan()
		if err != nil {
			return err
		}

		logData.AddData("records", len(records))
		if len(records) == 0 {
			return nil
		}

		statement = buildMonthlyStatement(account.Number, year, month, records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if statement == nil {
		return nil, domain.ErrNoActivity
	}
	return statement, nil
}

func buildMonthlyStatement(accountNo int64, year int, month time.Month, records []domain.Transaction) *MonthlyStatement {
	statement := &MonthlyStatement{
		AccountNo:      accountNo,
		Year:           year,
		Month:          month,
		OpeningBalance: records[0].OpeningBalance(),
		ClosingBalance: records[len(records)-1].ResultingBalance,
		TotalCredits:   decimal.Zero,
		TotalDebits:    decimal.Zero,
		Records:        records,
	}

	for _, r := range records {
		switch r.Type {
		case domain.TransactionTypeCredit:
			statement.TotalCredits = statement.TotalCredits.Add(r.Amount)
		case domain.TransactionTypeDebit:
			statement.TotalDebits = statement.TotalDebits.Add(r.Amount)
		}
	}
	return statement
}
