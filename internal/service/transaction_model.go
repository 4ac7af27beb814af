package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-engine/internal/domain"
)

// MonthlyStatement is one account's activity within a calendar month, rebuilt
// from the journal. Opening plus the signed sum of Records equals Closing.
type MonthlyStatement struct {
	AccountNo int64
	Year      int
	Month     time.Month

	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	TotalCredits   decimal.Decimal
	TotalDebits    decimal.Decimal

	Records []domain.Transaction
}
