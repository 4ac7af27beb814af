package storage

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-engine/internal/domain"
)

// RepairKind names a correction applied to the snapshot during recovery.
type RepairKind string

const (
	RepairBalance RepairKind = "balance"
	RepairClosed  RepairKind = "closed"
)

// Repair records one snapshot correction derived from the journal.
type Repair struct {
	AccountNo int64
	Kind      RepairKind
	From      decimal.Decimal
	To        decimal.Decimal
}

// recover treats the journal as authoritative: an active account's balance
// must equal the resulting balance of its latest record, and a zero-balance
// account whose latest record is a closure is removed.
func (s *Storage) recover() error {
	latest := make(map[int64]domain.Transaction)
	for record, err := range s.journal.Scan(nil) {
		if err != nil {
			return err
		}
		latest[record.AccountNo] = record
		s.journaled[record.AccountNo] = struct{}{}
	}

	var repairs []Repair
	for _, a := range s.accounts.All() {
		last, ok := latest[a.Number]
		if !ok {
			continue
		}

		if last.Type == domain.TransactionTypeClosure {
			if !a.Balance.IsZero() {
				s.logger.WithFields(logrus.Fields{
					"accountNo": a.Number,
					"balance":   domain.FormatAmount(a.Balance),
				}).Warn("Storage.recover.active account after closure record")
				continue
			}
			s.accounts.Delete(a.Number)
			repairs = append(repairs, Repair{AccountNo: a.Number, Kind: RepairClosed, From: a.Balance, To: decimal.Zero})
			continue
		}

		if !a.Balance.Equal(last.ResultingBalance) {
			from := a.Balance
			a.Balance = last.ResultingBalance
			if err := s.accounts.Update(a); err != nil {
				return err
			}
			repairs = append(repairs, Repair{AccountNo: a.Number, Kind: RepairBalance, From: from, To: last.ResultingBalance})
		}
	}

	s.repairs = repairs
	if len(repairs) == 0 {
		return nil
	}

	for _, r := range repairs {
		s.logger.WithFields(logrus.Fields{
			"accountNo": r.AccountNo,
			"kind":      r.Kind,
			"from":      domain.FormatAmount(r.From),
			"to":        domain.FormatAmount(r.To),
		}).Warn("Storage.recover.repaired")
	}
	return s.snapshot.Save(s.accounts)
}
