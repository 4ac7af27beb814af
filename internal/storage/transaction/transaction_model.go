package transaction

import (
	"time"

	"github.com/carson-networks/ledger-engine/internal/domain"
)

// Predicate selects journal records during a scan. A nil Predicate matches everything.
type Predicate func(domain.Transaction) bool

// ForAccount matches records belonging to one account.
func ForAccount(accountNo int64) Predicate {
	return func(t domain.Transaction) bool {
		return t.AccountNo == accountNo
	}
}

// InPeriod matches records timestamped within a calendar month.
func InPeriod(year int, month time.Month) Predicate {
	return func(t domain.Transaction) bool {
		return t.InPeriod(year, month)
	}
}

// And matches records accepted by every predicate.
func And(predicates ...Predicate) Predicate {
	return func(t domain.Transaction) bool {
		for _, p := range predicates {
			if p != nil && !p(t) {
				return false
			}
		}
		return true
	}
}
