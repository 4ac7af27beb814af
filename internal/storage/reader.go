package storage

import (
	"iter"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/storage/transaction"
)

// FindByNumber returns a copy of an active account.
func (s *Storage) FindByNumber(number int64) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts.Get(number)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

// FindByUsername returns a copy of the active account with the username.
func (s *Storage) FindByUsername(username string) (*domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts.GetByUsername(username)
}

// ListAccounts returns copies of all active accounts in snapshot order.
func (s *Storage) ListAccounts() []*domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts.All()
}

// ScanTransactions lazily reads matching journal records in file order.
// The journal is only ever appended, so a scan needs no lock.
func (s *Storage) ScanTransactions(match transaction.Predicate) iter.Seq2[domain.Transaction, error] {
	return s.journal.Scan(match)
}
