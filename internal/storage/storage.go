package storage

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-engine/internal/config"
	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/storage/account"
	"github.com/carson-networks/ledger-engine/internal/storage/transaction"
)

// Storage is the ledger store: the account snapshot plus the transaction journal.
// The active account set is resident in memory and indexed by number and username.
type Storage struct {
	// mu is held for the lifetime of an open Writer and by every read.
	mu sync.Mutex

	snapshot *account.Table
	journal  *transaction.Journal
	logger   *logrus.Logger

	accounts *account.Set
	// journaled holds every account number that appears in the journal,
	// including closed accounts, so numbers are never reused.
	journaled map[int64]struct{}
	// checkpointDue is set when the journal committed but the snapshot rewrite failed.
	checkpointDue bool

	repairs []Repair
}

func NewStorage(env *config.Config, logger *logrus.Logger) (*Storage, error) {
	return Open(env.AccountsFile, env.TransactionsFile, logger)
}

// Open loads the snapshot and reconciles it against the journal.
func Open(accountsPath, journalPath string, logger *logrus.Logger) (*Storage, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Storage{
		snapshot:  account.NewTable(accountsPath),
		journal:   transaction.NewJournal(journalPath),
		logger:    logger,
		journaled: make(map[int64]struct{}),
	}

	if err := s.loadAccountsLocked(); err != nil {
		return nil, err
	}
	if err := s.recover(); err != nil {
		return nil, fmt.Errorf("recover: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"accounts": s.accounts.Len(),
		"repairs":  len(s.repairs),
	}).Info("Storage.Open.loaded")

	return s, nil
}

// LoadAccounts re-reads the snapshot file, replacing the in-memory set.
func (s *Storage) LoadAccounts() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAccountsLocked()
}

func (s *Storage) loadAccountsLocked() error {
	set, err := s.snapshot.Load()
	if err != nil {
		return err
	}
	s.accounts = set
	return nil
}

// SaveAccounts rewrites the snapshot file from the in-memory set.
func (s *Storage) SaveAccounts() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.snapshot.Save(s.accounts); err != nil {
		return err
	}
	s.checkpointDue = false
	return nil
}

// AppendTransaction appends one record to the journal outside of a Writer.
func (s *Storage) AppendTransaction(record domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(record)
}

func (s *Storage) appendLocked(records ...domain.Transaction) error {
	if err := s.journal.Append(records...); err != nil {
		return err
	}
	for _, r := range records {
		s.journaled[r.AccountNo] = struct{}{}
	}
	return nil
}

// Repairs returns the corrections made while opening the store.
func (s *Storage) Repairs() []Repair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Repair(nil), s.repairs...)
}
