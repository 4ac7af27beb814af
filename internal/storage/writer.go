package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/ledger-engine/internal/storage/account"
	"github.com/carson-networks/ledger-engine/internal/storage/transaction"
)

// ErrWriterClosed is returned when a Writer is used after Commit or Rollback.
var ErrWriterClosed = errors.New("storage: writer already closed")

// Writer stages account and journal changes. Only one Writer is open at a time;
// Commit appends the journal first and checkpoints the snapshot second.
type Writer struct {
	storage     *Storage
	closed      bool
	Account     *account.Writer
	Transaction *transaction.Writer
}

// Write opens a Writer, waiting for any other open Writer to finish.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	return &Writer{
		storage:     s,
		Account:     account.NewWriter(s.accounts.Clone()),
		Transaction: transaction.NewWriter(),
	}, nil
}

// AccountNumberTaken reports whether number belongs to an active account, a
// staged account, or any account that ever reached the journal.
func (w *Writer) AccountNumberTaken(number int64) bool {
	if w.Account.Contains(number) {
		return true
	}
	_, seen := w.storage.journaled[number]
	return seen
}

// Commit makes the staged changes durable.
//
// A commit that carries journal records is durable once the append succeeds.
// If the snapshot rewrite then fails, the in-memory state still advances and
// the checkpoint is retried on the next commit and on the next Open.
func (w *Writer) Commit() error {
	if w.closed {
		return ErrWriterClosed
	}
	defer w.release()

	s := w.storage
	pending := w.Transaction.Pending()
	if len(pending) > 0 {
		if err := s.appendLocked(pending...); err != nil {
			return fmt.Errorf("journal append: %w", err)
		}
	}

	staged := w.Account.Set()
	if w.Account.Dirty() || s.checkpointDue {
		if err := s.snapshot.Save(staged); err != nil {
			if len(pending) == 0 {
				return fmt.Errorf("snapshot save: %w", err)
			}
			s.checkpointDue = true
			s.logger.WithError(err).WithField("records", len(pending)).
				Error("Storage.Commit.checkpoint deferred")
		} else {
			s.checkpointDue = false
		}
	}

	s.accounts = staged
	return nil
}

// Rollback discards the staged changes. It is safe to call after Commit.
func (w *Writer) Rollback() error {
	if w.closed {
		return nil
	}
	w.release()
	return nil
}

func (w *Writer) release() {
	w.closed = true
	w.storage.mu.Unlock()
}
