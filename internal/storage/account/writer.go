package account

import (
	"github.com/carson-networks/ledger-engine/internal/domain"
)

// Writer stages changes against a private copy of the account set.
// Nothing reaches the snapshot file until the owning storage.Writer commits.
type Writer struct {
	set   *Set
	dirty bool
}

func NewWriter(set *Set) *Writer {
	return &Writer{set: set}
}

// FindByNumberForUpdate returns the staged copy of an active account.
func (w *Writer) FindByNumberForUpdate(number int64) (*domain.Account, error) {
	a, ok := w.set.Get(number)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (w *Writer) FindByUsername(username string) (*domain.Account, bool) {
	return w.set.GetByUsername(username)
}

func (w *Writer) Contains(number int64) bool {
	return w.set.Contains(number)
}

func (w *Writer) Create(a *domain.Account) error {
	if err := w.set.Insert(a); err != nil {
		return err
	}
	w.dirty = true
	return nil
}

func (w *Writer) Update(a *domain.Account) error {
	if err := w.set.Update(a); err != nil {
		return err
	}
	w.dirty = true
	return nil
}

func (w *Writer) Delete(number int64) error {
	if !w.set.Delete(number) {
		return domain.ErrAccountNotFound
	}
	w.dirty = true
	return nil
}

// Dirty reports whether any change was staged.
func (w *Writer) Dirty() bool {
	return w.dirty
}

// Set returns the staged set.
func (w *Writer) Set() *Set {
	return w.set
}
