package transaction

import (
	"github.com/carson-networks/ledger-engine/internal/domain"
)

// Writer stages journal records until the owning storage.Writer commits.
type Writer struct {
	pending []domain.Transaction
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Insert(records ...domain.Transaction) {
	w.pending = append(w.pending, records...)
}

// Pending returns the staged records in insertion order.
func (w *Writer) Pending() []domain.Transaction {
	return w.pending
}
