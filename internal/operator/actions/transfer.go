package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

// Transfer debits one account and credits another in a single commit.
// Both journal records carry the same timestamp, debit first.
type Transfer struct {
	FromAccountNo int64
	ToAccountNo   int64
	Amount        decimal.Decimal
	At            time.Time

	From *domain.Account
	To   *domain.Account

	IAction
}

func (t *Transfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if t.FromAccountNo == t.ToAccountNo {
		return domain.ErrSameAccount
	}

	from, _, err := applyMovement(writer, t.FromAccountNo, domain.TransactionTypeDebit, t.Amount, t.At)
	if err != nil {
		return err
	}

	to, _, err := applyMovement(writer, t.ToAccountNo, domain.TransactionTypeCredit, t.Amount, t.At)
	if err != nil {
		return err
	}

	t.From, t.To = from, to
	return nil
}
