package actions

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

// CloseAccount removes a zero-balance account and journals a closure record.
type CloseAccount struct {
	AccountNo int64
	At        time.Time

	Record domain.Transaction

	IAction
}

func (c *CloseAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := writer.Account.FindByNumberForUpdate(c.AccountNo)
	if err != nil {
		return err
	}

	if err := account.EligibleForClosure(); err != nil {
		return err
	}

	if err := writer.Account.Delete(account.Number); err != nil {
		return err
	}

	c.Record = domain.NewClosure(account.Number, c.At)
	writer.Transaction.Insert(c.Record)
	return nil
}
