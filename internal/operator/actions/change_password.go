package actions

import (
	"context"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

type ChangePassword struct {
	AccountNo   int64
	OldPassword string
	NewPassword string

	Account *domain.Account

	IAction
}

func (c *ChangePassword) Perform(ctx context.Context, writer *storage.Writer) error {
	account, err := writer.Account.FindByNumberForUpdate(c.AccountNo)
	if err != nil {
		return err
	}

	if err := account.ChangePassword(c.OldPassword, c.NewPassword); err != nil {
		return err
	}

	if err := writer.Account.Update(account); err != nil {
		return err
	}

	c.Account = account
	return nil
}
