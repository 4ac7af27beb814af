package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

// CreateAccount opens a new account. It does not write a journal record.
type CreateAccount struct {
	Username       string
	Password       string
	Name           string
	InitialBalance decimal.Decimal
	Allocator      *domain.AccountNumberAllocator

	Created *domain.Account

	IAction
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, exists := writer.Account.FindByUsername(c.Username); exists {
		return domain.ErrDuplicateUsername
	}

	allocator := c.Allocator
	if allocator == nil {
		allocator = domain.NewAccountNumberAllocator(nil, domain.DefaultMaxAllocationAttempts)
	}

	number, err := allocator.Next(writer.AccountNumberTaken)
	if err != nil {
		return err
	}

	account, err := domain.NewAccount(number, c.Username, c.Password, c.Name, c.InitialBalance)
	if err != nil {
		return err
	}

	if err := writer.Account.Create(account); err != nil {
		return err
	}

	c.Created = account.Clone()
	return nil
}
