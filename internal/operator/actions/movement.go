package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-engine/internal/domain"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

// Credit adds funds to an account and journals the movement.
type Credit struct {
	AccountNo int64
	Amount    decimal.Decimal
	At        time.Time

	Account *domain.Account
	Record  domain.Transaction

	IAction
}

func (c *Credit) Perform(ctx context.Context, writer *storage.Writer) error {
	account, record, err := applyMovement(writer, c.AccountNo, domain.TransactionTypeCredit, c.Amount, c.At)
	if err != nil {
		return err
	}

	c.Account, c.Record = account, record
	return nil
}

// Debit removes funds from an account and journals the movement.
type Debit struct {
	AccountNo int64
	Amount    decimal.Decimal
	At        time.Time

	Account *domain.Account
	Record  domain.Transaction

	IAction
}

func (d *Debit) Perform(ctx context.Context, writer *storage.Writer) error {
	account, record, err := applyMovement(writer, d.AccountNo, domain.TransactionTypeDebit, d.Amount, d.At)
	if err != nil {
		return err
	}

	d.Account, d.Record = account, record
	return nil
}

func applyMovement(
	writer *storage.Writer,
	accountNo int64,
	txType domain.TransactionType,
	amount decimal.Decimal,
	at time.Time,
) (*domain.Account, domain.Transaction, error) {
	account, err := writer.Account.FindByNumberForUpdate(accountNo)
	if err != nil {
		return nil, domain.Transaction{}, err
	}

	switch txType {
	case domain.TransactionTypeCredit:
		err = account.Credit(amount)
	case domain.TransactionTypeDebit:
		err = account.Debit(amount)
	default:
		err = domain.ErrInvalidAmount
	}
	if err != nil {
		return nil, domain.Transaction{}, err
	}

	if err := writer.Account.Update(account); err != nil {
		return nil, domain.Transaction{}, err
	}

	record := domain.NewTransaction(account.Number, txType, amount, account.Balance, at)
	writer.Transaction.Insert(record)

	return account, record, nil
}
