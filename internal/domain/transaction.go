package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the sortable, second-resolution journal timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// transactionFieldCount is the number of comma-separated fields in a journal line.
const transactionFieldCount = 5

// TransactionType is the kind of balance-affecting event.
type TransactionType string

const (
	TransactionTypeCredit  TransactionType = "credit"
	TransactionTypeDebit   TransactionType = "debit"
	TransactionTypeClosure TransactionType = "closure"
)

// ParseTransactionType accepts the closed set of journal types, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case TransactionTypeCredit, TransactionTypeDebit, TransactionTypeClosure:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", ErrCorruptRecord, s)
	}
}

// Transaction is an immutable journal entry describing one balance-affecting event.
type Transaction struct {
	AccountNo        int64
	Type             TransactionType
	Amount           decimal.Decimal
	ResultingBalance decimal.Decimal
	Timestamp        time.Time
}

// NewTransaction builds a journal entry, truncating the timestamp to whole seconds.
func NewTransaction(accountNo int64, txType TransactionType, amount, resultingBalance decimal.Decimal, at time.Time) Transaction {
	return Transaction{
		AccountNo:        accountNo,
		Type:             txType,
		Amount:           amount,
		ResultingBalance: resultingBalance,
		Timestamp:        at.Truncate(time.Second),
	}
}

// NewClosure builds the zero-amount record that marks an account's removal.
func NewClosure(accountNo int64, at time.Time) Transaction {
	return NewTransaction(accountNo, TransactionTypeClosure, decimal.Zero, decimal.Zero, at)
}

// String renders the journal line: account_no,type,amount,resulting_balance,timestamp.
func (t Transaction) String() string {
	return strings.Join([]string{
		strconv.FormatInt(t.AccountNo, 10),
		string(t.Type),
		FormatAmount(t.Amount),
		FormatAmount(t.ResultingBalance),
		t.Timestamp.Format(TimestampLayout),
	}, ",")
}

// ParseTransaction parses one journal line. Timestamps are read in local time.
func ParseTransaction(line string) (Transaction, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != transactionFieldCount {
		return Transaction{}, fmt.Errorf("%w: expected %d fields, got %d", ErrCorruptRecord, transactionFieldCount, len(fields))
	}

	accountNo, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil || accountNo <= 0 {
		return Transaction{}, fmt.Errorf("%w: bad account number %q", ErrCorruptRecord, fields[0])
	}
	txType, err := ParseTransactionType(fields[1])
	if err != nil {
		return Transaction{}, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: bad amount %q", ErrCorruptRecord, fields[2])
	}
	balance, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: bad balance %q", ErrCorruptRecord, fields[3])
	}
	at, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(fields[4]), time.Local)
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: bad timestamp %q", ErrCorruptRecord, fields[4])
	}

	return Transaction{
		AccountNo:        accountNo,
		Type:             txType,
		Amount:           amount,
		ResultingBalance: balance,
		Timestamp:        at,
	}, nil
}

// SignedAmount is the movement applied to the balance: positive for credits, negative for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TransactionTypeCredit:
		return t.Amount
	case TransactionTypeDebit:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// OpeningBalance reverses this record's effect to recover the balance before it.
// A closure record opens at zero.
func (t Transaction) OpeningBalance() decimal.Decimal {
	if t.Type == TransactionTypeClosure {
		return decimal.Zero
	}
	return t.ResultingBalance.Sub(t.SignedAmount())
}

// InPeriod reports whether the record falls in the given calendar month.
func (t Transaction) InPeriod(year int, month time.Month) bool {
	return t.Timestamp.Year() == year && t.Timestamp.Month() == month
}
