package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Account is a single bank account.
//
// Invariants:
//   - Number and Username never change after creation.
//   - PasswordHash is a one-way digest, never the plaintext.
//   - Balance is never negative; it may be exactly zero.
type Account struct {
	Number       int64
	Username     string
	PasswordHash string
	Name         string
	Balance      decimal.Decimal
}

// NewAccount validates the fields, hashes the password and returns the account.
func NewAccount(number int64, username, password, name string, balance decimal.Decimal) (*Account, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", ErrInvalidField)
	}
	if err := ValidateField("username", username); err != nil {
		return nil, err
	}
	if err := ValidateField("name", name); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is empty", ErrInvalidPassword)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance is negative", ErrInvalidAmount)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &Account{
		Number:       number,
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Balance:      balance,
	}, nil
}

// ValidateField rejects free text that would break the comma-delimited record format.
func ValidateField(field, value string) error {
	if strings.ContainsAny(value, ",\r\n") {
		return fmt.Errorf("%w: %s contains a delimiter", ErrInvalidField, field)
	}
	return nil
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debit removes amount from the balance. The balance may reach zero but never go below it.
func (a *Account) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// VerifyPassword reports whether password matches the stored digest.
func (a *Account) VerifyPassword(password string) bool {
	return CheckPasswordHash(password, a.PasswordHash)
}

// ChangePassword replaces the stored digest once the old password is confirmed.
func (a *Account) ChangePassword(oldPassword, newPassword string) error {
	if !a.VerifyPassword(oldPassword) {
		return ErrAuthFailed
	}
	if newPassword == "" {
		return fmt.Errorf("%w: password is empty", ErrInvalidPassword)
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// EligibleForClosure returns ErrNonZeroBalance unless the balance is exactly zero.
func (a *Account) EligibleForClosure() error {
	if !a.Balance.IsZero() {
		return ErrNonZeroBalance
	}
	return nil
}

// Clone returns a copy that shares no mutable state with a.
func (a *Account) Clone() *Account {
	c := *a
	return &c
}
