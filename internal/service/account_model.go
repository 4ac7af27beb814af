package service

import (
	"github.com/shopspring/decimal"
)

// AccountCreate carries the fields needed to open an account.
type AccountCreate struct {
	Username       string
	Password       string
	Name           string
	InitialBalance decimal.Decimal
}
