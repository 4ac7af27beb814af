package domain

import (
	"fmt"
	"math/rand/v2"
)

// Account numbers are six-digit integers.
const (
	MinAccountNo int64 = 100000
	MaxAccountNo int64 = 999999
)

// DefaultMaxAllocationAttempts bounds the collision retry loop.
const DefaultMaxAllocationAttempts = 1000

// RandomSource draws a value in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Int64N(n int64) int64
}

type globalSource struct{}

func (globalSource) Int64N(n int64) int64 { return rand.Int64N(n) }

// AccountNumberAllocator draws random six-digit account numbers and retries on collision.
type AccountNumberAllocator struct {
	source      RandomSource
	maxAttempts int
}

// NewAccountNumberAllocator uses the process-wide generator when source is nil.
func NewAccountNumberAllocator(source RandomSource, maxAttempts int) *AccountNumberAllocator {
	if source == nil {
		source = globalSource{}
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAllocationAttempts
	}
	return &AccountNumberAllocator{
		source:      source,
		maxAttempts: maxAttempts,
	}
}

// Next returns a number for which taken reports false.
func (a *AccountNumberAllocator) Next(taken func(int64) bool) (int64, error) {
	span := MaxAccountNo - MinAccountNo + 1
	for i := 0; i < a.maxAttempts; i++ {
		candidate := MinAccountNo + a.source.Int64N(span)
		if !taken(candidate) {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("%w after %d attempts", ErrAllocationExhausted, a.maxAttempts)
}
