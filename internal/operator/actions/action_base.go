package actions

import (
	"context"

	"github.com/carson-networks/ledger-engine/internal/storage"
)

// IAction is one mutating engine operation. Perform stages its changes on the
// writer; the operator commits them when Perform returns nil and rolls them
// back otherwise. Result fields are only valid after a successful commit.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
