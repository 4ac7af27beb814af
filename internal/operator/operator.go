package operator

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-engine/internal/logging"
	"github.com/carson-networks/ledger-engine/internal/operator/actions"
	"github.com/carson-networks/ledger-engine/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

func (o *Operator) processItem(item ActionItem) error {
	logData := logging.NewLogData(o.logger)
	logData.AddData("actionID", item.id.String())
	logData.AddData("action", fmt.Sprintf("%T", item.action))
	endTimer := logData.AddTiming("duration")

	err := o.perform(item, logData)
	endTimer()

	if err != nil {
		logData.Log().WithError(err).Debug("Operator.Action.Error")
		return err
	}
	logData.Log().Debug("Operator.Action.Complete")
	return nil
}

func (o *Operator) perform(item ActionItem, logData *logging.LogData) error {
	endWait := logData.AddTiming("lockWait")
	writer, err := o.storage.Write(item.ctx)
	endWait()
	if err != nil {
		return err
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		return err
	}

	if err = writer.Commit(); err != nil {
		return err
	}

	return nil
}

type ActionItem struct {
	id       uuid.UUID
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
