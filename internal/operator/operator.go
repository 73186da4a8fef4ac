package operator

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

// ErrNotPersisted reports a mutation that was applied in memory but could not be saved.
var ErrNotPersisted = errors.New("change applied but not persisted")

// Operator is the worker that processes items from the queue.
type Operator struct {
	ledger *ledger.Ledger
	queue  chan ActionItem
}

func NewOperator(l *ledger.Ledger, queue chan ActionItem) *Operator {
	return &Operator{
		ledger: l,
		queue:  queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	savesBefore, _ := o.ledger.LastSave()
	if err := item.action.Perform(item.ctx, o.ledger); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	// Only a save made by this action can fail it; no-ops on unknown ids skip saving.
	if saves, err := o.ledger.LastSave(); saves != savesBefore && err != nil {
		item.response <- ActionItemResponse{err: fmt.Errorf("%w: %v", ErrNotPersisted, err)}
		return
	}

	item.response <- ActionItemResponse{}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
