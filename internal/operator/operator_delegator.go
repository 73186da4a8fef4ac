package operator

import (
	"context"
	"sync"

	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
)

const queueSize = 1000

// OperatorDelegator owns the mutation queue and the single Operator draining it,
// so ledger mutations from concurrent callers run one at a time in arrival order.
type OperatorDelegator struct {
	ledger   *ledger.Ledger
	queue    chan ActionItem
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewOperatorDelegator(l *ledger.Ledger) *OperatorDelegator {
	return &OperatorDelegator{
		ledger: l,
		queue:  make(chan ActionItem, queueSize),
	}
}

func (d *OperatorDelegator) Start() {
	d.wg.Add(1)
	op := NewOperator(d.ledger, d.queue)
	go func() {
		defer d.wg.Done()
		op.Run()
	}()
}

func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Process enqueues action and waits for its result. Once enqueued the action
// always runs; ctx only bounds how long the caller waits. Time spent here
// accumulates under operatorMs in the request's LogData.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddToExistingTiming("operatorMs")()
	}

	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	select {
	case d.queue <- item:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
