// Package settlement performs the external bank leg of transfers and
// top-ups after the ledger has committed. Bank calls are simulated.
package settlement

import (
	"context"
	"time"

	"github.com/llshivamsinghll/bank-wallet/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Task describes one committed ledger entry awaiting its bank leg.
type Task struct {
	TransactionID string
	UserID        string
	BankCode      string
	AccountLast4  string
	Direction     string // DEBIT sends to the bank, CREDIT pulls from it
	Amount        decimal.Decimal
}

// Settler performs the bank call for a task.
type Settler interface {
	Settle(ctx context.Context, task Task) error
}

// SimulatedBank stands in for a bank API: it waits for the configured delay
// and reports success.
type SimulatedBank struct {
	Delay time.Duration
}

func (b SimulatedBank) Settle(ctx context.Context, task Task) error {
	timer := time.NewTimer(b.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatcher hands tasks to a worker pool so the caller never waits on the
// bank.
type Dispatcher struct {
	pool    *worker.Pool
	settler Settler
	log     logrus.FieldLogger
	onDone  func(task Task, err error)
}

func NewDispatcher(pool *worker.Pool, settler Settler, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		pool:    pool,
		settler: settler,
		log:     log,
		onDone:  func(Task, error) {},
	}
}

// OnDone registers a callback invoked after each settlement attempt.
func (d *Dispatcher) OnDone(fn func(task Task, err error)) {
	d.onDone = fn
}

func (d *Dispatcher) Dispatch(task Task) error {
	return d.pool.Submit(func(ctx context.Context) {
		fields := logrus.Fields{
			"transaction_id": task.TransactionID,
			"user_id":        task.UserID,
			"bank":           task.BankCode,
			"direction":      task.Direction,
			"amount":         task.Amount.String(),
		}

		err := d.settler.Settle(ctx, task)
		if err != nil {
			d.log.WithFields(fields).WithError(err).Error("settlement failed")
		} else {
			d.log.WithFields(fields).Info("settlement completed")
		}
		d.onDone(task, err)
	})
}
