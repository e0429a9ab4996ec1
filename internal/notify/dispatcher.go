package notify

import (
	"context"
	"time"

	"github.com/nimasrn/resto-manager/internal/model"
	"github.com/nimasrn/resto-manager/pkg/logger"
	"github.com/nimasrn/resto-manager/pkg/prom"
	"github.com/nimasrn/resto-manager/pkg/worker"
)

const (
	EventReservationCreated = "reservation_created"
	EventExpenseCreated     = "expense_created"
)

type Sender interface {
	SendMessage(ctx context.Context, text string) bool
}

type job struct {
	event string
	text  string
}

// Dispatcher sends notifications in the background so callers never wait
// on the network. A full queue drops the notification.
type Dispatcher struct {
	sender Sender
	loc    *time.Location
	pool   *worker.WorkerManager[job]
}

func NewDispatcher(sender Sender, workers, bufferSize int, loc *time.Location) *Dispatcher {
	if loc == nil {
		loc = time.Local
	}
	d := &Dispatcher{
		sender: sender,
		loc:    loc,
		pool:   worker.NewWorkerManager[job](bufferSize, workers),
	}
	d.pool.SetWorker(d.deliver)
	return d
}

// Start runs the delivery workers and blocks until Stop.
func (d *Dispatcher) Start() error {
	return d.pool.Start()
}

func (d *Dispatcher) Stop() {
	d.pool.Exit()
}

func (d *Dispatcher) ReservationCreated(res *model.Reservation) {
	d.enqueue(EventReservationCreated, ReservationMessage(res, d.loc))
}

func (d *Dispatcher) ExpenseCreated(exp *model.Expense) {
	d.enqueue(EventExpenseCreated, ExpenseMessage(exp))
}

func (d *Dispatcher) enqueue(event, text string) {
	if !d.pool.TryEnqueue(job{event: event, text: text}) {
		prom.AddNotifyMessage(event, "dropped")
		logger.Warn("[notify] queue is full, notification dropped", "event", event)
	}
}

func (d *Dispatcher) deliver(workerIndex int, j job) {
	if d.sender.SendMessage(context.Background(), j.text) {
		prom.AddNotifyMessage(j.event, "sent")
		return
	}
	prom.AddNotifyMessage(j.event, "failed")
	logger.Debug("[notify] notification not delivered", "event", j.event, "worker", workerIndex)
}
