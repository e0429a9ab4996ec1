package worker

import (
	"errors"
	"sync"

	"github.com/nimasrn/resto-manager/pkg/logger"
)

var ErrTerminated = errors.New("workers terminated")

type WorkerHandler[T any] func(workerIndex int, job T)

type WorkerManager[T any] struct {
	bufferSize     int
	jobChannel     chan T
	numberOfWorker int
	stop           chan struct{}
	stopOnce       sync.Once
	do             WorkerHandler[T]
	waiter         *sync.WaitGroup
}

// NewWorkerManager
// is a job manager based on go routines. Define the number of internal
// workers, and start publishing jobs using Enqueue. It will distribute the job
// among its internal pool. Workers keep listening until Exit is called; jobs
// still buffered at that point are dropped.
func NewWorkerManager[T any](bufferSize, numberOfWorkers int) *WorkerManager[T] {
	if numberOfWorkers < 1 {
		numberOfWorkers = 1
	}
	return &WorkerManager[T]{
		bufferSize:     bufferSize,
		numberOfWorker: numberOfWorkers,
		jobChannel:     make(chan T, bufferSize),
		stop:           make(chan struct{}),
		waiter:         &sync.WaitGroup{},
	}
}

func (w *WorkerManager[T]) GetUnreadCount() int64 {
	return int64(len(w.jobChannel))
}

func (w *WorkerManager[T]) SetWorker(worker WorkerHandler[T]) {
	w.do = worker
}

// Enqueue
// Publishes a job onto the channel, blocking while the buffer is full.
func (w *WorkerManager[T]) Enqueue(val T) {
	select {
	case w.jobChannel <- val:
	case <-w.stop:
	}
}

// TryEnqueue publishes val unless the buffer is full or the manager exited.
func (w *WorkerManager[T]) TryEnqueue(val T) bool {
	select {
	case <-w.stop:
		return false
	default:
	}
	select {
	case w.jobChannel <- val:
		return true
	default:
		return false
	}
}

// Start
// starts off the workers as many as defined
// by w.numberOfWorker and blocks until Exit.
func (w *WorkerManager[T]) Start() error {
	w.waiter.Add(w.numberOfWorker)
	for i := 0; i < w.numberOfWorker; i++ {
		go func(index int) {
			defer w.waiter.Done()
			for {
				select {
				case job := <-w.jobChannel:
					w.run(index, job)
				case <-w.stop:
					return
				}
			}
		}(i)
	}
	w.waiter.Wait()

	return ErrTerminated
}

func (w *WorkerManager[T]) run(index int, job T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("worker recovered from panic", "worker", index, "panic", r)
		}
	}()
	w.do(index, job)
}

// Exit
// stops every worker. It is safe to call more than once.
func (w *WorkerManager[T]) Exit() {
	w.stopOnce.Do(func() {
		logger.Info("Exit() is called and worker manager is going to be shutdown")
		close(w.stop)
	})
}
