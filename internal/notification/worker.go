package notification

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"equipment-tracker-backend/internal/model"
)

// queuePerWorker sizes the buffered job channel relative to the pool.
const queuePerWorker = 64

// Publisher delivers an encoded event to a subject.
type Publisher interface {
	Publish(subject string, payload []byte) error
}

// WorkerPool publishes equipment events off the request path.
type WorkerPool struct {
	size      int
	jobs      chan model.EquipmentEvent
	publisher Publisher
	subject   string
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, publisher Publisher, subject string, logger *zap.Logger) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		size:      size,
		jobs:      make(chan model.EquipmentEvent, size*queuePerWorker),
		publisher: publisher,
		subject:   subject,
		logger:    logger,
	}
}

// Start launches the worker goroutines. They exit once ctx is cancelled and
// the queue has been drained.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait blocks until every worker has exited.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log := wp.logger.With(zap.Int("worker", id))
	log.Debug("worker started")
	for {
		select {
		case ev := <-wp.jobs:
			wp.publish(ev)
		case <-ctx.Done():
			wp.drain()
			log.Debug("worker shutting down")
			return
		}
	}
}

func (wp *WorkerPool) drain() {
	for {
		select {
		case ev := <-wp.jobs:
			wp.publish(ev)
		default:
			return
		}
	}
}

// Dispatch queues an event. When the queue is full the event is dropped so
// that a slow broker never stalls a request.
func (wp *WorkerPool) Dispatch(ev model.EquipmentEvent) {
	select {
	case wp.jobs <- ev:
	default:
		wp.logger.Warn("event queue full, dropping event",
			zap.String("action", string(ev.Action)),
			zap.Int64("id", ev.Equipment.ID))
	}
}

func (wp *WorkerPool) publish(ev model.EquipmentEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		wp.logger.Error("failed to encode event", zap.Error(err))
		return
	}
	if err := wp.publisher.Publish(wp.subject, payload); err != nil {
		wp.logger.Error("failed to publish event",
			zap.String("subject", wp.subject),
			zap.String("action", string(ev.Action)),
			zap.Int64("id", ev.Equipment.ID),
			zap.Error(err))
	}
}
