package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/hrpulse/evaluation-system/internal/api/metrics"
	"github.com/hrpulse/evaluation-system/internal/core/domain"
	"github.com/hrpulse/evaluation-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher persists notifications asynchronously through a fixed set of
// workers, sharded by recipient id so one user's notifications keep their
// order. Dispatch never blocks the caller: when a worker's channel is full
// the notification is dropped and counted, because a workflow transition
// must not wait on (or fail over) notification delivery.
type Dispatcher struct {
	workers []chan *domain.Notification
	store   ports.NotificationRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.NotificationRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.Notification, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Dispatch hands a notification to the worker responsible for its recipient.
func (d *Dispatcher) Dispatch(n *domain.Notification) {
	idx := d.shardIndex(n.RecipientID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsDroppedTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("recipient_id", n.RecipientID).
			Str("type", n.Type).
			Msg("notification queue full, dropped")
	}
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.Notification) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.store.Save(ctx, n); err != nil {
				metrics.NotificationsDroppedTotal.WithLabelValues("store_error").Inc()
				d.log.Error().Err(err).
					Str("recipient_id", n.RecipientID).
					Str("type", n.Type).
					Int("worker_id", id).
					Msg("notification save failed")
				continue
			}
			metrics.NotificationsDispatchedTotal.WithLabelValues(n.Type).Inc()
		}
	}
}
