package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/greenharbor/greennest-backend/internal/api/metrics"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

const (
	defaultWorkers = 4
	queueBuffer    = 256
)

var errQueueFull = errors.New("notification queue full")

type job struct {
	to      string
	subject string
	body    string
}

// Dispatcher decouples notification delivery from the request path. Send
// enqueues and returns immediately; a fixed set of workers drains the queue
// and hands each job to the underlying sender. When the buffer is full the
// job is dropped rather than blocking the caller.
type Dispatcher struct {
	jobs    chan job
	sender  ports.Notifier
	workers int
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers delivery workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(sender ports.Notifier, numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		jobs:    make(chan job, queueBuffer),
		sender:  sender,
		workers: numWorkers,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Send satisfies the Notifier contract by enqueueing the message. The only
// failure mode is a full queue.
func (d *Dispatcher) Send(to, subject, body string) error {
	select {
	case d.jobs <- job{to: to, subject: subject, body: body}:
		metrics.NotifyQueueDepth.Set(float64(len(d.jobs)))
		return nil
	default:
		return errQueueFull
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-d.jobs:
			if !ok {
				return
			}
			metrics.NotifyQueueDepth.Set(float64(len(d.jobs)))
			if err := d.sender.Send(j.to, j.subject, j.body); err != nil {
				d.log.Error().Err(err).
					Str("to", j.to).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
