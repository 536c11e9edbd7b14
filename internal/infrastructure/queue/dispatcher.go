package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/api/metrics"
	"github.com/innsight/hotel-admin/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Publisher delivers one revalidate signal.
type Publisher interface {
	Publish(ctx context.Context, contentType string) error
}

// Dispatcher takes revalidate signals off the request path. Signals are
// routed to a fixed set of workers by hashing the content type, so signals
// for one type are published in the order they were raised.
type Dispatcher struct {
	workers   []chan string
	publisher Publisher
	log       zerolog.Logger
}

var _ ports.Revalidator = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher Publisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan string, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Revalidate enqueues a signal for contentType. It never blocks: when the
// worker's buffer is full the signal is dropped, since a queued signal for
// the same type already covers it.
func (d *Dispatcher) Revalidate(_ context.Context, contentType string) {
	idx := d.shardIndex(contentType)
	select {
	case d.workers[idx] <- contentType:
		metrics.RevalidateQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.RevalidationsTotal.WithLabelValues(contentType, "dropped").Inc()
		d.log.Warn().Str("content_type", contentType).Msg("revalidate queue full, signal dropped")
	}
}

// shardIndex maps a content type deterministically to a worker index.
func (d *Dispatcher) shardIndex(contentType string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(contentType))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	depth := metrics.RevalidateQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case contentType, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.publisher.Publish(ctx, contentType); err != nil {
				metrics.RevalidationsTotal.WithLabelValues(contentType, "error").Inc()
				d.log.Error().Err(err).
					Str("content_type", contentType).
					Int("worker_id", id).
					Msg("revalidate publish failed")
				continue
			}
			metrics.RevalidationsTotal.WithLabelValues(contentType, "published").Inc()
		}
	}
}
