package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/thehex/board/internal/api/metrics"
	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the account id, so one account's entries are
// persisted in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.Activity
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.ActivityRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record hands an entry to the worker responsible for its account. It never
// blocks: when that worker's channel is full the entry is dropped and counted.
func (d *Dispatcher) Record(activity domain.Activity) {
	idx := d.shardIndex(activity.AccountID)
	select {
	case d.workers[idx] <- activity:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActivityErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("account_id", activity.AccountID).
			Str("kind", string(activity.Kind)).
			Int("worker_id", idx).
			Msg("activity queue full, entry dropped")
	}
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	workerID := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case activity, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(workerID).Dec()

			start := time.Now()
			err := d.service.Process(ctx, activity)
			metrics.ActivityProcessingDuration.WithLabelValues(string(activity.Kind)).Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.ActivityErrorsTotal.WithLabelValues("persist_failed").Inc()
				d.log.Error().Err(err).
					Str("account_id", activity.AccountID).
					Str("kind", string(activity.Kind)).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
		}
	}
}
