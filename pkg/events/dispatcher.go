package events

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/huynhanx03/gamekit/pkg/datastructs/queue"
	"github.com/huynhanx03/gamekit/pkg/inventory"
	"github.com/huynhanx03/gamekit/pkg/mq/batcher"
	"github.com/huynhanx03/gamekit/pkg/settings"
)

const (
	defaultQueueCapacity = 1024
	drainBatchSize       = 64
	idlePollInterval     = time.Millisecond
)

// Dispatcher fans inventory activity from game-loop goroutines into a
// batching consumer without blocking them. Records go through a bounded
// MPMC queue; under sustained overload new events are dropped and counted
// rather than stalling gameplay.
//
// Dispatcher implements inventory.Recorder.
type Dispatcher struct {
	queue   *queue.MPMC[Event]
	batcher *batcher.StripedBatcher[Event]
	log     *zap.Logger

	dropped atomic.Uint64
	done    chan struct{}
	wg      sync.WaitGroup
}

var _ inventory.Recorder = (*Dispatcher)(nil)

// NewDispatcher starts a dispatcher draining into cons.
// cfg may be nil; defaults then apply.
func NewDispatcher(cons batcher.Consumer[Event], cfg *settings.Events, log *zap.Logger) *Dispatcher {
	queueCap := defaultQueueCapacity
	stripeSize := 0
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			queueCap = cfg.QueueCapacity
		}
		stripeSize = cfg.StripeSize
	}
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		queue:   queue.NewMPMC[Event](queueCap),
		batcher: batcher.New(cons, batcher.Config{StripeSize: stripeSize}),
		log:     log,
		done:    make(chan struct{}),
	}

	d.wg.Add(1)
	go d.drain()
	return d
}

// Record enqueues one activity event. Never blocks; returns immediately
// even when the pipeline is saturated.
func (d *Dispatcher) Record(sessionID int64, action inventory.Action, item inventory.Item) {
	ev := Event{
		SessionID: sessionID,
		Action:    action,
		Item:      item,
		At:        time.Now(),
	}
	if !d.queue.Enqueue(ev) {
		d.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded due to backpressure.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Close stops the drain loop after flushing what remains in the queue.
// Events still buffered inside the batcher's stripes may be lost.
func (d *Dispatcher) Close() {
	close(d.done)
	d.wg.Wait()

	if n := d.dropped.Load(); n > 0 {
		d.log.Warn("events dropped under backpressure", zap.Uint64("count", n))
	}
}

func (d *Dispatcher) drain() {
	defer d.wg.Done()

	buf := make([]Event, drainBatchSize)
	for {
		n := d.queue.DequeueBatch(buf)
		for i := 0; i < n; i++ {
			d.batcher.Push(buf[i])
		}

		if n == 0 {
			select {
			case <-d.done:
				// Final sweep for events racing the shutdown.
				for {
					ev, ok := d.queue.Dequeue()
					if !ok {
						return
					}
					d.batcher.Push(ev)
				}
			case <-time.After(idlePollInterval):
			}
		}
	}
}
