package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

type Writer interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events off the request path. A full queue drops
// the event; audit never fails an API call.
type Dispatcher struct {
	writer Writer
	logger *slog.Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(writer Writer, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		logger: logger,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.writer.Log(ctx, ev); err != nil {
			d.logger.Error("audit write failed", "action", ev.Action, "error", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("audit dispatcher closed, dropping event", "action", ev.Action)
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
