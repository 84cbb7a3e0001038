// Package notify fans committed domain events out to the configured sinks.
// Delivery is asynchronous and best-effort: failures are logged and counted, never returned.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Sink destination of domain events
type Sink interface {
	Name() string
	Send(ctx context.Context, event domain.Event) error
}

// Metrics delivery counters
type Metrics interface {
	EventDelivered(sink string, err error)
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher publishes every event to all sinks in background goroutines
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	metrics Metrics
	logger  Logger

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a dispatcher. Each delivery gets its own timeout.
func NewDispatcher(timeout time.Duration, metrics Metrics, logger Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Publish schedules event for delivery. It detaches from the cancellation of ctx
// because the request that produced the event is usually finished by the time
// the sink is reached.
func (d *Dispatcher) Publish(ctx context.Context, event domain.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("Dispatcher: closed, dropping %s for booking id=%d", event.Type, event.BookingID)
		return
	}

	base := context.WithoutCancel(ctx)
	for _, sink := range d.sinks {
		d.wg.Add(1)
		go d.deliver(base, sink, event)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, sink Sink, event domain.Event) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := sink.Send(ctx, event)
	d.metrics.EventDelivered(sink.Name(), err)
	if err != nil {
		d.logger.Error("Dispatcher: %s failed to deliver %s for booking id=%d: %v",
			sink.Name(), event.Type, event.BookingID, err)
		return
	}
	d.logger.Info("Dispatcher: %s delivered %s for booking id=%d", sink.Name(), event.Type, event.BookingID)
}

// Close stops accepting events and waits for in-flight deliveries
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
