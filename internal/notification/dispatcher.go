package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const dispatchTimeout = 10 * time.Second

// Dispatcher hands messages to a Notifier on a background worker. There is no
// delivery guarantee: failures are logged and dropped, and a full queue drops
// the message rather than blocking the caller.
type Dispatcher struct {
	notifier Notifier
	logger   *slog.Logger
	queue    chan Message
	wg       sync.WaitGroup
	once     sync.Once
}

// NewDispatcher starts a dispatcher with the given queue capacity.
func NewDispatcher(notifier Notifier, logger *slog.Logger, capacity int) *Dispatcher {
	if capacity <= 0 {
		capacity = 64
	}
	d := &Dispatcher{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan Message, capacity),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Dispatch enqueues a message without blocking.
func (d *Dispatcher) Dispatch(message Message) {
	select {
	case d.queue <- message:
	default:
		d.logger.Warn("notification queue full, dropping message", "phone", message.Phone, "template", message.Template)
	}
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for message := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		if err := d.notifier.Send(ctx, message); err != nil {
			d.logger.Warn("notification delivery failed", "phone", message.Phone, "template", message.Template, "error", err)
		}
		cancel()
	}
}
