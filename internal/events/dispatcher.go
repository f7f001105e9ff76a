package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Handler func(ctx context.Context, event Event)

// Publisher is what the services see. Publish never blocks and never
// returns an error: notification is a side effect, not part of the
// financial operation.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Dispatcher fans events out to subscribers from a single delivery
// goroutine, so subscribers observe events in publish order. When the
// buffer is full the event is dropped and logged rather than blocking the
// publishing request.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
	queue    chan Event

	wg   sync.WaitGroup
	once sync.Once
}

func NewDispatcher(buffer int) *Dispatcher {
	return &Dispatcher{
		queue: make(chan Event, buffer),
	}
}

func (d *Dispatcher) Subscribe(handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, handler)
}

func (d *Dispatcher) Publish(ctx context.Context, event Event) {
	select {
	case d.queue <- event:
	default:
		zap.L().Warn("event queue full, dropping event", zap.String("event", event.Name()))
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-d.queue:
				d.deliver(ctx, event)
			}
		}
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, event Event) {
	d.mu.RLock()
	handlers := make([]Handler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if p := recover(); p != nil {
					zap.L().Error("event handler panicked", zap.String("event", event.Name()), zap.Any("panic", p))
				}
			}()
			handler(ctx, event)
		}()
	}
}

// Drain delivers everything still queued and stops. Used on shutdown.
func (d *Dispatcher) Drain(ctx context.Context) {
	d.once.Do(func() {
		for {
			select {
			case event := <-d.queue:
				d.deliver(ctx, event)
			default:
				return
			}
		}
	})
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
