package eventbus

import (
	"io"
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"checker/pkg/checker"
)

const bufferSize = 1000

// Handler is a function that handles checker events
type Handler func(checker.Event)

// EventBus delivers checker events to subscribers asynchronously.
// It satisfies checker.Publisher, so it can be handed to a Checker directly.
type EventBus interface {
	Publish(event checker.Event)
	// Subscribe registers handler for eventType and returns an unsubscribe function
	Subscribe(eventType checker.EventType, handler Handler) func()
	// Close delivers queued events, waits for running handlers and stops the bus
	Close()
}

type subscription struct {
	id      uint64
	handler Handler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	handlers map[checker.EventType][]subscription
	nextID   uint64

	eventChan chan checker.Event
	quit      chan struct{}
	closeOnce sync.Once

	// stateMu makes the closed check and the enqueue in Publish atomic with Close
	stateMu sync.RWMutex
	closed  bool

	dispatcher sync.WaitGroup
	inflight   sync.WaitGroup

	logger *log.Logger
}

// New creates a new event bus and starts its dispatcher
func New(logger *log.Logger) EventBus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &bus{
		handlers:  make(map[checker.EventType][]subscription),
		eventChan: make(chan checker.Event, bufferSize),
		quit:      make(chan struct{}),
		logger:    logger.WithPrefix("eventbus"),
	}

	b.dispatcher.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for delivery. Events are dropped when the bus is
// closed or its buffer is full.
func (b *bus) Publish(event checker.Event) {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()

	if b.closed {
		b.logger.Warn("bus closed, dropping event", "type", event.Type())
		return
	}
	b.logger.Debug("publishing event", "type", event.Type())

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("bus channel full, dropping event", "type", event.Type())
	}
}

func (b *bus) Subscribe(eventType checker.EventType, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

func (b *bus) Close() {
	b.closeOnce.Do(func() {
		b.stateMu.Lock()
		b.closed = true
		b.stateMu.Unlock()
		close(b.quit)
	})
	b.dispatcher.Wait()
	b.inflight.Wait()
}

// dispatch fans events out to subscribers until the bus is closed
func (b *bus) dispatch() {
	defer b.dispatcher.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)
		case <-b.quit:
			// deliver whatever was queued before Close
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event checker.Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
				}
			}()
			h(event)
		}(s.handler)
	}
}
