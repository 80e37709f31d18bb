// Package eventbus fans catalog events out to in-process consumers once the
// activity recorder has written them: a log line per change, and the
// landlord audit re-run after events that reshape the catalog.
package eventbus

import (
	"context"
	"log"
	"sync"

	"github.com/matthewbaird/silic/internal/event"
)

// DefaultBuffer is the queue length used when New gets a size below one.
const DefaultBuffer = 256

// Handler consumes one catalog event.
type Handler interface {
	HandleEvent(ctx context.Context, evt event.DomainEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt event.DomainEvent) error

func (f HandlerFunc) HandleEvent(ctx context.Context, evt event.DomainEvent) error {
	return f(ctx, evt)
}

// Bus queues catalog events and hands each one to the consumers subscribed
// to its type, one event at a time and in publish order. A consumer never
// sees two events at once, so the audit always reads a settled catalog.
type Bus struct {
	mu      sync.RWMutex
	subs    []subscription
	started bool
	closed  bool
	dropped int
	queue   chan event.DomainEvent
	done    chan struct{}
}

type subscription struct {
	name    string
	handler Handler
	types   map[string]bool // nil: every event type
}

func (s subscription) wants(eventType string) bool {
	return s.types == nil || s.types[eventType]
}

// New creates a bus whose queue holds size events.
func New(size int) *Bus {
	if size < 1 {
		size = DefaultBuffer
	}
	return &Bus{
		queue: make(chan event.DomainEvent, size),
		done:  make(chan struct{}),
	}
}

// Subscribe registers h under name for the listed event types, or for every
// type when none are listed. Subscribe before Start.
func (b *Bus) Subscribe(name string, h Handler, eventTypes ...string) {
	s := subscription{name: name, handler: h}
	if len(eventTypes) > 0 {
		s.types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			s.types[t] = true
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, s)
}

// Publish queues evt without blocking. A full queue or a stopped bus drops
// the event and counts it; the activity entry is already written, only the
// consumers miss it.
func (b *Bus) Publish(_ context.Context, evt event.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		b.dropped++
		log.Printf("eventbus: stopped, dropping %s (%s)", evt.EventType, evt.ID)
		return
	}
	select {
	case b.queue <- evt:
	default:
		b.dropped++
		log.Printf("eventbus: queue full, dropping %s (%s)", evt.EventType, evt.ID)
	}
}

// Dropped reports how many published events never reached the consumers.
func (b *Bus) Dropped() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

// Start runs the consumer goroutine until ctx is cancelled or Stop is
// called. Queued events are delivered either way. Later calls are no-ops.
func (b *Bus) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return
	}
	b.started = true
	go b.consume(ctx)
}

func (b *Bus) consume(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case evt, ok := <-b.queue:
			if !ok {
				return
			}
			b.dispatch(ctx, evt)
		case <-ctx.Done():
			b.drain(ctx)
			return
		}
	}
}

func (b *Bus) drain(ctx context.Context) {
	for {
		select {
		case evt, ok := <-b.queue:
			if !ok {
				return
			}
			b.dispatch(ctx, evt)
		default:
			return
		}
	}
}

// Stop closes the queue and, if the consumer runs, waits for it to deliver
// what is left. It is safe to call more than once.
func (b *Bus) Stop() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	started := b.started
	b.mu.Unlock()
	if started {
		<-b.done
	}
}

func (b *Bus) dispatch(ctx context.Context, evt event.DomainEvent) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, s := range subs {
		if !s.wants(evt.EventType) {
			continue
		}
		if err := s.handler.HandleEvent(ctx, evt); err != nil {
			log.Printf("eventbus: %s failed on %s: %v", s.name, evt.EventType, err)
		}
	}
}
