// Package events is a fire-and-forget in-process event bus. Services publish
// after a successful commit; delivery is best-effort and never blocks or
// fails the request path. The Publisher interface is the seam where an
// external broker client would slot in.
package events

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	UserRegistered Type = "user.registered"
	CardAssigned   Type = "card.assigned"
)

type Event struct {
	ID      string
	Type    Type
	At      time.Time
	Payload any
}

// UserRegisteredPayload accompanies UserRegistered events.
type UserRegisteredPayload struct {
	UserID uint64
	Email  string
}

// CardAssignedPayload accompanies CardAssigned events.
type CardAssignedPayload struct {
	CardID        uint64
	CardTitle     string
	AssigneeEmail string
}

// Publisher is the producer half of the bus.
type Publisher interface {
	Publish(eventType Type, payload any)
}

type Handler func(Event)

// Bus fans events out to subscribers on a single background goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	ch       chan Event
	done     chan struct{}
}

func NewBus() *Bus {
	b := &Bus{
		ch:   make(chan Event, 64),
		done: make(chan struct{}),
	}
	go b.run()
	return b
}

// Subscribe registers a handler for all subsequent events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish enqueues the event. If the buffer is full the event is dropped
// with a log line rather than blocking the caller.
func (b *Bus) Publish(eventType Type, payload any) {
	e := Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		At:      time.Now(),
		Payload: payload,
	}

	select {
	case b.ch <- e:
	default:
		log.Printf("event bus full, dropping %s event %s", e.Type, e.ID)
	}
}

// Close stops the dispatch loop after draining buffered events.
func (b *Bus) Close() {
	close(b.ch)
	<-b.done
}

func (b *Bus) run() {
	defer close(b.done)
	for e := range b.ch {
		b.mu.RLock()
		handlers := b.handlers
		b.mu.RUnlock()

		for _, h := range handlers {
			h(e)
		}
	}
}
