// internal/event/manager.go
package event

import (
	"github.com/bethropolis/tide-actions/internal/logger"
)

// Handler defines the function signature for event subscribers.
// Returning true consumes the event and stops delivery to later handlers.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
// Dispatch is synchronous on the caller's goroutine; the manager is owned by
// the main loop and is not safe for concurrent use.
type Manager struct {
	handlers map[Type][]Handler // Map event types to a list of handlers
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Event Manager: Handler subscribed to %v", eventType)
}

// Dispatch sends an event to all registered handlers for its type.
// A nil manager is a valid no-op so components can run without a bus.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	if m == nil {
		return
	}
	handlers := m.handlers[eventType]
	if len(handlers) == 0 {
		return
	}

	logger.DebugTagf("event", "Event Manager: Dispatching %v to %d handler(s)", eventType, len(handlers))

	// Copy so a handler subscribing during dispatch doesn't affect this round.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)

	e := Event{Type: eventType, Data: data}
	for _, handler := range handlersCopy {
		if handler(e) {
			break
		}
	}
}
