package websocket

import "sync"

// EventPublisher defines the interface for publishing budget events
type EventPublisher interface {
	// Publish delivers an event to every interested subscriber
	Publish(event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event to connected clients
func (h *Hub) Publish(event Event) {
	h.Broadcast(event)
}

// NoOpPublisher is a publisher that does nothing (for testing or when real-time updates are disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(event Event) {}

// MultiPublisher fans an event out to several publishers
type MultiPublisher struct {
	mu         sync.RWMutex
	publishers []EventPublisher
}

// NewMultiPublisher creates a MultiPublisher over publishers
func NewMultiPublisher(publishers ...EventPublisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

// Add registers another publisher
func (m *MultiPublisher) Add(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishers = append(m.publishers, p)
}

// Publish implements EventPublisher
func (m *MultiPublisher) Publish(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.publishers {
		p.Publish(event)
	}
}
