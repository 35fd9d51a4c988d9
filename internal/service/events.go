package service

import "github.com/dafibh/zerobudget/internal/websocket"

// eventSource holds the optional publisher shared by the mutating services
type eventSource struct {
	eventPublisher websocket.EventPublisher
}

// SetEventPublisher sets the event publisher for real-time updates
func (e *eventSource) SetEventPublisher(publisher websocket.EventPublisher) {
	e.eventPublisher = publisher
}

// publishEvent publishes an event if a publisher is configured
func (e *eventSource) publishEvent(event websocket.Event) {
	if e.eventPublisher != nil {
		e.eventPublisher.Publish(event)
	}
}
