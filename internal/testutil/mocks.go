package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/websocket"
)

// MockSnapshotRepository is a mock implementation of domain.SnapshotRepository
type MockSnapshotRepository struct {
	mu       sync.Mutex
	Stored   *domain.Snapshot
	Saved    []*domain.Snapshot
	LoadFn   func(ctx context.Context) (*domain.Snapshot, error)
	SaveFn   func(ctx context.Context, snapshot *domain.Snapshot) error
	savedSig chan struct{}
}

// NewMockSnapshotRepository creates a new MockSnapshotRepository holding stored
func NewMockSnapshotRepository(stored *domain.Snapshot) *MockSnapshotRepository {
	return &MockSnapshotRepository{
		Stored:   stored,
		savedSig: make(chan struct{}, 64),
	}
}

// Load returns the stored snapshot
func (m *MockSnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stored == nil {
		return domain.NewSnapshot(), nil
	}
	return m.Stored.Clone(), nil
}

// Save records snapshot and replaces the stored one unless SaveFn fails
func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	var err error
	if m.SaveFn != nil {
		err = m.SaveFn(ctx, snapshot)
	}

	m.mu.Lock()
	m.Saved = append(m.Saved, snapshot)
	if err == nil {
		m.Stored = snapshot.Clone()
	}
	m.mu.Unlock()

	select {
	case m.savedSig <- struct{}{}:
	default:
	}
	return err
}

// SaveCount returns the number of Save calls so far
func (m *MockSnapshotRepository) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}

// LastSaved returns the snapshot passed to the most recent Save, or nil
func (m *MockSnapshotRepository) LastSaved() *domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Saved) == 0 {
		return nil
	}
	return m.Saved[len(m.Saved)-1]
}

// WaitForSave blocks until a Save call happens or timeout elapses
func (m *MockSnapshotRepository) WaitForSave(timeout time.Duration) bool {
	select {
	case <-m.savedSig:
		return true
	case <-time.After(timeout):
		return false
	}
}

// RecordingPublisher collects published events
type RecordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

// Publish implements websocket.EventPublisher
func (p *RecordingPublisher) Publish(event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns a copy of the events published so far
func (p *RecordingPublisher) Events() []websocket.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]websocket.Event{}, p.events...)
}

// Types returns the type of every published event, in order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// ErrIDExhausted is returned by FailingIDGenerator once its budget is spent
var ErrIDExhausted = errors.New("id generator exhausted")

// FailingIDGenerator hands out sequential ids and fails after FailAfter calls.
// A negative FailAfter never fails.
type FailingIDGenerator struct {
	mu        sync.Mutex
	Prefix    string
	FailAfter int
	calls     int
}

// NewID implements util.IDGenerator
func (g *FailingIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailAfter >= 0 && g.calls >= g.FailAfter {
		return "", ErrIDExhausted
	}
	g.calls++
	return fmt.Sprintf("%s%04d", g.Prefix, g.calls), nil
}

// SequentialIDGenerator returns a generator that never fails
func SequentialIDGenerator(prefix string) *FailingIDGenerator {
	return &FailingIDGenerator{Prefix: prefix, FailAfter: -1}
}
