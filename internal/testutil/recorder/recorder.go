// Package recorder test doubles capturing published events and metric calls
package recorder

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Events captures published events
type Events struct {
	mu     sync.Mutex
	events []domain.Event
}

// NewEvents creates an empty event recorder
func NewEvents() *Events {
	return &Events{}
}

// Publish records event
func (e *Events) Publish(_ context.Context, event domain.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

// All returns recorded events in publish order
func (e *Events) All() []domain.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Event(nil), e.events...)
}

// Types returns the types of recorded events in publish order
func (e *Events) Types() []domain.EventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	types := make([]domain.EventType, len(e.events))
	for i, ev := range e.events {
		types[i] = ev.Type
	}
	return types
}

// Metrics counts domain metric calls
type Metrics struct {
	mu                 sync.Mutex
	BookingsCreated    int
	CapacityRejections map[int64]int
	Assignments        map[string]int // "mode/outcome"
	InvoicesIssued     int
}

// NewMetrics creates an empty metrics recorder
func NewMetrics() *Metrics {
	return &Metrics{
		CapacityRejections: make(map[int64]int),
		Assignments:        make(map[string]int),
	}
}

func (m *Metrics) BookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BookingsCreated++
}

func (m *Metrics) CapacityRejected(categoryID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CapacityRejections[categoryID]++
}

func (m *Metrics) RoomAssignment(mode, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Assignments[mode+"/"+outcome]++
}

func (m *Metrics) InvoiceIssued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvoicesIssued++
}

// Assigned number of RoomAssignment calls for mode and outcome
func (m *Metrics) Assigned(mode, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Assignments[mode+"/"+outcome]
}
