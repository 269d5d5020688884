// Package session keeps the in-memory order sessions and evicts the idle ones.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"jamjam-delivery/internal/apperr"
	"jamjam-delivery/internal/lifecycle"
	"jamjam-delivery/internal/logx"
)

// FlowFactory builds the order flow for a new session.
type FlowFactory func(id string) *lifecycle.Flow

type counter interface {
	Inc()
}

type entry struct {
	flow     *lifecycle.Flow
	lastSeen time.Time
}

// Manager owns every live order session keyed by id.
type Manager struct {
	factory FlowFactory
	logger  logx.Logger
	started counter
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// NewManager returns a session manager backed by the given flow factory.
func NewManager(factory FlowFactory, logger logx.Logger, started counter) *Manager {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Manager{
		factory: factory,
		logger:  logger,
		started: started,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Create starts a fresh session and returns its id together with the flow.
func (m *Manager) Create() (string, *lifecycle.Flow) {
	id := uuid.NewString()
	flow := m.factory(id)

	m.mu.Lock()
	m.entries[id] = &entry{flow: flow, lastSeen: m.now()}
	m.mu.Unlock()

	if m.started != nil {
		m.started.Inc()
	}
	m.logger.Info("session created", logx.String("session_id", id))
	return id, flow
}

// Get returns the flow of a live session and refreshes its idle deadline.
func (m *Manager) Get(id string) (*lifecycle.Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	e.lastSeen = m.now()
	return e.flow, nil
}

// Delete tears a session down. The flow is reset first so that every
// pending timer is disarmed.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	if ok {
		delete(m.entries, id)
	}
	m.mu.Unlock()

	if !ok {
		return apperr.ErrNotFound
	}
	e.flow.Reset()
	m.logger.Info("session deleted", logx.String("session_id", id))
	return nil
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep evicts every session idle for longer than ttl and reports how
// many were removed.
func (m *Manager) Sweep(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	var expired []*entry
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e)
			delete(m.entries, id)
		}
	}
	m.mu.Unlock()

	for _, e := range expired {
		e.flow.Reset()
	}
	if len(expired) > 0 {
		m.logger.Info("sessions swept", logx.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps idle sessions on the given interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ttl)
		}
	}
}
