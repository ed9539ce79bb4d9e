package store

import (
	"context"
	"sync"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/model"
)

// AlertStore caches the server-computed spending alerts. Read-only: alerts
// have no identity and no mutations, they are fully replaced on each fetch.
type AlertStore struct {
	client *api.Client

	mu       sync.RWMutex
	alerts   []model.SpendingAlert
	inflight int
	err      error
}

// NewAlertStore creates an empty store backed by the given client.
func NewAlertStore(client *api.Client) *AlertStore {
	return &AlertStore{client: client}
}

// Fetch replaces the alerts with the server's.
func (s *AlertStore) Fetch(ctx context.Context) {
	s.begin()
	defer s.end()

	alerts, err := s.client.CheckSpending(ctx)
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.alerts = alerts
	s.err = nil
	s.mu.Unlock()
}

// Refetch is an alias of Fetch.
func (s *AlertStore) Refetch(ctx context.Context) { s.Fetch(ctx) }

// Alerts returns the last fetched alerts.
func (s *AlertStore) Alerts() []model.SpendingAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

// Loading reports whether a fetch is in flight.
func (s *AlertStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err returns the last fetch failure, or nil after a successful fetch.
func (s *AlertStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *AlertStore) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *AlertStore) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}
