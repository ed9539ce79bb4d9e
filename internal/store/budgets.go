package store

import (
	"context"
	"sync"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/model"
)

// BudgetStore caches the budget collection.
type BudgetStore struct {
	client *api.Client

	mu       sync.RWMutex
	budgets  []model.Budget
	inflight int
	err      error
}

// NewBudgetStore creates an empty store backed by the given client.
func NewBudgetStore(client *api.Client) *BudgetStore {
	return &BudgetStore{client: client}
}

// Fetch replaces the collection with the server's.
func (s *BudgetStore) Fetch(ctx context.Context) {
	s.begin()
	defer s.end()

	budgets, err := s.client.ListBudgets(ctx)
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.budgets = budgets
	s.err = nil
	s.mu.Unlock()
}

// Refetch is an alias of Fetch.
func (s *BudgetStore) Refetch(ctx context.Context) { s.Fetch(ctx) }

// Budgets returns the last fetched collection.
func (s *BudgetStore) Budgets() []model.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgets
}

// Loading reports whether a fetch is in flight.
func (s *BudgetStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err returns the last fetch failure, or nil after a successful fetch.
func (s *BudgetStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Create adds a budget. The local collection is untouched — refetch to
// observe the server's state.
func (s *BudgetStore) Create(ctx context.Context, in api.BudgetInput) (model.Budget, error) {
	return s.client.CreateBudget(ctx, in)
}

// Update modifies a budget. The local collection is untouched.
func (s *BudgetStore) Update(ctx context.Context, id string, in api.BudgetInput) (model.Budget, error) {
	return s.client.UpdateBudget(ctx, id, in)
}

// Delete removes a budget. The local collection is untouched.
func (s *BudgetStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteBudget(ctx, id)
}

func (s *BudgetStore) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *BudgetStore) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}
