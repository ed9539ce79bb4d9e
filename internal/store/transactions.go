// Package store holds client-side caches of the remote resource collections.
//
// Each store follows the same contract: Fetch replaces the in-memory
// collection wholesale and captures failures into the store's error state
// (a failed background refresh must never interrupt an already-rendered
// screen), while mutations call straight through to the API, propagate
// errors verbatim, and never patch the local collection — callers refetch
// after a successful mutation to observe the authoritative state.
//
// Concurrent fetches on one store are not sequenced: the last response to
// resolve overwrites the collection, even if it belongs to an older request.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/model"
)

// TransactionStore caches the transaction collection.
type TransactionStore struct {
	client *api.Client

	mu       sync.RWMutex
	txs      []model.Transaction
	inflight int
	err      error
}

// NewTransactionStore creates an empty store backed by the given client.
func NewTransactionStore(client *api.Client) *TransactionStore {
	return &TransactionStore{client: client}
}

// Fetch replaces the collection with the server's. The result is sorted by
// date descending — consumers rely on newest-first ordering.
func (s *TransactionStore) Fetch(ctx context.Context) {
	s.begin()
	defer s.end()

	txs, err := s.client.ListTransactions(ctx)
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	s.mu.Lock()
	s.txs = txs
	s.err = nil
	s.mu.Unlock()
}

// Refetch is an alias of Fetch.
func (s *TransactionStore) Refetch(ctx context.Context) { s.Fetch(ctx) }

// Transactions returns the last fetched collection, newest first.
func (s *TransactionStore) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.txs
}

// Stats derives income/expense/balance aggregates from the current
// collection. Recomputed on every call — nothing survives a refetch.
func (s *TransactionStore) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.ComputeStats(s.txs)
}

// Loading reports whether a fetch is in flight.
func (s *TransactionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err returns the last fetch failure, or nil after a successful fetch.
func (s *TransactionStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Create adds a transaction. The local collection is untouched — refetch to
// observe the server's state.
func (s *TransactionStore) Create(ctx context.Context, in api.TransactionInput) (model.Transaction, error) {
	return s.client.CreateTransaction(ctx, in)
}

// Update modifies a transaction. The local collection is untouched.
func (s *TransactionStore) Update(ctx context.Context, id string, in api.TransactionInput) (model.Transaction, error) {
	return s.client.UpdateTransaction(ctx, id, in)
}

// Delete removes a transaction. The local collection is untouched.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteTransaction(ctx, id)
}

func (s *TransactionStore) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *TransactionStore) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}
