// Package orders persists finalized orders. The engine hands the order
// object to a sink verbatim and never mutates it afterwards.
package orders

import (
	"context"
	"sync"

	"medisearch/internal/models"

	"github.com/google/uuid"
)

// Sink is the order persistence collaborator.
type Sink interface {
	AddOrder(ctx context.Context, order *models.Order) (string, error)
}

// MemorySink keeps orders in memory. Used in development with the seed
// provider and as the fixture sink in tests.
type MemorySink struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func NewMemorySink() *MemorySink {
	return &MemorySink{orders: make(map[string]*models.Order)}
}

func (s *MemorySink) AddOrder(_ context.Context, order *models.Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.orders[id] = order
	return id, nil
}

// Get returns a stored order by id.
func (s *MemorySink) Get(id string) (*models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	return o, ok
}

// Count returns the number of stored orders.
func (s *MemorySink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
