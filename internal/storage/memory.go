// Package storage provides receipt storage implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/ottomenu/internal/domain"
	"github.com/hammamikhairi/ottomenu/internal/logger"
)

// Compile-time interface check.
var _ domain.ReceiptStore = (*MemoryStore)(nil)

// MemoryStore keeps receipts for the life of the process. Safe for
// concurrent access.
type MemoryStore struct {
	mu       sync.RWMutex
	receipts map[string]*domain.Receipt
	log      *logger.Logger
}

// NewMemoryStore creates an empty in-memory receipt store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		receipts: make(map[string]*domain.Receipt),
		log:      log,
	}
}

// Save stores a receipt. Overwrites if it already exists.
func (s *MemoryStore) Save(ctx context.Context, receipt *domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving receipt %s (items=%d, total=%s)", receipt.ID, len(receipt.Items), receipt.Total.StringFixed(2))
	s.receipts[receipt.ID] = receipt
	return nil
}

// Load retrieves a receipt by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.receipts[id]
	if !ok {
		s.log.Debug("receipt not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// List returns every receipt, oldest purchase first.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Receipt, 0, len(s.receipts))
	for _, r := range s.receipts {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchasedAt.Before(out[j].PurchasedAt) })
	s.log.Debug("listing receipts, count=%d", len(out))
	return out, nil
}
