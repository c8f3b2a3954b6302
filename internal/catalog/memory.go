// Package catalog provides preset dish sources.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/hammamikhairi/ottomenu/internal/domain"
	"github.com/hammamikhairi/ottomenu/internal/logger"
)

// Compile-time interface check.
var _ domain.MenuSource = (*MemorySource)(nil)

// MemorySource holds the chef's dishes in memory, in menu order.
// Safe for concurrent reads.
type MemorySource struct {
	mu     sync.RWMutex
	dishes []domain.MenuItem
	log    *logger.Logger
}

// NewMemorySource creates a source preloaded with the house dishes.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{log: log}
	src.seed()
	return src
}

// NewMemorySourceFrom creates a source holding exactly the given dishes.
func NewMemorySourceFrom(log *logger.Logger, dishes []domain.MenuItem) *MemorySource {
	return &MemorySource{
		dishes: append([]domain.MenuItem(nil), dishes...),
		log:    log,
	}
}

// List returns every dish in menu order. The slice is a copy.
func (s *MemorySource) List(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all dishes, count=%d", len(s.dishes))
	return append([]domain.MenuItem(nil), s.dishes...), nil
}

// Get returns the first dish with the given name (case-insensitive).
func (s *MemorySource) Get(ctx context.Context, dishName string) (domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.dishes {
		if strings.EqualFold(d.DishName, dishName) {
			return d, nil
		}
	}
	s.log.Debug("dish not found: %s", dishName)
	return domain.MenuItem{}, domain.ErrNotFound
}

// Search returns dishes whose name, description or course contain the query.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching dishes for: %s", q)

	var out []domain.MenuItem
	for _, d := range s.dishes {
		if matches(d, q) {
			out = append(out, d)
		}
	}
	return out, nil
}

func matches(d domain.MenuItem, query string) bool {
	if strings.Contains(strings.ToLower(d.DishName), query) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Description), query) {
		return true
	}
	return d.Course.IsSet() && strings.Contains(string(d.Course), query)
}

// seed populates the source with the house dishes. Course labels go through
// domain.NewMenuItem so the capitalised labels end up lowercase.
func (s *MemorySource) seed() {
	house := []struct {
		name, desc, course, price string
	}{
		{"Caesar Salad", "Crispy romaine lettuce, croutons, and Caesar dressing", "Starter", "59.99"},
		{"Spaghetti Carbonara", "Pasta with creamy sauce, pancetta, and parmesan cheese", "Main", "120.99"},
		{"Chocolate Cake", "Decadent cake with rich chocolate frosting", "Dessert", "45.99"},
	}
	for _, h := range house {
		item, err := domain.NewMenuItem(h.name, h.desc, h.course, h.price)
		if err != nil {
			s.log.Error("seeding %q: %v", h.name, err)
			continue
		}
		s.dishes = append(s.dishes, item)
	}
	s.log.Debug("seeded %d dishes", len(s.dishes))
}
