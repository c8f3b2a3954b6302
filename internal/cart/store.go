// Package cart implements the order cart: the preset catalog, user-authored
// dishes, the selection, and the rules for adding, removing, totalling and
// filtering.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hammamikhairi/ottomenu/internal/domain"
	"github.com/hammamikhairi/ottomenu/internal/logger"
)

// Option configures the store.
type Option func(*Store)

// WithConsumablePresets makes adding a preset remove it from the catalog, as
// if the kitchen had limited stock. By default presets stay on the menu and
// can be added any number of times.
func WithConsumablePresets() Option {
	return func(s *Store) {
		s.consumable = true
	}
}

// WithTwoStepCustoms makes a committed custom dish land in the customs list
// instead of the selection; AddCustomAt then moves it into the cart.
func WithTwoStepCustoms() Option {
	return func(s *Store) {
		s.twoStep = true
	}
}

// WithIDGenerator overrides how entry IDs are produced.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Store owns the cart for one user session. All methods are safe for
// concurrent use; accessors return copies.
type Store struct {
	mu        sync.RWMutex
	catalog   []domain.MenuItem
	customs   []domain.MenuItem
	selection []domain.Entry
	draft     domain.Draft
	filter    domain.Filter

	consumable bool
	twoStep    bool
	newID      func() string
	log        *logger.Logger
}

// New creates a store whose catalog is a copy of presets.
func New(presets []domain.MenuItem, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		catalog: append([]domain.MenuItem(nil), presets...),
		newID:   generateID,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromSource seeds a store from a menu source.
func NewFromSource(ctx context.Context, src domain.MenuSource, log *logger.Logger, opts ...Option) (*Store, error) {
	presets, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}
	s := New(presets, log, opts...)
	log.Info("cart ready with %d presets (consumable=%t, two-step=%t)", len(presets), s.consumable, s.twoStep)
	return s, nil
}

// ── Read side ────────────────────────────────────────────────────

// Catalog returns the preset dishes still on the menu.
func (s *Store) Catalog() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.MenuItem(nil), s.catalog...)
}

// Customs returns dishes authored in the two-step flow.
func (s *Store) Customs() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.MenuItem(nil), s.customs...)
}

// Selection returns the cart entries in insertion order.
func (s *Store) Selection() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectionLocked()
}

// Items returns just the dishes in the cart, in insertion order.
func (s *Store) Items() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked()
}

// Len returns the number of entries in the cart.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selection)
}

// Draft returns the custom dish currently being authored.
func (s *Store) Draft() domain.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// Total returns the sum of the cart. An error here is an internal
// consistency failure and is logged.
func (s *Store) Total() (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := ComputeTotal(s.itemsLocked())
	if err != nil {
		s.log.Error("computing cart total: %v", err)
		return decimal.Zero, err
	}
	return total, nil
}

// PlaceOrderAllowed reports whether the current cart can be ordered.
func (s *Store) PlaceOrderAllowed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return IsPlaceOrderAllowed(s.itemsLocked())
}

// Filter returns the active filter.
func (s *Store) Filter() domain.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Filtered returns the cart entries matching the active filter, each tagged
// with its index in the full selection so it can be passed to RemoveAt.
func (s *Store) Filtered() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filteredLocked()
}

// Snapshot is a consistent copy of everything the read model needs, taken
// under a single lock.
type Snapshot struct {
	Catalog           []domain.MenuItem
	Customs           []domain.MenuItem
	Filtered          []Match
	Len               int
	Filter            domain.Filter
	Draft             domain.Draft
	Total             decimal.Decimal
	TotalErr          error
	PlaceOrderAllowed bool
}

// Snapshot returns the store's state as of one instant.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.itemsLocked()
	total, err := ComputeTotal(items)
	if err != nil {
		s.log.Error("computing cart total: %v", err)
		total = decimal.Zero
	}
	return Snapshot{
		Catalog:           append([]domain.MenuItem(nil), s.catalog...),
		Customs:           append([]domain.MenuItem(nil), s.customs...),
		Filtered:          s.filteredLocked(),
		Len:               len(s.selection),
		Filter:            s.filter,
		Draft:             s.draft,
		Total:             total,
		TotalErr:          err,
		PlaceOrderAllowed: IsPlaceOrderAllowed(items),
	}
}

// ── Write side ───────────────────────────────────────────────────

// AddPreset appends a copy of item to the cart. Presets are trusted and not
// validated. With consumable presets the first catalog dish of the same name
// is taken off the menu.
func (s *Store) AddPreset(item domain.MenuItem) []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addPresetLocked(item)
	return s.selectionLocked()
}

// AddPresetAt adds the catalog dish at index i.
func (s *Store) AddPresetAt(i int) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.catalog) {
		return nil, fmt.Errorf("catalog index %d of %d: %w", i, len(s.catalog), domain.ErrIndexOutOfRange)
	}
	s.addPresetLocked(s.catalog[i])
	return s.selectionLocked(), nil
}

// AddCustomAt adds the authored dish at index i of the customs list. The
// dish stays in the list so it can be ordered again.
func (s *Store) AddCustomAt(i int) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.customs) {
		return nil, fmt.Errorf("custom index %d of %d: %w", i, len(s.customs), domain.ErrIndexOutOfRange)
	}
	s.appendLocked(s.customs[i])
	return s.selectionLocked(), nil
}

// RemoveCatalogAt takes the preset at index i off the menu.
func (s *Store) RemoveCatalogAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.catalog) {
		return fmt.Errorf("catalog index %d of %d: %w", i, len(s.catalog), domain.ErrIndexOutOfRange)
	}
	name := s.catalog[i].DishName
	s.catalog = append(s.catalog[:i], s.catalog[i+1:]...)
	s.log.Info("preset %q removed from the menu", name)
	return nil
}

// UpdateDraftField sets one field of the draft. Values are stored as typed;
// they are only checked when the draft is committed.
func (s *Store) UpdateDraftField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := setDraftField(s.draft, name, value)
	if err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	s.draft = d
	return nil
}

// ResetDraft discards the draft.
func (s *Store) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = domain.Draft{}
}

// CommitCustomItem validates d and, if it passes, adds the resulting dish to
// the cart (or to the customs list in the two-step flow) and clears the
// draft. On failure nothing changes and the *domain.ValidationError is
// returned.
func (s *Store) CommitCustomItem(d domain.Draft) (domain.MenuItem, error) {
	item, err := ValidateDraft(d)
	if err != nil {
		s.log.Debug("draft rejected: %v", err)
		return domain.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.twoStep {
		s.customs = append(s.customs, item)
	} else {
		s.appendLocked(item)
	}
	s.draft = domain.Draft{}
	s.log.Info("custom dish %q committed (%s, %s)", item.DishName, item.Course, item.Price)
	return item, nil
}

// SubmitDraft commits the store's own draft.
func (s *Store) SubmitDraft() (domain.MenuItem, error) {
	return s.CommitCustomItem(s.Draft())
}

// RemoveAt removes the entry at index i, keeping the order of the rest.
func (s *Store) RemoveAt(i int) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.selection) {
		return nil, fmt.Errorf("cart index %d of %d: %w", i, len(s.selection), domain.ErrIndexOutOfRange)
	}
	removed := s.selection[i]
	s.selection = append(s.selection[:i], s.selection[i+1:]...)
	s.log.Debug("removed %q (%s) at %d, %d left", removed.Item.DishName, removed.ID, i, len(s.selection))
	return s.selectionLocked(), nil
}

// RemoveFilteredAt removes the i-th entry of the filtered view. The lookup
// and the removal happen under one lock, so the entry removed is the one
// that was shown at position i.
func (s *Store) RemoveFilteredAt(i int) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shown := s.filteredLocked()
	if i < 0 || i >= len(shown) {
		return domain.Entry{}, fmt.Errorf("filtered index %d of %d: %w", i, len(shown), domain.ErrIndexOutOfRange)
	}
	target := shown[i]
	s.selection = append(s.selection[:target.Index], s.selection[target.Index+1:]...)
	s.log.Debug("removed %q (%s) at %d, %d left", target.Entry.Item.DishName, target.Entry.ID, target.Index, len(s.selection))
	return target.Entry, nil
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("clearing %d entries", len(s.selection))
	s.selection = nil
}

// SetFilter changes the filter used by Filtered. The course label is
// normalized; an unknown label is rejected and the filter left unchanged.
func (s *Store) SetFilter(text, course string) error {
	c, ok := domain.ParseCourse(course)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCourse, course)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = domain.Filter{Text: text, Course: c}
	return nil
}

// ── Helpers (caller holds mu) ────────────────────────────────────

func (s *Store) addPresetLocked(item domain.MenuItem) {
	s.appendLocked(item)
	if !s.consumable {
		return
	}
	for i, c := range s.catalog {
		if c.DishName == item.DishName {
			s.catalog = append(s.catalog[:i], s.catalog[i+1:]...)
			s.log.Debug("preset %q consumed, %d left on the menu", item.DishName, len(s.catalog))
			return
		}
	}
}

func (s *Store) appendLocked(item domain.MenuItem) {
	s.selection = append(s.selection, domain.Entry{ID: s.newID(), Item: item})
	s.log.Debug("added %q to cart, %d entries", item.DishName, len(s.selection))
}

func (s *Store) filteredLocked() []Match {
	m := newMatcher(s.filter.Text, s.filter.Course)
	out := make([]Match, 0, len(s.selection))
	for i, e := range s.selection {
		if m.match(e.Item) {
			out = append(out, Match{Index: i, Entry: e})
		}
	}
	return out
}

func (s *Store) selectionLocked() []domain.Entry {
	return append([]domain.Entry(nil), s.selection...)
}

func (s *Store) itemsLocked() []domain.MenuItem {
	out := make([]domain.MenuItem, len(s.selection))
	for i, e := range s.selection {
		out[i] = e.Item
	}
	return out
}
