// Package session is the single surface the front-end talks to. It turns
// user gestures into cart and order mutations and exposes everything the UI
// renders as one read-only View.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hammamikhairi/ottomenu/internal/cart"
	"github.com/hammamikhairi/ottomenu/internal/domain"
	"github.com/hammamikhairi/ottomenu/internal/logger"
	"github.com/hammamikhairi/ottomenu/internal/order"
)

// View is a snapshot of everything the UI needs to render.
type View struct {
	Catalog   []domain.MenuItem
	Customs   []domain.MenuItem
	Selection []cart.Match // the cart under the active filter
	CartSize  int          // unfiltered entry count
	Filter    domain.Filter
	Draft     domain.Draft
	LastError error // last rejected draft, nil once a draft is accepted

	Total             string
	OrderState        domain.OrderState
	PlaceOrderAllowed bool
	ConfirmEnabled    bool
}

// Session ties a cart to an order confirmer.
type Session struct {
	store *cart.Store
	order *order.Confirmer
	log   *logger.Logger

	mu      sync.Mutex
	lastErr error
	closed  bool
}

// ErrClosed is returned by events sent after Close.
var ErrClosed = errors.New("session closed")

// New creates a session over an existing store and confirmer.
func New(store *cart.Store, confirmer *order.Confirmer, log *logger.Logger) *Session {
	return &Session{store: store, order: confirmer, log: log}
}

// View builds the current read model. Cart fields come from one store
// snapshot; the order fields are read right after it.
func (s *Session) View() View {
	s.mu.Lock()
	lastErr := s.lastErr
	s.mu.Unlock()

	snap := s.store.Snapshot()
	totalText := cart.FormatCurrency(snap.Total)
	if snap.TotalErr != nil {
		totalText = "R ?"
	}

	state := s.order.State()
	return View{
		Catalog:           snap.Catalog,
		Customs:           snap.Customs,
		Selection:         snap.Filtered,
		CartSize:          snap.Len,
		Filter:            snap.Filter,
		Draft:             snap.Draft,
		LastError:         lastErr,
		Total:             totalText,
		OrderState:        state,
		PlaceOrderAllowed: snap.PlaceOrderAllowed,
		ConfirmEnabled:    state == domain.OrderIdle,
	}
}

// ── Inbound events ───────────────────────────────────────────────

// AddPreset adds the catalog dish at index i to the cart.
func (s *Session) AddPreset(i int) (domain.MenuItem, error) {
	if err := s.check(); err != nil {
		return domain.MenuItem{}, err
	}
	entries, err := s.store.AddPresetAt(i)
	if err != nil {
		s.log.Error("add preset: %v", err)
		return domain.MenuItem{}, fmt.Errorf("adding preset: %w", err)
	}
	return entries[len(entries)-1].Item, nil
}

// AddCustom adds the authored dish at index i of the customs list.
func (s *Session) AddCustom(i int) (domain.MenuItem, error) {
	if err := s.check(); err != nil {
		return domain.MenuItem{}, err
	}
	entries, err := s.store.AddCustomAt(i)
	if err != nil {
		s.log.Error("add custom: %v", err)
		return domain.MenuItem{}, fmt.Errorf("adding custom dish: %w", err)
	}
	return entries[len(entries)-1].Item, nil
}

// RemoveFromMenu takes the catalog dish at index i off the menu, e.g. when
// the kitchen runs out. Entries already in the cart stay.
func (s *Session) RemoveFromMenu(i int) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.store.RemoveCatalogAt(i); err != nil {
		s.log.Error("unlist: %v", err)
		return fmt.Errorf("removing from menu: %w", err)
	}
	return nil
}

// UpdateDraftField sets one field of the custom dish being authored.
func (s *Session) UpdateDraftField(name, value string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.store.UpdateDraftField(name, value)
}

// SubmitDraft commits the draft. A validation failure is remembered for the
// view and returned; the draft keeps what the user typed.
func (s *Session) SubmitDraft() (domain.MenuItem, error) {
	if err := s.check(); err != nil {
		return domain.MenuItem{}, err
	}
	item, err := s.store.SubmitDraft()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if domain.IsValidation(err) {
			s.lastErr = err
		}
		return domain.MenuItem{}, err
	}
	s.lastErr = nil
	return item, nil
}

// RemoveAt removes the i-th entry of the filtered cart as displayed. It is
// mapped back to its position in the full cart before removal.
func (s *Session) RemoveAt(i int) (domain.MenuItem, error) {
	if err := s.check(); err != nil {
		return domain.MenuItem{}, err
	}
	removed, err := s.store.RemoveFilteredAt(i)
	if err != nil {
		s.log.Error("remove: %v", err)
		return domain.MenuItem{}, fmt.Errorf("removing entry: %w", err)
	}
	return removed.Item, nil
}

// ClearSelection empties the cart.
func (s *Session) ClearSelection() error {
	if err := s.check(); err != nil {
		return err
	}
	s.store.Clear()
	return nil
}

// SetFilter narrows the displayed cart. The cart itself is untouched.
func (s *Session) SetFilter(text, course string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.store.SetFilter(text, course)
}

// RequestConfirmOrder starts confirming the current cart.
func (s *Session) RequestConfirmOrder(ctx context.Context) (domain.OrderState, error) {
	if err := s.check(); err != nil {
		return domain.OrderIdle, err
	}
	return s.order.RequestConfirm(ctx, s.store.Items())
}

// RequestConfirmPurchase pays for a confirmed order. The cart is emptied
// once the receipt is recorded.
func (s *Session) RequestConfirmPurchase(ctx context.Context) (*domain.Receipt, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	receipt, err := s.order.RequestPurchase(ctx)
	if err != nil {
		return nil, err
	}
	s.store.Clear()
	return receipt, nil
}

// StartNewOrder abandons the current order and cart and starts over. The
// menu and any authored customs are kept.
func (s *Session) StartNewOrder() error {
	if err := s.check(); err != nil {
		return err
	}
	s.order.Reset()
	s.store.Clear()
	s.store.ResetDraft()

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()

	s.log.Info("new order started")
	return nil
}

// Close cancels any pending confirmation. Further events fail with
// ErrClosed. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	if s.order.Cancel() {
		s.log.Info("pending confirmation cancelled on close")
	}
}

func (s *Session) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}
