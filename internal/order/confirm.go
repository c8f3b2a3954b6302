// Package order implements the order confirmation state machine:
// Idle → Confirming → Confirmed → Purchased.
package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hammamikhairi/ottomenu/internal/cart"
	"github.com/hammamikhairi/ottomenu/internal/domain"
	"github.com/hammamikhairi/ottomenu/internal/logger"
	"github.com/hammamikhairi/ottomenu/internal/timer"
)

// DefaultConfirmDelay is how long the simulated confirmation takes.
const DefaultConfirmDelay = 2 * time.Second

// Scheduler runs a function once after a delay. *timer.Scheduler satisfies it.
type Scheduler interface {
	After(delay time.Duration, label string, fn func(ctx context.Context)) (*timer.Task, error)
}

// Option configures the confirmer.
type Option func(*Confirmer)

// WithConfirmDelay sets how long an order stays in the confirming state.
func WithConfirmDelay(d time.Duration) Option {
	return func(c *Confirmer) {
		c.delay = d
	}
}

// Confirmer drives one order through confirmation and purchase.
type Confirmer struct {
	scheduler Scheduler
	receipts  domain.ReceiptStore
	notifier  domain.Notifier
	log       *logger.Logger
	delay     time.Duration

	mu          sync.Mutex
	state       domain.OrderState
	gen         uint64 // bumped on every schedule/cancel; stale tasks compare against it
	pending     *timer.Task
	items       []domain.MenuItem
	total       decimal.Decimal
	confirmedAt time.Time
	receipt     *domain.Receipt
}

// New creates a confirmer in the idle state.
func New(scheduler Scheduler, receipts domain.ReceiptStore, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Confirmer {
	c := &Confirmer{
		scheduler: scheduler,
		receipts:  receipts,
		notifier:  notifier,
		log:       log,
		delay:     DefaultConfirmDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current order state.
func (c *Confirmer) State() domain.OrderState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ConfirmEnabled reports whether a confirm request would start a new
// confirmation. It is false while one is already in flight.
func (c *Confirmer) ConfirmEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == domain.OrderIdle
}

// Items returns the dishes captured when confirmation was requested.
func (c *Confirmer) Items() []domain.MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.MenuItem(nil), c.items...)
}

// Total returns the total captured when confirmation was requested.
func (c *Confirmer) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Receipt returns the receipt of the purchased order, or nil.
func (c *Confirmer) Receipt() *domain.Receipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipt
}

// RequestConfirm starts confirming items. The items are snapshotted, so later
// cart edits do not change the order being confirmed. While a confirmation
// is in flight further requests are no-ops that return OrderConfirming.
func (c *Confirmer) RequestConfirm(ctx context.Context, items []domain.MenuItem) (domain.OrderState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case domain.OrderConfirming:
		c.log.Debug("confirm ignored: already confirming")
		return c.state, nil
	case domain.OrderConfirmed, domain.OrderPurchased:
		return c.state, domain.ErrOrderClosed
	}

	if !cart.IsPlaceOrderAllowed(items) {
		return c.state, domain.ErrOrderNotAllowed
	}
	total, err := cart.ComputeTotal(items)
	if err != nil {
		c.log.Error("confirm: %v", err)
		return c.state, err
	}

	c.gen++
	gen := c.gen
	task, err := c.scheduler.After(c.delay, "order-confirm", func(ctx context.Context) {
		c.complete(ctx, gen)
	})
	if err != nil {
		return c.state, fmt.Errorf("scheduling confirmation: %w", err)
	}

	c.pending = task
	c.items = append([]domain.MenuItem(nil), items...)
	c.total = total
	c.state = domain.OrderConfirming
	c.log.Info("confirming order: %d item(s), %s (delay=%s)", len(items), cart.FormatCurrency(total), c.delay)
	return c.state, nil
}

// complete is the deferred Confirming → Confirmed transition.
func (c *Confirmer) complete(ctx context.Context, gen uint64) {
	c.mu.Lock()
	if c.state != domain.OrderConfirming || c.gen != gen {
		c.mu.Unlock()
		c.log.Debug("stale confirmation task %d ignored", gen)
		return
	}
	c.state = domain.OrderConfirmed
	c.pending = nil
	c.confirmedAt = time.Now()
	n, total := len(c.items), c.total
	c.mu.Unlock()

	c.log.Info("order confirmed")
	msg := fmt.Sprintf("[Order] Confirmed: %d item(s), %s. Type 'purchase' to pay.", n, cart.FormatCurrency(total))
	if err := c.notifier.Notify(ctx, msg); err != nil {
		c.log.Error("notifying confirmation: %v", err)
	}
}

// RequestPurchase completes a confirmed order and records its receipt.
func (c *Confirmer) RequestPurchase(ctx context.Context) (*domain.Receipt, error) {
	receipt, err := c.purchase(ctx)
	if err != nil {
		return nil, err
	}

	// Notify without holding mu: the UI's print path blocks until its event
	// loop is free, and that loop reads State.
	msg := fmt.Sprintf("[Order] Purchased. Receipt %s, %s.", receipt.ID[:8], cart.FormatCurrency(receipt.Total))
	if err := c.notifier.NotifyUrgent(ctx, msg); err != nil {
		c.log.Error("notifying purchase: %v", err)
	}
	return receipt, nil
}

// purchase performs the Confirmed → Purchased transition under mu.
func (c *Confirmer) purchase(ctx context.Context) (*domain.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.OrderConfirmed {
		return nil, fmt.Errorf("purchase while %s: %w", c.state, domain.ErrNotConfirmed)
	}

	receipt := &domain.Receipt{
		ID:          generateID(),
		Items:       append([]domain.MenuItem(nil), c.items...),
		Total:       c.total,
		ConfirmedAt: c.confirmedAt,
		PurchasedAt: time.Now(),
	}
	if err := c.receipts.Save(ctx, receipt); err != nil {
		return nil, fmt.Errorf("saving receipt: %w", err)
	}

	c.receipt = receipt
	c.state = domain.OrderPurchased
	c.log.Info("order purchased, receipt %s", receipt.ID)
	return receipt, nil
}

// Cancel abandons an in-flight confirmation so the deferred transition never
// fires. It reports whether anything was cancelled.
func (c *Confirmer) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.OrderConfirming {
		return false
	}
	c.gen++
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
	c.state = domain.OrderIdle
	c.items = nil
	c.total = decimal.Zero
	c.log.Info("order confirmation cancelled")
	return true
}

// Reset starts a fresh order, dropping any in-flight confirmation.
func (c *Confirmer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
	c.state = domain.OrderIdle
	c.items = nil
	c.total = decimal.Zero
	c.confirmedAt = time.Time{}
	c.receipt = nil
	c.log.Debug("order reset")
}
