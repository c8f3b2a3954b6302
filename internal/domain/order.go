package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderState tracks the confirmation lifecycle of the current order.
type OrderState int

const (
	OrderIdle OrderState = iota
	OrderConfirming
	OrderConfirmed
	OrderPurchased
)

// String returns a human-readable order state.
func (s OrderState) String() string {
	switch s {
	case OrderIdle:
		return "idle"
	case OrderConfirming:
		return "confirming"
	case OrderConfirmed:
		return "confirmed"
	case OrderPurchased:
		return "purchased"
	default:
		return "unknown"
	}
}

// Receipt records a purchased order. It lives only as long as the process.
type Receipt struct {
	ID          string
	Items       []MenuItem
	Total       decimal.Decimal
	ConfirmedAt time.Time
	PurchasedAt time.Time
}
