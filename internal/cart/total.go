package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hammamikhairi/ottomenu/internal/domain"
)

// CurrencyPrefix is prepended to every displayed amount.
const CurrencyPrefix = "R "

// ComputeTotal sums the parsed prices of items. A price that does not parse
// means something bypassed validation upstream; the error wraps
// domain.ErrMalformedPrice and names the dish.
func ComputeTotal(items []domain.MenuItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, item := range items {
		amount, err := item.Amount()
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: item %d (%q) has price %q", domain.ErrMalformedPrice, i, item.DishName, item.Price)
		}
		total = total.Add(amount)
	}
	return total, nil
}

// FormatTotal renders an amount with exactly two fractional digits,
// rounding half away from zero.
func FormatTotal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatCurrency renders an amount for display, e.g. "R 180.98".
func FormatCurrency(d decimal.Decimal) string {
	return CurrencyPrefix + FormatTotal(d)
}

// FormatPrice renders a dish price for display. A price that does not parse
// is shown as stored.
func FormatPrice(item domain.MenuItem) string {
	amount, err := item.Amount()
	if err != nil {
		return CurrencyPrefix + item.Price
	}
	return FormatCurrency(amount)
}

// IsPlaceOrderAllowed reports whether items can be ordered: the list is
// non-empty and sums to more than zero.
func IsPlaceOrderAllowed(items []domain.MenuItem) bool {
	if len(items) == 0 {
		return false
	}
	total, err := ComputeTotal(items)
	if err != nil {
		return false
	}
	return total.IsPositive()
}
