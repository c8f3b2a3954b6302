package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottomenu/internal/domain"
)

// Every user-facing sentence lives here so the tone stays consistent.

// ── Greeting / Global ────────────────────────────────────────────

func LineWelcome() string {
	return "Welcome. Here is today's menu."
}

func LineBye() string {
	return "Bye. Enjoy your meal."
}

func LineUnknown(input string) string {
	if input == "" {
		return "Type a command, or 'help' to see them all."
	}
	return fmt.Sprintf("I didn't catch %q. Type 'help' for commands.", input)
}

func LineBadNumber(payload string) string {
	return fmt.Sprintf("%q is not a number on the list.", payload)
}

// ── Menu and cart ────────────────────────────────────────────────

func LineAdded(name, total string) string {
	return fmt.Sprintf("Added %s. Total is %s.", name, total)
}

func LineRemoved(name, total string) string {
	return fmt.Sprintf("Removed %s. Total is %s.", name, total)
}

func LineUnlisted(name string) string {
	return fmt.Sprintf("%s is off the menu.", name)
}

func LineCleared() string {
	return "Cart cleared."
}

func LineCartEmpty() string {
	return "Your cart is empty. Pick something from the menu with 'add <n>'."
}

func LineNoMatches() string {
	return "Nothing in the cart matches the filter. Type 'unfilter' to see everything."
}

func LineNoCustoms() string {
	return "No custom dishes yet. Start one with 'name <dish>'."
}

func LineTotal(total string, count int) string {
	return fmt.Sprintf("%d item(s), total %s.", count, total)
}

func LineFilterSet(f domain.Filter) string {
	if f.IsZero() {
		return "Showing the whole cart."
	}
	var p []string
	if f.Text != "" {
		p = append(p, fmt.Sprintf("matching %q", f.Text))
	}
	if f.Course.IsSet() {
		p = append(p, "course "+string(f.Course))
	}
	return "Showing cart items " + strings.Join(p, ", ") + "."
}

// ── Custom dishes ────────────────────────────────────────────────

func LineFieldSet(field, value string) string {
	return fmt.Sprintf("%s set to %q.", fieldLabel(field), value)
}

func LineCustomAdded(name, price string, twoStep bool) string {
	if twoStep {
		return fmt.Sprintf("%s (%s) saved. Type 'customs' to see it, 'add custom <n>' to order it.", name, price)
	}
	return fmt.Sprintf("%s (%s) added to your cart.", name, price)
}

// LineRejected explains why a draft could not be committed.
func LineRejected(err error) string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return "That dish could not be added: " + err.Error()
	}
	if errors.Is(ve, domain.ErrInvalidPrice) {
		return "The price must be a number, like 12.50."
	}
	labels := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		labels[i] = fieldLabel(f)
	}
	return "Please fill in: " + strings.Join(labels, ", ") + "."
}

func fieldLabel(field string) string {
	switch field {
	case domain.FieldDishName:
		return "dish name"
	case domain.FieldDescription:
		return "description"
	case domain.FieldCourse:
		return "course"
	case domain.FieldPrice:
		return "price"
	default:
		return field
	}
}

// ── Order ────────────────────────────────────────────────────────

func LineConfirming(total string) string {
	return fmt.Sprintf("Confirming your order (%s)...", total)
}

func LineStillConfirming() string {
	return "Still confirming, hang on."
}

func LineCannotOrder() string {
	return "Add something with a price before ordering."
}

func LineOrderClosed() string {
	return "This order is already confirmed. Type 'purchase' to pay or 'new' to start over."
}

func LineNotConfirmed() string {
	return "Confirm the order first with 'confirm'."
}

func LineNewOrder() string {
	return "Fresh order started."
}
