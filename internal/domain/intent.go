package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentShowMenu
	IntentAddPreset
	IntentAddCustom
	IntentUnlist
	IntentSetField   // Payload: value, Field: draft field name
	IntentSubmitDraft
	IntentShowCustoms
	IntentShowCart
	IntentRemove
	IntentClear
	IntentFilter // Payload: query text, Field: course label
	IntentUnfilter
	IntentTotal
	IntentConfirm
	IntentPurchase
	IntentNewOrder
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentShowMenu:
		return "show_menu"
	case IntentAddPreset:
		return "add_preset"
	case IntentAddCustom:
		return "add_custom"
	case IntentUnlist:
		return "unlist"
	case IntentSetField:
		return "set_field"
	case IntentSubmitDraft:
		return "submit_draft"
	case IntentShowCustoms:
		return "show_customs"
	case IntentShowCart:
		return "show_cart"
	case IntentRemove:
		return "remove"
	case IntentClear:
		return "clear"
	case IntentFilter:
		return "filter"
	case IntentUnfilter:
		return "unfilter"
	case IntentTotal:
		return "total"
	case IntentConfirm:
		return "confirm"
	case IntentPurchase:
		return "purchase"
	case IntentNewOrder:
		return "new_order"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. a 1-based index or a field value
	Field   string // draft field for IntentSetField, course label for IntentFilter
}
