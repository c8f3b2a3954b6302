package domain

import "context"

// MenuSource provides the chef's preset dishes. Implementations can be
// in-memory (hardcoded), file-based, or API-backed.
type MenuSource interface {
	List(ctx context.Context) ([]MenuItem, error)
	Get(ctx context.Context, dishName string) (MenuItem, error)
	Search(ctx context.Context, query string) ([]MenuItem, error)
}

// ReceiptStore keeps purchased orders for the lifetime of the session.
type ReceiptStore interface {
	Save(ctx context.Context, receipt *Receipt) error
	Load(ctx context.Context, id string) (*Receipt, error)
	List(ctx context.Context) ([]*Receipt, error)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or to the terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
