package cart

import "github.com/google/uuid"

// generateID returns a fresh identity for a cart entry.
func generateID() string {
	return uuid.NewString()
}
