package order

import "github.com/google/uuid"

// generateID creates a receipt ID.
func generateID() string {
	return uuid.NewString()
}
