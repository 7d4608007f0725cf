// Package domain contains core concepts of the chat event system.
// Entities are referenced by integer identifiers and owned by the repositories.
// No runtime, network, or storage logic should be added here.
package domain

type UserID int64

// User is immutable once registered.
type User struct {
	ID   UserID
	Name string
}
