// Package models contains the persisted entities of the flashdeck server.
package models

import "time"

// Deck is a named collection of flashcards owned by exactly one user.
// OwnerID is immutable after creation and is the sole authorization key:
// every query touching a deck filters on it.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}
