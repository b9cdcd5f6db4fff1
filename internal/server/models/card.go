package models

import "time"

// Card is a front/back text pair belonging to exactly one deck. OwnerID
// duplicates the owning deck's owner so authorization checks never need a
// join.
type Card struct {
	ID          string    `json:"id"`
	DeckID      string    `json:"deckId"`
	OwnerID     string    `json:"-"`
	FrontText   string    `json:"frontText"`
	BackText    string    `json:"backText"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
