// Package cards persists flashcards. As with decks, every predicate
// includes the owner id.
package cards

import (
	"context"

	"github.com/dmitrijs2005/flashdeck/internal/server/models"
)

type Repository interface {
	// Create inserts a new card and fills in its generated id and
	// timestamps.
	Create(ctx context.Context, card *models.Card) (*models.Card, error)

	// Update replaces the text fields and refreshes updated_at. Returns
	// common.ErrorNotFound when no row matched.
	Update(ctx context.Context, cardID, ownerID, frontText, backText, description string) error

	// Delete removes the card owned by ownerID. Returns
	// common.ErrorNotFound when no row matched.
	Delete(ctx context.Context, cardID, ownerID string) error

	// GetDeckID returns the deck a card belongs to, for callers that have
	// only a card id. Returns common.ErrorNotFound when the card does not
	// exist under that owner.
	GetDeckID(ctx context.Context, cardID, ownerID string) (string, error)

	// ListForDeck returns all cards of a deck, unordered.
	ListForDeck(ctx context.Context, deckID, ownerID string) ([]*models.Card, error)
}
