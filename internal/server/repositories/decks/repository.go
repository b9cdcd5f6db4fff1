// Package decks persists decks. Every operation scopes its predicate by
// owner id; there is no other authorization mechanism.
package decks

import (
	"context"

	"github.com/dmitrijs2005/flashdeck/internal/server/models"
)

type Repository interface {
	// Create inserts a new deck and fills in its generated id and
	// timestamps.
	Create(ctx context.Context, deck *models.Deck) (*models.Deck, error)

	// Delete removes the deck owned by ownerID. Cards are removed by the
	// storage-level cascade. Returns common.ErrorNotFound when no row
	// matched.
	Delete(ctx context.Context, deckID, ownerID string) error

	// GetByID returns the deck, or common.ErrorNotFound when it does not
	// exist under that owner.
	GetByID(ctx context.Context, deckID, ownerID string) (*models.Deck, error)

	// ListForOwner returns all decks of the owner, unordered.
	ListForOwner(ctx context.Context, ownerID string) ([]*models.Deck, error)

	// CountForOwner returns the owner's current deck count.
	CountForOwner(ctx context.Context, ownerID string) (int, error)

	// LockOwner takes a transaction-scoped advisory lock on the owner, so
	// concurrent deck creations for the same owner serialize. Must be
	// called inside a transaction; the lock is released at commit or
	// rollback.
	LockOwner(ctx context.Context, ownerID string) error

	// Update edits the deck's name and description and refreshes
	// last_updated. Returns common.ErrorNotFound when no row matched.
	Update(ctx context.Context, deckID, ownerID, name, description string) error

	// TouchLastUpdated refreshes last_updated without altering other
	// fields. Returns common.ErrorNotFound when no row matched.
	TouchLastUpdated(ctx context.Context, deckID, ownerID string) error
}
