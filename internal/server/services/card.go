package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/logging"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/repomanager"
)

type CardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCardService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *CardService {
	return &CardService{
		db:          db,
		repomanager: rm,
		logger:      logger.With("module", "card_service"),
	}
}

func (s *CardService) ListCards(ctx context.Context, ownerID, deckID string) ([]*models.Card, error) {
	return s.repomanager.Cards(s.db).ListForDeck(ctx, deckID, ownerID)
}

// CreateCard inserts a card and refreshes the deck's last_updated stamp.
// The two writes are sequential, not atomic: a crash in between leaves the
// stamp stale but the data intact.
func (s *CardService) CreateCard(ctx context.Context, ownerID string, req CreateCardRequest) (*models.Card, error) {

	if err := checkRequest(req); err != nil {
		return nil, err
	}

	card := &models.Card{
		DeckID:      req.DeckID,
		OwnerID:     ownerID,
		FrontText:   req.FrontText,
		BackText:    req.BackText,
		Description: req.Description,
	}

	if _, err := s.repomanager.Cards(s.db).Create(ctx, card); err != nil {
		return nil, err
	}

	s.touchDeck(ctx, ownerID, req.DeckID)
	return card, nil
}

// UpdateCard edits a card's text fields. When the caller did not supply the
// deck id, it is resolved through the card itself.
func (s *CardService) UpdateCard(ctx context.Context, ownerID string, req UpdateCardRequest) error {

	if err := checkRequest(req); err != nil {
		return err
	}

	deckID, err := s.resolveDeckID(ctx, ownerID, req.CardID, req.DeckID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Cards(s.db).Update(ctx, req.CardID, ownerID, req.FrontText, req.BackText, req.Description); err != nil {
		return err
	}

	s.touchDeck(ctx, ownerID, deckID)
	return nil
}

// DeleteCard removes a card, resolving the deck id the same way as
// UpdateCard. deckID may be empty.
func (s *CardService) DeleteCard(ctx context.Context, ownerID, cardID, deckID string) error {

	if cardID == "" {
		return fmt.Errorf("%w: CardID is required", common.ErrorValidation)
	}

	resolved, err := s.resolveDeckID(ctx, ownerID, cardID, deckID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Cards(s.db).Delete(ctx, cardID, ownerID); err != nil {
		return err
	}

	s.touchDeck(ctx, ownerID, resolved)
	return nil
}

// resolveDeckID returns the supplied deck id, or looks it up via the card
// when absent. A card that does not exist under this owner yields
// ErrUnknownDeck.
func (s *CardService) resolveDeckID(ctx context.Context, ownerID, cardID, deckID string) (string, error) {
	if deckID != "" {
		return deckID, nil
	}

	resolved, err := s.repomanager.Cards(s.db).GetDeckID(ctx, cardID, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrUnknownDeck
		}
		return "", err
	}

	return resolved, nil
}

// touchDeck refreshes the deck's last_updated stamp. Failures are logged,
// not surfaced: the card mutation already committed and a stale stamp is
// preferable to reporting the whole operation failed.
func (s *CardService) touchDeck(ctx context.Context, ownerID, deckID string) {
	if err := s.repomanager.Decks(s.db).TouchLastUpdated(ctx, deckID, ownerID); err != nil {
		s.logger.Warn(ctx, "failed to touch deck last_updated", "deck_id", deckID, "error", err.Error())
	}
}
