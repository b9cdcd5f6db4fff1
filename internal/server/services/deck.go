package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/dbx"
	"github.com/dmitrijs2005/flashdeck/internal/logging"
	"github.com/dmitrijs2005/flashdeck/internal/server/entitlement"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/repomanager"
)

type DeckService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     *entitlement.Checker
	logger      logging.Logger
}

func NewDeckService(db *sql.DB, rm repomanager.RepositoryManager, checker *entitlement.Checker, logger logging.Logger) *DeckService {
	return &DeckService{
		db:          db,
		repomanager: rm,
		checker:     checker,
		logger:      logger.With("module", "deck_service"),
	}
}

func (s *DeckService) ListDecks(ctx context.Context, ownerID string) ([]*models.Deck, error) {
	return s.repomanager.Decks(s.db).ListForOwner(ctx, ownerID)
}

func (s *DeckService) GetDeck(ctx context.Context, ownerID, deckID string) (*models.Deck, error) {
	return s.repomanager.Decks(s.db).GetByID(ctx, deckID, ownerID)
}

// CreateDeck inserts a deck after the free-tier limit check. For limited
// users the transaction first takes a per-owner advisory lock, so a
// concurrent create for the same owner waits and sees the committed count.
// Plain READ COMMITTED without the lock would let two creates at the limit
// both pass the count check.
func (s *DeckService) CreateDeck(ctx context.Context, ownerID string, req CreateDeckRequest) (*models.Deck, error) {

	if err := checkRequest(req); err != nil {
		return nil, err
	}

	unlimited, err := s.checker.HasFeature(ctx, ownerID, common.FeatureUnlimitedDecks)
	if err != nil {
		return nil, err
	}

	deck := &models.Deck{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Decks(tx)

		if !unlimited {
			if err := repo.LockOwner(ctx, ownerID); err != nil {
				return err
			}
			count, err := repo.CountForOwner(ctx, ownerID)
			if err != nil {
				return err
			}
			if err := s.checker.CheckDeckCount(count); err != nil {
				return err
			}
		}

		_, err := repo.Create(ctx, deck)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "deck created", "deck_id", deck.ID)
	return deck, nil
}

// UpdateDeck edits the deck's name and description; the repository also
// refreshes last_updated.
func (s *DeckService) UpdateDeck(ctx context.Context, ownerID string, req UpdateDeckRequest) error {

	if err := checkRequest(req); err != nil {
		return err
	}

	if err := s.repomanager.Decks(s.db).Update(ctx, req.DeckID, ownerID, req.Name, req.Description); err != nil {
		return err
	}

	s.logger.Info(ctx, "deck updated", "deck_id", req.DeckID)
	return nil
}

// DeleteDeck removes the deck; its cards go with it via the storage-level
// cascade.
func (s *DeckService) DeleteDeck(ctx context.Context, ownerID, deckID string) error {

	if err := s.repomanager.Decks(s.db).Delete(ctx, deckID, ownerID); err != nil {
		return err
	}

	s.logger.Info(ctx, "deck deleted", "deck_id", deckID)
	return nil
}
