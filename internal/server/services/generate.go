package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/logging"
	"github.com/dmitrijs2005/flashdeck/internal/server/ai"
	"github.com/dmitrijs2005/flashdeck/internal/server/entitlement"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/repomanager"
)

// generator is the slice of the AI adapter used here, for test fakes.
type generator interface {
	Generate(ctx context.Context, topic string, count int) ([]ai.Flashcard, error)
}

// GenerateResult reports what a generation run actually produced. Count is
// the number of cards persisted, which may be lower than requested.
type GenerateResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

type GenerateService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	checker     *entitlement.Checker
	generator   generator
	cardsPerRun int
	logger      logging.Logger
}

func NewGenerateService(db *sql.DB, rm repomanager.RepositoryManager, checker *entitlement.Checker,
	gen generator, cardsPerRun int, logger logging.Logger) *GenerateService {
	return &GenerateService{
		db:          db,
		repomanager: rm,
		checker:     checker,
		generator:   gen,
		cardsPerRun: cardsPerRun,
		logger:      logger.With("module", "generate_service"),
	}
}

// GenerateCards produces AI flashcards for a deck. Card creation is a
// best-effort batch: individual insert failures are logged and skipped, and
// the run only fails when every insert failed. Partial success reports the
// actual created count.
func (s *GenerateService) GenerateCards(ctx context.Context, ownerID string, req GenerateCardsRequest) (*GenerateResult, error) {

	if err := checkRequest(req); err != nil {
		return nil, err
	}

	if err := s.checker.CheckAIGeneration(ctx, ownerID); err != nil {
		return nil, err
	}

	// the deck must exist under this owner before spending a model call
	if _, err := s.repomanager.Decks(s.db).GetByID(ctx, req.DeckID, ownerID); err != nil {
		return nil, err
	}

	flashcards, err := s.generator.Generate(ctx, req.Topic, s.cardsPerRun)
	if err != nil {
		return nil, err
	}
	if len(flashcards) == 0 {
		return nil, common.ErrNoCardsGenerated
	}

	created, failed := s.createBatch(ctx, ownerID, req.DeckID, flashcards)
	if len(created) == 0 {
		return nil, common.ErrGenerationFailed
	}
	if len(failed) > 0 {
		s.logger.Warn(ctx, "some generated cards failed to save",
			"deck_id", req.DeckID, "created", len(created), "failed", len(failed))
	}

	if err := s.repomanager.Decks(s.db).TouchLastUpdated(ctx, req.DeckID, ownerID); err != nil {
		s.logger.Warn(ctx, "failed to touch deck last_updated", "deck_id", req.DeckID, "error", err.Error())
	}

	return &GenerateResult{
		Success: true,
		Count:   len(created),
		Message: fmt.Sprintf("Successfully generated %d flashcards!", len(created)),
	}, nil
}

// createBatch persists the generated cards one at a time, splitting the
// outcome into created cards and per-card failures.
func (s *GenerateService) createBatch(ctx context.Context, ownerID, deckID string, flashcards []ai.Flashcard) ([]*models.Card, []error) {

	repo := s.repomanager.Cards(s.db)

	var created []*models.Card
	var failed []error

	for _, fc := range flashcards {
		card := &models.Card{
			DeckID:    deckID,
			OwnerID:   ownerID,
			FrontText: fc.Question,
			BackText:  fc.Answer,
		}
		if _, err := repo.Create(ctx, card); err != nil {
			s.logger.Warn(ctx, "failed to save generated card", "deck_id", deckID, "error", err.Error())
			failed = append(failed, err)
			continue
		}
		created = append(created, card)
	}

	return created, failed
}
