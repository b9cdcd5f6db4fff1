package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/dbx"
	"github.com/dmitrijs2005/flashdeck/internal/logging"
	"github.com/dmitrijs2005/flashdeck/internal/server/ai"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
	"github.com/dmitrijs2005/flashdeck/internal/server/payment"
	cardsrepo "github.com/dmitrijs2005/flashdeck/internal/server/repositories/cards"
	decksrepo "github.com/dmitrijs2005/flashdeck/internal/server/repositories/decks"
	entsrepo "github.com/dmitrijs2005/flashdeck/internal/server/repositories/entitlements"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- fake repositories ---

type fakeDecksRepo struct {
	createdDecks []*models.Deck
	createErr    error

	deleteErr error

	updatedIDs []string
	updateErr  error

	locked  []string
	lockErr error

	getOut *models.Deck
	getErr error

	listOut []*models.Deck
	listErr error

	count    int
	countErr error

	touched  []string
	touchErr error
}

func (f *fakeDecksRepo) Create(ctx context.Context, deck *models.Deck) (*models.Deck, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if deck.ID == "" {
		deck.ID = "deck-fake"
	}
	f.createdDecks = append(f.createdDecks, deck)
	return deck, nil
}

func (f *fakeDecksRepo) Delete(ctx context.Context, deckID, ownerID string) error {
	return f.deleteErr
}

func (f *fakeDecksRepo) Update(ctx context.Context, deckID, ownerID, name, description string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedIDs = append(f.updatedIDs, deckID)
	return nil
}

func (f *fakeDecksRepo) LockOwner(ctx context.Context, ownerID string) error {
	if f.lockErr != nil {
		return f.lockErr
	}
	f.locked = append(f.locked, ownerID)
	return nil
}

func (f *fakeDecksRepo) GetByID(ctx context.Context, deckID, ownerID string) (*models.Deck, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeDecksRepo) ListForOwner(ctx context.Context, ownerID string) ([]*models.Deck, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeDecksRepo) CountForOwner(ctx context.Context, ownerID string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

func (f *fakeDecksRepo) TouchLastUpdated(ctx context.Context, deckID, ownerID string) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touched = append(f.touched, deckID)
	return nil
}

type fakeCardsRepo struct {
	createdCards []*models.Card
	createErr    error
	// createErrAfter fails every Create once len(createdCards) reaches it.
	// -1 disables the cutoff.
	createErrAfter int

	updateErr error
	deleteErr error

	deckIDOut string
	deckIDErr error

	listOut []*models.Card
	listErr error
}

func newFakeCardsRepo() *fakeCardsRepo {
	return &fakeCardsRepo{createErrAfter: -1}
}

func (f *fakeCardsRepo) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createErrAfter >= 0 && len(f.createdCards) >= f.createErrAfter {
		return nil, common.ErrorInternal
	}
	if card.ID == "" {
		card.ID = "card-fake"
	}
	f.createdCards = append(f.createdCards, card)
	return card, nil
}

func (f *fakeCardsRepo) Update(ctx context.Context, cardID, ownerID, frontText, backText, description string) error {
	return f.updateErr
}

func (f *fakeCardsRepo) Delete(ctx context.Context, cardID, ownerID string) error {
	return f.deleteErr
}

func (f *fakeCardsRepo) GetDeckID(ctx context.Context, cardID, ownerID string) (string, error) {
	if f.deckIDErr != nil {
		return "", f.deckIDErr
	}
	return f.deckIDOut, nil
}

func (f *fakeCardsRepo) ListForDeck(ctx context.Context, deckID, ownerID string) ([]*models.Card, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeEntitlementsRepo struct {
	out *models.Entitlement
	err error

	upgraded   []*models.Entitlement
	upgradeErr error
}

func (f *fakeEntitlementsRepo) Get(ctx context.Context, ownerID string) (*models.Entitlement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeEntitlementsRepo) UpgradeToPro(ctx context.Context, e *models.Entitlement) error {
	if f.upgradeErr != nil {
		return f.upgradeErr
	}
	f.upgraded = append(f.upgraded, e)
	return nil
}

// --- fake repomanager ---

type fakeRepoManager struct {
	decks *fakeDecksRepo
	cards *fakeCardsRepo
	ents  *fakeEntitlementsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		decks: &fakeDecksRepo{},
		cards: newFakeCardsRepo(),
		ents:  &fakeEntitlementsRepo{err: common.ErrorNotFound},
	}
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (f *fakeRepoManager) Decks(db dbx.DBTX) decksrepo.Repository {
	return f.decks
}

func (f *fakeRepoManager) Cards(db dbx.DBTX) cardsrepo.Repository {
	return f.cards
}

func (f *fakeRepoManager) Entitlements(db dbx.DBTX) entsrepo.Repository {
	return f.ents
}

// --- fake adapter and gateway ---

type fakeGenerator struct {
	out []ai.Flashcard
	err error
}

func (f *fakeGenerator) Generate(ctx context.Context, topic string, count int) ([]ai.Flashcard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakePaymentGateway struct {
	order     *payment.Order
	createErr error
	verifyErr error
}

func (f *fakePaymentGateway) CreateOrder(ctx context.Context, ownerID string, amountMajor float64, currency string) (*payment.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.order, nil
}

func (f *fakePaymentGateway) VerifySignature(orderID, paymentID, signature string) error {
	return f.verifyErr
}
