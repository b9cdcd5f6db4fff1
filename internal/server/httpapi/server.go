// Package httpapi exposes the deck, card, generation and payment operations
// as a JSON HTTP API with bearer-token auth.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/flashdeck/internal/logging"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
	"github.com/dmitrijs2005/flashdeck/internal/server/payment"
	"github.com/dmitrijs2005/flashdeck/internal/server/services"
)

// Service dependencies are narrowed to interfaces so handler tests can fake
// them.
type deckService interface {
	ListDecks(ctx context.Context, ownerID string) ([]*models.Deck, error)
	GetDeck(ctx context.Context, ownerID, deckID string) (*models.Deck, error)
	CreateDeck(ctx context.Context, ownerID string, req services.CreateDeckRequest) (*models.Deck, error)
	UpdateDeck(ctx context.Context, ownerID string, req services.UpdateDeckRequest) error
	DeleteDeck(ctx context.Context, ownerID, deckID string) error
}

type cardService interface {
	ListCards(ctx context.Context, ownerID, deckID string) ([]*models.Card, error)
	CreateCard(ctx context.Context, ownerID string, req services.CreateCardRequest) (*models.Card, error)
	UpdateCard(ctx context.Context, ownerID string, req services.UpdateCardRequest) error
	DeleteCard(ctx context.Context, ownerID, cardID, deckID string) error
}

type generateService interface {
	GenerateCards(ctx context.Context, ownerID string, req services.GenerateCardsRequest) (*services.GenerateResult, error)
}

type subscriptionService interface {
	CreateOrder(ctx context.Context, ownerID string, amountMajor float64, currency string) (*payment.Order, error)
	VerifyAndUpgrade(ctx context.Context, ownerID, orderID, paymentID, signature string) error
	Status(ctx context.Context, ownerID string) (*services.SubscriptionStatus, error)
}

type Server struct {
	address       string
	decks         deckService
	cards         cardService
	generate      generateService
	subscriptions subscriptionService
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	devAuth       bool
}

func NewServer(address string, logger logging.Logger, ds deckService, cs cardService,
	gs generateService, ss subscriptionService, secretKey string, tokenValidity time.Duration, devAuth bool) *Server {
	return &Server{
		address:       address,
		decks:         ds,
		cards:         cs,
		generate:      gs,
		subscriptions: ss,
		logger:        logger.With("module", "http_server"),
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
		devAuth:       devAuth,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	if s.devAuth {
		mux.HandleFunc("POST /api/auth/token", s.handleDevToken)
	}

	mux.HandleFunc("GET /api/decks", s.withAuth(s.handleListDecks))
	mux.HandleFunc("POST /api/decks", s.withAuth(s.handleCreateDeck))
	mux.HandleFunc("PUT /api/decks/{deckID}", s.withAuth(s.handleUpdateDeck))
	mux.HandleFunc("DELETE /api/decks/{deckID}", s.withAuth(s.handleDeleteDeck))

	mux.HandleFunc("GET /api/decks/{deckID}/cards", s.withAuth(s.handleListCards))
	mux.HandleFunc("POST /api/decks/{deckID}/cards", s.withAuth(s.handleCreateCard))
	mux.HandleFunc("PUT /api/cards/{cardID}", s.withAuth(s.handleUpdateCard))
	mux.HandleFunc("DELETE /api/cards/{cardID}", s.withAuth(s.handleDeleteCard))

	mux.HandleFunc("POST /api/decks/{deckID}/generate", s.withAuth(s.handleGenerateCards))

	mux.HandleFunc("POST /api/payment/create-order", s.withAuth(s.handleCreateOrder))
	mux.HandleFunc("POST /api/payment/verify", s.withAuth(s.handleVerifyPayment))
	mux.HandleFunc("GET /api/subscription", s.withAuth(s.handleSubscriptionStatus))

	return mux
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
