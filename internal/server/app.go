// Package server initializes and runs the flashdeck API server: it opens
// the database, applies migrations, wires the services together and serves
// the HTTP API until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/flashdeck/internal/logging"
	"github.com/dmitrijs2005/flashdeck/internal/server/ai"
	"github.com/dmitrijs2005/flashdeck/internal/server/config"
	"github.com/dmitrijs2005/flashdeck/internal/server/entitlement"
	"github.com/dmitrijs2005/flashdeck/internal/server/httpapi"
	"github.com/dmitrijs2005/flashdeck/internal/server/payment"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/flashdeck/internal/server/services"
)

type App struct {
	config              *config.Config
	logger              logging.Logger
	db                  *sql.DB
	repomanager         repomanager.RepositoryManager
	deckService         *services.DeckService
	cardService         *services.CardService
	generateService     *services.GenerateService
	subscriptionService *services.SubscriptionService
}

func NewApp(c *config.Config) (*App, error) {

	s := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(s)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	checker := entitlement.NewChecker(rm.Entitlements(db), c.FreeDeckLimit)

	generator := ai.NewGenerator(ai.NewClient(c.OpenAIAPIKey, c.OpenAIBaseURL), c.OpenAIModel, c.AIRequestTimeout)
	gateway := payment.NewService(c.RazorpayKeyID, c.RazorpayKeySecret, c.PaymentRequestTimeout)

	return &App{
		config:              c,
		logger:              logger,
		db:                  db,
		repomanager:         rm,
		deckService:         services.NewDeckService(db, rm, checker, logger),
		cardService:         services.NewCardService(db, rm, logger),
		generateService:     services.NewGenerateService(db, rm, checker, generator, c.CardsPerGeneration, logger),
		subscriptionService: services.NewSubscriptionService(db, rm, gateway, checker, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger,
		app.deckService, app.cardService, app.generateService, app.subscriptionService,
		app.config.SecretKey, app.config.AccessTokenValidityDuration, app.config.EnableDevAuth)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
