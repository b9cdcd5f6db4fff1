package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/logging"
	"github.com/dmitrijs2005/flashdeck/internal/server/entitlement"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
	"github.com/dmitrijs2005/flashdeck/internal/server/payment"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/repomanager"
)

// paymentGateway is the slice of the payment service used here, for test
// fakes.
type paymentGateway interface {
	CreateOrder(ctx context.Context, ownerID string, amountMajor float64, currency string) (*payment.Order, error)
	VerifySignature(orderID, paymentID, signature string) error
}

// SubscriptionStatus tells the UI how to gate itself, mirroring the
// plan/feature flags of the billing provider.
type SubscriptionStatus struct {
	Plan              string `json:"plan"`
	IsPro             bool   `json:"isPro"`
	CanUseAI          bool   `json:"canUseAI"`
	HasUnlimitedDecks bool   `json:"hasUnlimitedDecks"`
	DeckLimit         int    `json:"deckLimit"`
}

type SubscriptionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gateway     paymentGateway
	checker     *entitlement.Checker
	logger      logging.Logger
}

func NewSubscriptionService(db *sql.DB, rm repomanager.RepositoryManager, gw paymentGateway,
	checker *entitlement.Checker, logger logging.Logger) *SubscriptionService {
	return &SubscriptionService{
		db:          db,
		repomanager: rm,
		gateway:     gw,
		checker:     checker,
		logger:      logger.With("module", "subscription_service"),
	}
}

func (s *SubscriptionService) CreateOrder(ctx context.Context, ownerID string, amountMajor float64, currency string) (*payment.Order, error) {
	order, err := s.gateway.CreateOrder(ctx, ownerID, amountMajor, currency)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "payment order created", "order_id", order.OrderID, "amount", order.Amount)
	return order, nil
}

// VerifyAndUpgrade checks the gateway callback signature and, only on a
// match, flips the user's entitlement record to the pro plan. A mismatch
// changes nothing.
func (s *SubscriptionService) VerifyAndUpgrade(ctx context.Context, ownerID, orderID, paymentID, signature string) error {

	if orderID == "" || paymentID == "" || signature == "" {
		return fmt.Errorf("%w: missing payment details", common.ErrorValidation)
	}

	if err := s.gateway.VerifySignature(orderID, paymentID, signature); err != nil {
		return err
	}

	e := &models.Entitlement{
		OwnerID:       ownerID,
		Plan:          common.PlanPro,
		PaymentMethod: "razorpay",
		PaymentID:     paymentID,
		OrderID:       orderID,
	}
	if err := s.repomanager.Entitlements(s.db).UpgradeToPro(ctx, e); err != nil {
		return err
	}

	s.logger.Info(ctx, "user upgraded to pro", "order_id", orderID, "payment_id", paymentID)
	return nil
}

// Status reports the caller's current plan and feature flags.
func (s *SubscriptionService) Status(ctx context.Context, ownerID string) (*SubscriptionStatus, error) {

	plan, err := s.checker.Plan(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	canAI, err := s.checker.HasFeature(ctx, ownerID, common.FeatureAICards)
	if err != nil {
		return nil, err
	}

	unlimited, err := s.checker.HasFeature(ctx, ownerID, common.FeatureUnlimitedDecks)
	if err != nil {
		return nil, err
	}

	status := &SubscriptionStatus{
		Plan:              plan,
		IsPro:             plan == common.PlanPro,
		CanUseAI:          canAI,
		HasUnlimitedDecks: unlimited,
	}
	if !unlimited {
		status.DeckLimit = s.checker.DeckLimit()
	}

	return status, nil
}
