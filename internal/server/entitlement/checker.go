// Package entitlement answers "is this user allowed to do X" from the
// plan/feature state of the billing provider. The lookup happens on every
// request; nothing is cached between requests.
package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/server/repositories/entitlements"
)

// User-facing messages for entitlement failures. The UI matches on the
// subscription error kind to render an upgrade prompt.
const (
	MsgDeckLimitReached = "Free users can only create up to 3 decks. Upgrade to Pro for unlimited decks."
	MsgAIProRequired    = "AI card generation is a Pro feature. Upgrade to Pro to access AI-powered flashcards."
)

// featuresByPlan is the plan→feature grant table mirrored from the billing
// provider's configuration.
var featuresByPlan = map[string][]string{
	common.PlanFree: {common.FeatureBasicDeckLimit},
	common.PlanPro:  {common.FeatureUnlimitedDecks, common.FeatureAICards},
}

type Checker struct {
	repo      entitlements.Repository
	deckLimit int
}

func NewChecker(repo entitlements.Repository, deckLimit int) *Checker {
	return &Checker{repo: repo, deckLimit: deckLimit}
}

// Plan returns the user's current plan; users with no entitlement record
// are on the free plan.
func (c *Checker) Plan(ctx context.Context, ownerID string) (string, error) {
	e, err := c.repo.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.PlanFree, nil
		}
		return "", err
	}
	return e.Plan, nil
}

func (c *Checker) HasPlan(ctx context.Context, ownerID, plan string) (bool, error) {
	current, err := c.Plan(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return current == plan, nil
}

func (c *Checker) HasFeature(ctx context.Context, ownerID, feature string) (bool, error) {
	plan, err := c.Plan(ctx, ownerID)
	if err != nil {
		return false, err
	}
	for _, f := range featuresByPlan[plan] {
		if f == feature {
			return true, nil
		}
	}
	return false, nil
}

// DeckLimit is the free-tier cap on deck count.
func (c *Checker) DeckLimit() int {
	return c.deckLimit
}

// CheckDeckCount compares an already-obtained deck count against the
// free-tier limit. The caller counts under a per-owner lock in the same
// transaction as the insert, so two concurrent creates at the limit cannot
// both pass.
func (c *Checker) CheckDeckCount(count int) error {
	if count >= c.deckLimit {
		return fmt.Errorf("%w: %s", common.ErrorSubscription, MsgDeckLimitReached)
	}
	return nil
}

// CheckAIGeneration requires the AI cards feature unconditionally.
func (c *Checker) CheckAIGeneration(ctx context.Context, ownerID string) error {
	ok, err := c.HasFeature(ctx, ownerID, common.FeatureAICards)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrorSubscription, MsgAIProRequired)
	}
	return nil
}
