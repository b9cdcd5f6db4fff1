// Package entitlements persists the server-side subscription record of a
// user. A missing row means the free plan; rows are written only by the
// payment verification flow.
package entitlements

import (
	"context"

	"github.com/dmitrijs2005/flashdeck/internal/server/models"
)

type Repository interface {
	// Get returns the entitlement row, or common.ErrorNotFound when the
	// user has never upgraded (free plan).
	Get(ctx context.Context, ownerID string) (*models.Entitlement, error)

	// UpgradeToPro upserts the row with the pro plan and the payment
	// details that justified the upgrade.
	UpgradeToPro(ctx context.Context, e *models.Entitlement) error
}
