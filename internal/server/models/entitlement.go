package models

import "time"

// Entitlement is the server-side record of a user's subscription state,
// updated when a payment is verified. Absence of a row means the free plan.
type Entitlement struct {
	OwnerID       string     `json:"-"`
	Plan          string     `json:"plan"`
	PaymentMethod string     `json:"-"`
	PaymentID     string     `json:"-"`
	OrderID       string     `json:"-"`
	UpgradedAt    *time.Time `json:"upgradedAt,omitempty"`
}
