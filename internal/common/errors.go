// Package common defines shared constants and sentinel errors used across
// the flashdeck server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors. A delete or update that affects zero rows is
	// reported as ErrorNotFound: "not found" and "not yours" are deliberately
	// indistinguishable so the existence of other users' records never leaks.
	ErrorNotFound = errors.New("not found or unauthorized")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorSubscription marks entitlement failures (deck limit reached,
	// feature not licensed). The UI renders an upgrade prompt for these
	// instead of a generic failure.
	ErrorSubscription = errors.New("subscription required")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")

	// AI generation errors, surfaced to the caller as-is, no retry.
	ErrGenerationParse  = errors.New("failed to parse flashcards from AI response")
	ErrGenerationJSON   = errors.New("invalid JSON response from AI")
	ErrNoCardsGenerated = errors.New("no flashcards were generated")
	ErrGenerationFailed = errors.New("failed to generate AI cards")

	// Card mutation errors.
	ErrUnknownDeck = errors.New("could not determine deck id")

	// Payment errors.
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
)
