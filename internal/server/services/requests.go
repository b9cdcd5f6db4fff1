// Package services implements the mutation orchestrator: the public
// operations composing validation, entitlement checks, the persistence
// layer, and the card generation adapter.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/go-playground/validator/v10"
)

// Request payloads are validated before any side effect. Length limits
// match the persisted column sizes.

type CreateDeckRequest struct {
	Name        string `json:"name" validate:"required,max=256"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateDeckRequest struct {
	DeckID      string `json:"deckId" validate:"required"`
	Name        string `json:"name" validate:"required,max=256"`
	Description string `json:"description" validate:"omitempty"`
}

type CreateCardRequest struct {
	DeckID      string `json:"deckId" validate:"required"`
	FrontText   string `json:"frontText" validate:"required,max=1000"`
	BackText    string `json:"backText" validate:"required,max=1000"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateCardRequest struct {
	CardID      string `json:"cardId" validate:"required"`
	DeckID      string `json:"deckId" validate:"omitempty"`
	FrontText   string `json:"frontText" validate:"required,max=1000"`
	BackText    string `json:"backText" validate:"required,max=1000"`
	Description string `json:"description" validate:"omitempty"`
}

type GenerateCardsRequest struct {
	DeckID string `json:"deckId" validate:"required"`
	Topic  string `json:"topic" validate:"required,max=256"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequest runs struct validation and folds field errors into a single
// common.ErrorValidation-wrapped message.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be %s characters or less", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(msgs, "; "))
}
