package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps service errors to HTTP statuses. Unrecognized errors are
// logged and masked behind a generic 500 so internals do not leak.
func writeError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrInvalidSignature):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken):
		writeJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorSubscription):
		writeJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrUnknownDeck):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrGenerationParse),
		errors.Is(err, common.ErrGenerationJSON),
		errors.Is(err, common.ErrNoCardsGenerated),
		errors.Is(err, common.ErrGenerationFailed):
		writeJSONError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, common.ErrGatewayNotConfigured):
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	default:
		logger.Error(ctx, "request failed", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody reads a JSON request body into dst, rejecting unparseable
// input as a validation error.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.ErrorValidation
	}
	return nil
}
