package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/flashdeck/internal/common"
	"github.com/dmitrijs2005/flashdeck/internal/server/auth"
	"github.com/dmitrijs2005/flashdeck/internal/server/models"
	"github.com/dmitrijs2005/flashdeck/internal/server/services"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// handleDevToken issues a signed token for local development, where no
// external identity provider is in front of the API. Enabled by config only.
func (s *Server) handleDevToken(w http.ResponseWriter, r *http.Request) {

	var req struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &req); err != nil || req.UserID == "" {
		writeJSONError(w, http.StatusBadRequest, "userId is required")
		return
	}

	token, err := auth.GenerateToken(req.UserID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {

	decks, err := s.decks.ListDecks(r.Context(), ownerIDFromContext(r.Context()))
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	if decks == nil {
		decks = []*models.Deck{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"decks": decks})
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {

	var req services.CreateDeckRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	deck, err := s.decks.CreateDeck(r.Context(), ownerIDFromContext(r.Context()), req)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {

	var req services.UpdateDeckRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	req.DeckID = r.PathValue("deckID")

	if err := s.decks.UpdateDeck(r.Context(), ownerIDFromContext(r.Context()), req); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {

	if err := s.decks.DeleteDeck(r.Context(), ownerIDFromContext(r.Context()), r.PathValue("deckID")); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleListCards returns the deck together with its cards, which is what
// the deck detail page renders.
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	ownerID := ownerIDFromContext(ctx)
	deckID := r.PathValue("deckID")

	deck, err := s.decks.GetDeck(ctx, ownerID, deckID)
	if err != nil {
		writeError(ctx, w, s.logger, err)
		return
	}

	cards, err := s.cards.ListCards(ctx, ownerID, deckID)
	if err != nil {
		writeError(ctx, w, s.logger, err)
		return
	}
	if cards == nil {
		cards = []*models.Card{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"deck": deck, "cards": cards})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {

	var req services.CreateCardRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	req.DeckID = r.PathValue("deckID")

	card, err := s.cards.CreateCard(r.Context(), ownerIDFromContext(r.Context()), req)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {

	var req services.UpdateCardRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	req.CardID = r.PathValue("cardID")

	if err := s.cards.UpdateCard(r.Context(), ownerIDFromContext(r.Context()), req); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {

	cardID := r.PathValue("cardID")
	deckID := r.URL.Query().Get("deckId")

	if err := s.cards.DeleteCard(r.Context(), ownerIDFromContext(r.Context()), cardID, deckID); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleGenerateCards(w http.ResponseWriter, r *http.Request) {

	var req services.GenerateCardsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	req.DeckID = r.PathValue("deckID")

	result, err := s.generate.GenerateCards(r.Context(), ownerIDFromContext(r.Context()), req)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {

	// the body is optional; an empty one orders the standard pro upgrade
	var req struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(r.Context(), w, s.logger, err)
			return
		}
	}
	if req.Amount == 0 {
		req.Amount = float64(common.ProPriceINR)
	}
	if req.Currency == "" {
		req.Currency = common.DefaultCurrency
	}

	order, err := s.subscriptions.CreateOrder(r.Context(), ownerIDFromContext(r.Context()), req.Amount, req.Currency)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {

	var req struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	err := s.subscriptions.VerifyAndUpgrade(r.Context(), ownerIDFromContext(r.Context()),
		req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {

	status, err := s.subscriptions.Status(r.Context(), ownerIDFromContext(r.Context()))
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
