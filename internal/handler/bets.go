package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/betting"
	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// BetHandler handles sports betting HTTP requests
type BetHandler struct {
	svc betting.Service
}

// NewBetHandler creates a new bet handler
func NewBetHandler(svc betting.Service) *BetHandler {
	return &BetHandler{svc: svc}
}

// PlaceBetRequest represents the place bet request body
type PlaceBetRequest struct {
	BetType   string          `json:"bet_type" validate:"omitempty,oneof=single parlay"`
	Sport     string          `json:"sport" validate:"max=50"`
	EventName string          `json:"event_name" validate:"required,max=200"`
	Selection string          `json:"selection" validate:"required,max=200"`
	Odds      decimal.Decimal `json:"odds"`
	Stake     decimal.Decimal `json:"stake"`
	Currency  string          `json:"currency" validate:"required,currency"`
}

// ResolveBetRequest represents the resolve bet request body
type ResolveBetRequest struct {
	Result string `json:"result" validate:"required,oneof=won lost void"`
}

// HandlePlaceBet locks the stake and records a pending bet
// @Summary Place a bet
// @Tags bets
// @Accept json
// @Produce json
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/bets [post]
func (h *BetHandler) HandlePlaceBet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwnerID(w, r)
	if !ok {
		return
	}

	var req PlaceBetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place bet"); err != nil {
		return
	}
	if req.BetType == "" {
		req.BetType = "single"
	}

	bet, err := h.svc.Place(r.Context(), ownerID, betting.PlaceBetRequest{
		BetType:   req.BetType,
		Sport:     req.Sport,
		EventName: req.EventName,
		Selection: req.Selection,
		Odds:      req.Odds,
		Stake:     req.Stake,
		Currency:  req.Currency,
	})
	if err != nil {
		respondServiceError(w, r, "Place bet", err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgBetPlaced, Data: bet})
}

// HandleResolveBet settles a pending bet with the event result
// @Summary Resolve a bet
// @Tags bets
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/bets/{betID}/resolve [post]
func (h *BetHandler) HandleResolveBet(w http.ResponseWriter, r *http.Request) {
	betID, err := uuid.Parse(chi.URLParam(r, "betID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBetID)
		return
	}

	var req ResolveBetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve bet"); err != nil {
		return
	}

	bet, err := h.svc.Resolve(r.Context(), betID, req.Result)
	if err != nil {
		respondServiceError(w, r, "Resolve bet", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgBetResolved, Data: bet})
}

// HandleGetBet fetches one bet by ID
// @Summary Get a bet
// @Tags bets
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/bets/{betID} [get]
func (h *BetHandler) HandleGetBet(w http.ResponseWriter, r *http.Request) {
	betID, err := uuid.Parse(chi.URLParam(r, "betID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBetID)
		return
	}

	bet, err := h.svc.Get(r.Context(), betID)
	if err != nil {
		respondServiceError(w, r, "Get bet", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: bet})
}

// HandleBetHistory lists the user's bets, newest first. An optional status
// query parameter narrows the listing.
// @Summary Bet history
// @Tags bets
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/bets [get]
func (h *BetHandler) HandleBetHistory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwnerID(w, r)
	if !ok {
		return
	}

	limit, offset, ok := ParsePagination(r, w)
	if !ok {
		return
	}

	filter := repository.BetFilter{OwnerID: ownerID, Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.BetStatus(raw)
		filter.Status = &status
	}

	bets, err := h.svc.History(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "Bet history", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: bets})
}
