package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/casino"
	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/repository"
)

// CasinoHandler handles casino game HTTP requests
type CasinoHandler struct {
	svc casino.Service
}

// NewCasinoHandler creates a new casino handler
func NewCasinoHandler(svc casino.Service) *CasinoHandler {
	return &CasinoHandler{svc: svc}
}

// PlayRequest represents a play request body. Options carries the per-game
// variant matching the game field; slots and blackjack take none.
type PlayRequest struct {
	Game     string             `json:"game" validate:"required"`
	Currency string             `json:"currency" validate:"required,currency"`
	Stake    decimal.Decimal    `json:"stake"`
	Options  domain.PlayOptions `json:"options"`
}

// HandleListGames returns the playable catalog with house edges
// @Summary List games
// @Tags casino
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/casino/games [get]
func (h *CasinoHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DataResponse{Data: h.svc.Games()})
}

// HandlePlay runs one casino round to settlement
// @Summary Play a round
// @Tags casino
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/casino/play [post]
func (h *CasinoHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwnerID(w, r)
	if !ok {
		return
	}

	var req PlayRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Play round"); err != nil {
		return
	}

	game, err := domain.ParseGame(req.Game)
	if err != nil {
		respondServiceError(w, r, "Play round", err)
		return
	}

	round, err := h.svc.Play(r.Context(), ownerID, game, req.Currency, req.Stake, req.Options)
	if err != nil {
		respondServiceError(w, r, "Play round", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: round})
}

// HandleHistory lists the user's rounds, newest first. An optional game
// query parameter narrows the listing.
// @Summary Round history
// @Tags casino
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/casino/history [get]
func (h *CasinoHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwnerID(w, r)
	if !ok {
		return
	}

	limit, offset, ok := ParsePagination(r, w)
	if !ok {
		return
	}

	filter := repository.RoundFilter{OwnerID: ownerID, Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("game"); raw != "" {
		game, err := domain.ParseGame(raw)
		if err != nil {
			respondServiceError(w, r, "Round history", err)
			return
		}
		filter.Game = &game
	}

	rounds, err := h.svc.History(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "Round history", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: rounds})
}

// HandleStats aggregates the user's settled rounds
// @Summary Player statistics
// @Tags casino
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/casino/stats [get]
func (h *CasinoHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := RequireOwnerID(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, "Player stats", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: stats})
}
