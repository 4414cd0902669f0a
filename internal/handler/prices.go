package handler

import (
	"net/http"

	"github.com/ibcplay/ibcplay/internal/prices"
)

// PricesResponse lists the supported currencies with their current USD
// quotes
type PricesResponse struct {
	Currencies []string                `json:"currencies"`
	Quotes     map[string]prices.Quote `json:"quotes"`
}

// HandleGetPrices returns the current USD quotes for all supported
// currencies
// @Summary Current prices
// @Tags prices
// @Produce json
// @Success 200 {object} PricesResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/prices [get]
func HandleGetPrices(svc prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotes, err := svc.GetAllRates(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get prices", err)
			return
		}

		respondJSON(w, http.StatusOK, PricesResponse{
			Currencies: svc.SupportedCurrencies(),
			Quotes:     quotes,
		})
	}
}
