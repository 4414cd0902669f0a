package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/ibcplay/ibcplay/internal/domain"
	"github.com/ibcplay/ibcplay/internal/logger"
	"github.com/ibcplay/ibcplay/internal/metrics"
)

// Quote is a USD conversion rate for one currency at a point in time.
type Quote struct {
	Currency string          `json:"currency"`
	USDRate  decimal.Decimal `json:"usd_rate"`
	AsOf     time.Time       `json:"as_of"`
	Fallback bool            `json:"fallback,omitempty"`
}

// Service defines the interface for price feed operations. GetRate never
// blocks past the configured timeout: on upstream failure it serves the
// cached quote or the documented fallback constant. Unknown currencies
// return domain.ErrRateUnavailable.
type Service interface {
	GetRate(ctx context.Context, currency string) (Quote, error)
	GetAllRates(ctx context.Context) (map[string]Quote, error)
	IsSupported(currency string) bool
	SupportedCurrencies() []string
}

type service struct {
	client *http.Client
	apiURL string
	apiKey string
	cache  *expirable.LRU[string, Quote]
}

// NewService creates a price feed service backed by CoinGecko with a TTL
// cache. cacheTTL bounds how stale a served quote may be; timeout bounds the
// upstream call.
func NewService(apiURL, apiKey string, cacheTTL, timeout time.Duration) Service {
	return &service{
		client: &http.Client{Timeout: timeout},
		apiURL: apiURL,
		apiKey: apiKey,
		cache:  expirable.NewLRU[string, Quote](CacheSize, nil, cacheTTL),
	}
}

// GetRate returns the USD rate for a currency
func (s *service) GetRate(ctx context.Context, currency string) (Quote, error) {
	currency = strings.ToUpper(currency)

	if currency == USD {
		return Quote{Currency: USD, USDRate: decimal.NewFromInt(1), AsOf: time.Now()}, nil
	}

	if _, ok := CoinGeckoIDs[currency]; !ok {
		return Quote{}, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, currency)
	}

	if quote, ok := s.cache.Get(currency); ok {
		metrics.PriceCacheHits.Inc()
		return quote, nil
	}
	metrics.PriceCacheMisses.Inc()

	quote, err := s.fetchRate(ctx, currency)
	if err != nil {
		logger.FromContext(ctx).Warn("Price fetch failed, using fallback rate",
			"currency", currency, "error", err)
		metrics.PriceFeedErrors.Inc()
		quote = Quote{
			Currency: currency,
			USDRate:  decimal.NewFromFloat(FallbackRates[currency]),
			AsOf:     time.Now(),
			Fallback: true,
		}
	}

	s.cache.Add(currency, quote)
	return quote, nil
}

// GetAllRates returns quotes for every supported crypto currency
func (s *service) GetAllRates(ctx context.Context) (map[string]Quote, error) {
	quotes := make(map[string]Quote, len(CoinGeckoIDs))
	for currency := range CoinGeckoIDs {
		quote, err := s.GetRate(ctx, currency)
		if err != nil {
			return nil, err
		}
		quotes[currency] = quote
	}
	return quotes, nil
}

// IsSupported reports whether deposits/bets may be denominated in currency
func (s *service) IsSupported(currency string) bool {
	currency = strings.ToUpper(currency)
	if currency == USD {
		return true
	}
	_, ok := CoinGeckoIDs[currency]
	return ok
}

// SupportedCurrencies returns USD plus every supported crypto symbol
func (s *service) SupportedCurrencies() []string {
	currencies := []string{USD}
	for currency := range CoinGeckoIDs {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies[1:])
	return currencies
}

// fetchRate queries the CoinGecko simple price endpoint
func (s *service) fetchRate(ctx context.Context, currency string) (Quote, error) {
	coinID := CoinGeckoIDs[currency]

	endpoint := fmt.Sprintf("%s/simple/price?%s", s.apiURL, url.Values{
		"ids":           {coinID},
		"vs_currencies": {"usd"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build price request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("x-cg-pro-api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("price request returned status %d", resp.StatusCode)
	}

	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("failed to decode price response: %w", err)
	}

	usd, ok := body[coinID]["usd"]
	if !ok {
		return Quote{}, fmt.Errorf("price response missing usd rate for %s", coinID)
	}

	return Quote{
		Currency: currency,
		USDRate:  decimal.NewFromFloat(usd),
		AsOf:     time.Now(),
	}, nil
}
