package prices

// USD is the base currency; every rate is quoted against it.
const USD = "USD"

// CoinGeckoIDs maps supported crypto symbols to CoinGecko coin IDs
var CoinGeckoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
	"BNB": "binancecoin",
}

// FallbackRates are simulated USD prices used when the upstream API is
// unreachable and no cached quote exists
var FallbackRates = map[string]float64{
	"BTC": 45000.0,
	"ETH": 2500.0,
	"SOL": 100.0,
	"BNB": 350.0,
}

// Cache sizing
const (
	CacheSize = 16
)
