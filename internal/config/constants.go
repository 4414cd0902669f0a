package config

// Default configuration values
const (
	DefaultPort                 = 8080
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultEnvironment          = "dev"
	DefaultVersion              = "dev"
	DefaultDBName               = "ibcplay"
	DefaultJWTTTLMinutes        = 10080 // 7 days
	DefaultCoinGeckoURL         = "https://api.coingecko.com/api/v3"
	DefaultPriceCacheTTLSeconds = 60
	DefaultPriceTimeoutSeconds  = 10
)

// Validation limits
const (
	MinJWTSecretLength = 32
)
