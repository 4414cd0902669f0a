package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Ledger metric names
const (
	MetricNameLedgerOperations    = "ledger_operations_total"
	MetricNameLedgerConflicts     = "ledger_conflict_retries_total"
	MetricNameCompensationsFailed = "ledger_compensations_failed_total"
)

// Game metric names
const (
	MetricNameRoundsPlayed  = "casino_rounds_played_total"
	MetricNameAmountWagered = "casino_amount_wagered_usd_total"
	MetricNameAmountPaidOut = "casino_amount_paid_out_usd_total"
	MetricNameRoundsRecovered = "casino_rounds_recovered_total"
)

// Betting metric names
const (
	MetricNameBetsPlaced   = "bets_placed_total"
	MetricNameBetsResolved = "bets_resolved_total"
)

// Price feed metric names
const (
	MetricNamePriceCacheHits   = "price_cache_hits_total"
	MetricNamePriceCacheMisses = "price_cache_misses_total"
	MetricNamePriceFeedErrors  = "price_feed_errors_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Ledger metric help text
const (
	HelpTextLedgerOperations    = "Total number of ledger operations by kind and result"
	HelpTextLedgerConflicts     = "Total number of ledger retries caused by concurrent update conflicts"
	HelpTextCompensationsFailed = "Total number of failed compensating releases requiring reconciliation"
)

// Game metric help text
const (
	HelpTextRoundsPlayed    = "Total number of casino rounds played by game and outcome"
	HelpTextAmountWagered   = "Total USD value wagered on casino games"
	HelpTextAmountPaidOut   = "Total USD value paid out by casino games"
	HelpTextRoundsRecovered = "Total number of orphaned rounds handled by the recovery pass"
)

// Betting metric help text
const (
	HelpTextBetsPlaced   = "Total number of sports bets placed"
	HelpTextBetsResolved = "Total number of sports bets resolved by result"
)

// Price feed metric help text
const (
	HelpTextPriceCacheHits   = "Total number of price cache hits"
	HelpTextPriceCacheMisses = "Total number of price cache misses"
	HelpTextPriceFeedErrors  = "Total number of upstream price feed failures"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelResult  = "result"
	LabelGame    = "game"
	LabelOutcome = "outcome"
	LabelAction  = "action"
)
