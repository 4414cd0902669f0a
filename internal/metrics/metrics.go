package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Ledger Metrics
var (
	LedgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerOperations,
			Help: HelpTextLedgerOperations,
		},
		[]string{LabelKind, LabelResult},
	)

	LedgerConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLedgerConflicts,
			Help: HelpTextLedgerConflicts,
		},
	)

	CompensationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCompensationsFailed,
			Help: HelpTextCompensationsFailed,
		},
	)
)

// Game Metrics
var (
	RoundsPlayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsPlayed,
			Help: HelpTextRoundsPlayed,
		},
		[]string{LabelGame, LabelOutcome},
	)

	AmountWagered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAmountWagered,
			Help: HelpTextAmountWagered,
		},
	)

	AmountPaidOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAmountPaidOut,
			Help: HelpTextAmountPaidOut,
		},
	)

	RoundsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsRecovered,
			Help: HelpTextRoundsRecovered,
		},
		[]string{LabelAction},
	)
)

// Betting Metrics
var (
	BetsPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBetsPlaced,
			Help: HelpTextBetsPlaced,
		},
	)

	BetsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBetsResolved,
			Help: HelpTextBetsResolved,
		},
		[]string{LabelResult},
	)
)

// Price Feed Metrics
var (
	PriceCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePriceCacheHits,
			Help: HelpTextPriceCacheHits,
		},
	)

	PriceCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePriceCacheMisses,
			Help: HelpTextPriceCacheMisses,
		},
	)

	PriceFeedErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePriceFeedErrors,
			Help: HelpTextPriceFeedErrors,
		},
	)
)
