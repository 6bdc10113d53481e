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
			Buckets: HTTPLatencyBuckets,
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

// Drop Metrics
var (
	DropsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDropsStarted,
			Help: HelpTextDropsStarted,
		},
		[]string{LabelProfile},
	)

	DropsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDropsExpired,
			Help: HelpTextDropsExpired,
		},
	)

	CardsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsClaimed,
			Help: HelpTextCardsClaimed,
		},
		[]string{LabelRarity},
	)

	ClaimsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsRejected,
			Help: HelpTextClaimsRejected,
		},
		[]string{LabelReason},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionsActive,
			Help: HelpTextSessionsActive,
		},
	)
)

// Economy Metrics
var (
	CardsBurned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsBurned,
			Help: HelpTextCardsBurned,
		},
		[]string{LabelRarity},
	)

	CurrencyGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCurrencyGranted,
			Help: HelpTextCurrencyGranted,
		},
		[]string{LabelCurrency},
	)

	CurrencySpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCurrencySpent,
			Help: HelpTextCurrencySpent,
		},
		[]string{LabelCurrency},
	)

	ItemsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsGranted,
			Help: HelpTextItemsGranted,
		},
		[]string{LabelItem},
	)

	ItemsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsConsumed,
			Help: HelpTextItemsConsumed,
		},
		[]string{LabelItem},
	)
)

// Player Metrics
var (
	PlayersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayersRegistered,
			Help: HelpTextPlayersRegistered,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)
)
