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

// Business metric names
const (
	MetricNameDropsStarted       = "drops_started_total"
	MetricNameDropsExpired       = "drops_expired_total"
	MetricNameCardsClaimed       = "cards_claimed_total"
	MetricNameClaimsRejected     = "claims_rejected_total"
	MetricNameCardsBurned        = "cards_burned_total"
	MetricNameCurrencyGranted    = "currency_granted_total"
	MetricNameCurrencySpent      = "currency_spent_total"
	MetricNameItemsGranted       = "items_granted_total"
	MetricNameItemsConsumed      = "items_consumed_total"
	MetricNamePlayersRegistered  = "players_registered_total"
	MetricNameLevelUps           = "level_ups_total"
	MetricNameSessionsActive     = "drop_sessions_active"
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

// Business metric help text
const (
	HelpTextDropsStarted      = "Total number of drops started"
	HelpTextDropsExpired      = "Total number of drops that expired"
	HelpTextCardsClaimed      = "Total number of cards claimed"
	HelpTextClaimsRejected    = "Total number of rejected claim attempts"
	HelpTextCardsBurned       = "Total number of cards burned"
	HelpTextCurrencyGranted   = "Total currency credited to players"
	HelpTextCurrencySpent     = "Total currency debited from players"
	HelpTextItemsGranted      = "Total number of items granted"
	HelpTextItemsConsumed     = "Total number of items consumed"
	HelpTextPlayersRegistered = "Total number of players registered"
	HelpTextLevelUps          = "Total number of level-ups"
	HelpTextSessionsActive    = "Current number of live drop sessions"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelProfile  = "profile"
	LabelRarity   = "rarity"
	LabelReason   = "reason"
	LabelCurrency = "currency"
	LabelItem     = "item"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets covers the expected request latency range
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
