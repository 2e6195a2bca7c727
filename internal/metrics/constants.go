package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every loot metric
const Namespace = "lootforge"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Loot metric names
const (
	MetricNameRollsTotal          = "rolls_total"
	MetricNameLegendaryChance     = "legendary_chance"
	MetricNameFallbackTotal       = "fallback_total"
	MetricNameDropsSuppressed     = "drops_suppressed_total"
	MetricNamePityForced          = "pity_forced_total"
	MetricNameMultiDropResults    = "multidrop_results"
	MetricNameUniquenessExhausted = "uniqueness_exhausted_total"
	MetricNameTableReloads        = "table_reloads_total"
	MetricNameStatsResets         = "stats_resets_total"
)

// Stream metric names
const (
	MetricNameSSEClients       = "sse_clients"
	MetricNameSSEEventsDropped = "sse_events_dropped_total"
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

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Loot metric help text
const (
	HelpTextRollsTotal          = "Total number of loot rolls by rarity"
	HelpTextLegendaryChance     = "Legendary chance used per roll after pity"
	HelpTextFallbackTotal       = "Loot rolls by the fallback stage that produced the item"
	HelpTextDropsSuppressed     = "Loot rolls suppressed because every entry failed its drop chance"
	HelpTextPityForced          = "Legendary drops guaranteed by hard pity"
	HelpTextMultiDropResults    = "Number of results per multi-drop plan"
	HelpTextUniquenessExhausted = "Multi-drop units skipped after exhausting uniqueness retries"
	HelpTextTableReloads        = "Number of loot table swaps"
	HelpTextStatsResets         = "Number of player stats resets"
)

// Stream metric help text
const (
	HelpTextSSEClients       = "Connected event stream clients"
	HelpTextSSEEventsDropped = "Stream events dropped because a buffer was full"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelRarity = "rarity"
	LabelStage  = "stage"
	LabelBucket = "bucket"
)

// UnmatchedRoute labels requests chi could not route
const UnmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// LegendaryChanceBuckets covers the pity range up to a guaranteed drop.
var LegendaryChanceBuckets = []float64{0, .001, .005, .01, .02, .05, .1, .15, .2, .25, .5, 1}

// MultiDropBuckets covers typical batch sizes.
var MultiDropBuckets = []float64{0, 1, 2, 3, 5, 8, 13, 21, 34}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
