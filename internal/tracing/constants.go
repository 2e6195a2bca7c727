package tracing

// Span names
const (
	SpanRoll      = "loot.roll"
	SpanMultiDrop = "loot.multidrop"
	SpanReload    = "loot.reload"
)

// Span attribute keys
const (
	AttrHTTPMethod  = "http.request.method"
	AttrHTTPPath    = "url.path"
	AttrPlayerRef   = "loot.player_ref"
	AttrSourceTag   = "loot.source_tag"
	AttrRarity      = "loot.rarity"
	AttrStage       = "loot.stage"
	AttrPityForced  = "loot.pity_forced"
	AttrTotalTarget = "loot.total_target"
	AttrResults     = "loot.results"
)
