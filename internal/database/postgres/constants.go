package postgres

// Queries
const (
	queryLoadStats = `
SELECT dropped_by_rarity, picked_up_by_rarity, legendaries_dropped, legendaries_picked_up,
       drops_since_last_legendary, drop_window, window_index, window_count,
       legendaries_in_window, items_picked_up
FROM player_loot_stats
WHERE player_ref = $1`

	querySaveStats = `
INSERT INTO player_loot_stats (
    player_ref, dropped_by_rarity, picked_up_by_rarity, legendaries_dropped,
    legendaries_picked_up, drops_since_last_legendary, drop_window, window_index,
    window_count, legendaries_in_window, items_picked_up, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
ON CONFLICT (player_ref) DO UPDATE SET
    dropped_by_rarity          = EXCLUDED.dropped_by_rarity,
    picked_up_by_rarity        = EXCLUDED.picked_up_by_rarity,
    legendaries_dropped        = EXCLUDED.legendaries_dropped,
    legendaries_picked_up      = EXCLUDED.legendaries_picked_up,
    drops_since_last_legendary = EXCLUDED.drops_since_last_legendary,
    drop_window                = EXCLUDED.drop_window,
    window_index               = EXCLUDED.window_index,
    window_count               = EXCLUDED.window_count,
    legendaries_in_window      = EXCLUDED.legendaries_in_window,
    items_picked_up            = EXCLUDED.items_picked_up,
    updated_at                 = NOW()`

	queryDeleteStats = `DELETE FROM player_loot_stats WHERE player_ref = $1`
)

// Error Messages - Stats Operations
const (
	ErrMsgFailedToLoadStats   = "failed to load player loot stats"
	ErrMsgFailedToSaveStats   = "failed to save player loot stats"
	ErrMsgFailedToDeleteStats = "failed to delete player loot stats"
)
