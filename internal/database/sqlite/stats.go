package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/osse101/LootForge_Go/internal/database"
	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/repository"
)

const (
	queryLoadStats = `
SELECT dropped_by_rarity, picked_up_by_rarity, legendaries_dropped, legendaries_picked_up,
       drops_since_last_legendary, drop_window, window_index, window_count,
       legendaries_in_window, items_picked_up
FROM player_loot_stats
WHERE player_ref = ?`

	querySaveStats = `
INSERT INTO player_loot_stats (
    player_ref, dropped_by_rarity, picked_up_by_rarity, legendaries_dropped,
    legendaries_picked_up, drops_since_last_legendary, drop_window, window_index,
    window_count, legendaries_in_window, items_picked_up, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (player_ref) DO UPDATE SET
    dropped_by_rarity          = excluded.dropped_by_rarity,
    picked_up_by_rarity        = excluded.picked_up_by_rarity,
    legendaries_dropped        = excluded.legendaries_dropped,
    legendaries_picked_up      = excluded.legendaries_picked_up,
    drops_since_last_legendary = excluded.drops_since_last_legendary,
    drop_window                = excluded.drop_window,
    window_index               = excluded.window_index,
    window_count               = excluded.window_count,
    legendaries_in_window      = excluded.legendaries_in_window,
    items_picked_up            = excluded.items_picked_up,
    updated_at                 = CURRENT_TIMESTAMP`

	queryDeleteStats = `DELETE FROM player_loot_stats WHERE player_ref = ?`
)

const (
	ErrMsgFailedToLoadStats   = "failed to load player loot stats"
	ErrMsgFailedToSaveStats   = "failed to save player loot stats"
	ErrMsgFailedToDeleteStats = "failed to delete player loot stats"
)

// StatsRepository stores player loot stats in sqlite. Array columns are
// JSON text.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *sql.DB) repository.Stats {
	return &StatsRepository{db: db}
}

// Load returns the player's record or domain.ErrPlayerNotFound.
func (r *StatsRepository) Load(ctx context.Context, playerRef string) (*domain.PlayerLootStats, error) {
	var (
		row                       database.StatsRow
		dropped, pickedUp, window string
		itemsPickedUp             string
	)
	err := r.db.QueryRowContext(ctx, queryLoadStats, playerRef).Scan(
		&dropped,
		&pickedUp,
		&row.LegendariesDropped,
		&row.LegendariesPickedUp,
		&row.DropsSinceLastLegendary,
		&window,
		&row.WindowIndex,
		&row.WindowCount,
		&row.LegendariesInWindow,
		&itemsPickedUp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadStats, err)
	}

	if err := decodeColumn("dropped_by_rarity", dropped, &row.DroppedByRarity); err != nil {
		return nil, err
	}
	if err := decodeColumn("picked_up_by_rarity", pickedUp, &row.PickedUpByRarity); err != nil {
		return nil, err
	}
	if err := decodeColumn("drop_window", window, &row.Window); err != nil {
		return nil, err
	}
	row.ItemsPickedUp = []byte(itemsPickedUp)

	return row.ToDomain()
}

// Save upserts the player's record.
func (r *StatsRepository) Save(ctx context.Context, playerRef string, stats *domain.PlayerLootStats) error {
	row, err := database.NewStatsRow(stats)
	if err != nil {
		return err
	}

	dropped, err := encodeColumn("dropped_by_rarity", row.DroppedByRarity)
	if err != nil {
		return err
	}
	pickedUp, err := encodeColumn("picked_up_by_rarity", row.PickedUpByRarity)
	if err != nil {
		return err
	}
	window, err := encodeColumn("drop_window", row.Window)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, querySaveStats,
		playerRef,
		dropped,
		pickedUp,
		row.LegendariesDropped,
		row.LegendariesPickedUp,
		row.DropsSinceLastLegendary,
		window,
		row.WindowIndex,
		row.WindowCount,
		row.LegendariesInWindow,
		string(row.ItemsPickedUp),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveStats, err)
	}
	return nil
}

// Delete removes the player's record. Deleting a missing player returns
// domain.ErrPlayerNotFound.
func (r *StatsRepository) Delete(ctx context.Context, playerRef string) error {
	res, err := r.db.ExecContext(ctx, queryDeleteStats, playerRef)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteStats, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteStats, err)
	}
	if n == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

func encodeColumn(name string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf(database.ErrMsgFailedToEncodeStatsField+": %w", name, err)
	}
	return string(data), nil
}

func decodeColumn(name, data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf(database.ErrMsgFailedToDecodeStatsField+": %w", name, err)
	}
	return nil
}
