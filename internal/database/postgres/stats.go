package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/LootForge_Go/internal/database"
	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/repository"
)

// StatsRepository implements the stats repository for PostgreSQL
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(pool *pgxpool.Pool) repository.Stats {
	return &StatsRepository{pool: pool}
}

// Load returns the player's record or domain.ErrPlayerNotFound.
func (r *StatsRepository) Load(ctx context.Context, playerRef string) (*domain.PlayerLootStats, error) {
	var row database.StatsRow
	err := r.pool.QueryRow(ctx, queryLoadStats, playerRef).Scan(
		&row.DroppedByRarity,
		&row.PickedUpByRarity,
		&row.LegendariesDropped,
		&row.LegendariesPickedUp,
		&row.DropsSinceLastLegendary,
		&row.Window,
		&row.WindowIndex,
		&row.WindowCount,
		&row.LegendariesInWindow,
		&row.ItemsPickedUp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadStats, err)
	}
	return row.ToDomain()
}

// Save upserts the player's record.
func (r *StatsRepository) Save(ctx context.Context, playerRef string, stats *domain.PlayerLootStats) error {
	row, err := database.NewStatsRow(stats)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, querySaveStats,
		playerRef,
		row.DroppedByRarity,
		row.PickedUpByRarity,
		row.LegendariesDropped,
		row.LegendariesPickedUp,
		row.DropsSinceLastLegendary,
		row.Window,
		row.WindowIndex,
		row.WindowCount,
		row.LegendariesInWindow,
		row.ItemsPickedUp,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveStats, err)
	}
	return nil
}

// Delete removes the player's record. Deleting a missing player returns
// domain.ErrPlayerNotFound.
func (r *StatsRepository) Delete(ctx context.Context, playerRef string) error {
	tag, err := r.pool.Exec(ctx, queryDeleteStats, playerRef)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteStats, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
