package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/LootForge_Go/internal/concurrency"
	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/repository"
)

// Store owns player loot stats. WithStats runs fn with exclusive access to
// the player's record and reports whether fn ran. An error can accompany
// found == true when the record was mutated but could not be persisted.
//
// Callers must not keep the pointer passed to fn after it returns.
type Store interface {
	WithStats(ctx context.Context, playerRef string, fn func(*domain.PlayerLootStats)) (bool, error)
}

// MemoryStore keeps stats records in process memory.
type MemoryStore struct {
	mu         sync.RWMutex
	records    map[string]*domain.PlayerLootStats
	locks      *concurrency.LockManager
	autoCreate bool
}

// NewMemoryStore creates an empty store. With autoCreate, unknown players get
// a fresh record on first use instead of rolling without stats.
func NewMemoryStore(autoCreate bool) *MemoryStore {
	return &MemoryStore{
		records:    make(map[string]*domain.PlayerLootStats),
		locks:      concurrency.NewLockManager(),
		autoCreate: autoCreate,
	}
}

// Put stores a copy of stats for the player, replacing any existing record.
func (m *MemoryStore) Put(playerRef string, stats *domain.PlayerLootStats) {
	m.locks.WithLock(playerRef, func() {
		m.mu.Lock()
		m.records[playerRef] = stats.Clone()
		m.mu.Unlock()
	})
}

// Delete removes the player's record.
func (m *MemoryStore) Delete(playerRef string) {
	m.locks.WithLock(playerRef, func() {
		m.mu.Lock()
		delete(m.records, playerRef)
		m.mu.Unlock()
	})
}

func (m *MemoryStore) WithStats(ctx context.Context, playerRef string, fn func(*domain.PlayerLootStats)) (bool, error) {
	if playerRef == "" {
		return false, nil
	}

	found := false
	m.locks.WithLock(playerRef, func() {
		m.mu.RLock()
		rec, ok := m.records[playerRef]
		m.mu.RUnlock()

		if !ok {
			if !m.autoCreate {
				return
			}
			rec = domain.NewPlayerLootStats()
			m.mu.Lock()
			m.records[playerRef] = rec
			m.mu.Unlock()
			logger.FromContext(ctx).Debug(LogMsgStatsCreated, LogFieldPlayerRef, playerRef)
		}

		fn(rec)
		found = true
	})
	return found, nil
}

// PersistentStore loads and saves records through a repository around each
// mutation, serialized per player.
type PersistentStore struct {
	repo       repository.Stats
	locks      *concurrency.LockManager
	autoCreate bool
}

// NewPersistentStore wraps a stats repository.
func NewPersistentStore(repo repository.Stats, autoCreate bool) *PersistentStore {
	return &PersistentStore{
		repo:       repo,
		locks:      concurrency.NewLockManager(),
		autoCreate: autoCreate,
	}
}

func (p *PersistentStore) WithStats(ctx context.Context, playerRef string, fn func(*domain.PlayerLootStats)) (bool, error) {
	if playerRef == "" {
		return false, nil
	}

	mu := p.locks.GetLock(playerRef)
	mu.Lock()
	defer mu.Unlock()

	log := logger.FromContext(ctx)

	rec, err := p.repo.Load(ctx, playerRef)
	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		if !p.autoCreate {
			return false, nil
		}
		rec = domain.NewPlayerLootStats()
	case err != nil:
		log.Warn(LogMsgStatsLoadFailed, LogFieldPlayerRef, playerRef, LogFieldError, err)
		return false, fmt.Errorf(ErrContextLoadStats+": %w", playerRef, err)
	}
	rec.Repair()

	fn(rec)

	if err := p.repo.Save(ctx, playerRef, rec); err != nil {
		log.Error(LogMsgStatsSaveFailed, LogFieldPlayerRef, playerRef, LogFieldError, err)
		return true, fmt.Errorf(ErrContextSaveStats+": %w", playerRef, err)
	}
	return true, nil
}

// Delete removes the player's persisted record.
func (p *PersistentStore) Delete(ctx context.Context, playerRef string) error {
	mu := p.locks.GetLock(playerRef)
	mu.Lock()
	defer mu.Unlock()

	if err := p.repo.Delete(ctx, playerRef); err != nil {
		return fmt.Errorf(ErrContextDeleteStats+": %w", playerRef, err)
	}
	return nil
}
