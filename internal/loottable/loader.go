package loottable

import (
	"fmt"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/validation"
)

// DefinitionResolver resolves item ids to definitions. The item catalog
// satisfies it.
type DefinitionResolver interface {
	Resolve(id string) (*domain.ItemDefinition, bool)
}

// Loader handles loading and validating loot table files (JSON or YAML)
type Loader interface {
	Load(path string) (*Table, error)
	LoadBytes(data []byte, isYAML bool) (*Table, error)
	Validate(table *Table) error
}

type tableLoader struct {
	schemaValidator validation.SchemaValidator
	resolver        DefinitionResolver
}

// NewLoader creates a loader. resolver may be nil, in which case entries keep
// only their item ids.
func NewLoader(schemaValidator validation.SchemaValidator, resolver DefinitionResolver) Loader {
	return &tableLoader{
		schemaValidator: schemaValidator,
		resolver:        resolver,
	}
}

// Load reads, schema-validates, checks and prepares a table file.
func (l *tableLoader) Load(path string) (*Table, error) {
	var table Table
	if err := validation.DecodeFile(l.schemaValidator, path, LootTableSchemaPath, &table); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrContextFailedToLoadTable, path, err)
	}
	return l.finish(&table)
}

// LoadBytes is Load for in-memory data.
func (l *tableLoader) LoadBytes(data []byte, isYAML bool) (*Table, error) {
	var table Table
	if err := validation.DecodeBytes(l.schemaValidator, data, isYAML, LootTableSchemaPath, &table); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadTable, err)
	}
	return l.finish(&table)
}

func (l *tableLoader) finish(table *Table) (*Table, error) {
	if err := l.Validate(table); err != nil {
		return nil, err
	}
	clampTable(table)
	l.link(table)
	table.Prepare()

	logger.Info(LogMsgTableLoaded,
		LogFieldTable, table.Name,
		LogFieldPools, len(table.Pools),
		LogFieldEntries, countEntries(table))
	return table, nil
}

// Validate checks structural problems that cannot be clamped away.
func (l *tableLoader) Validate(table *Table) error {
	if table == nil || len(table.Pools) == 0 {
		name := ""
		if table != nil {
			name = table.Name
		}
		return fmt.Errorf("%w: "+ErrContextNoPools, domain.ErrInvalidTable, name)
	}

	referenced := make(map[string]bool, len(table.EntrySets))
	for i := range table.Pools {
		pool := &table.Pools[i]
		label := fmt.Sprintf("pool %q", pool.Name)

		if pool.MinWorldTier > 0 && pool.MaxWorldTier > 0 && pool.MinWorldTier > pool.MaxWorldTier {
			return fmt.Errorf("%w: "+ErrContextInvalidTierBounds, domain.ErrInvalidTable, pool.Name, pool.MinWorldTier, pool.MaxWorldTier)
		}
		if err := checkLevelBounds(label, pool.MinLevel, pool.MaxLevel); err != nil {
			return err
		}
		for _, name := range pool.EntrySets {
			if _, ok := table.EntrySets[name]; !ok {
				return fmt.Errorf("%w: "+ErrContextUnknownEntrySet, domain.ErrInvalidTable, pool.Name, name)
			}
			referenced[name] = true
		}
		if err := checkEntries(label, pool.Entries); err != nil {
			return err
		}
	}

	for name, set := range table.EntrySets {
		if err := checkEntries(fmt.Sprintf("entry set %q", name), set.Entries); err != nil {
			return err
		}
		if !referenced[name] {
			logger.Warn(LogMsgUnusedEntrySet, LogFieldTable, table.Name, LogFieldEntrySet, name)
		}
	}

	for _, row := range table.RarityWeights {
		if err := checkLevelBounds(fmt.Sprintf("rarity weight row %s", row.Rarity), row.MinLevel, row.MaxLevel); err != nil {
			return err
		}
		if row.Rarity == domain.RarityLegendary {
			logger.Warn(LogMsgLegendaryWeightRow, LogFieldTable, table.Name)
		}
	}
	return nil
}

func checkEntries(label string, entries []Entry) error {
	for i := range entries {
		e := &entries[i]
		if !e.HasItem() {
			return fmt.Errorf("%w: "+ErrContextEntryMissingItem, domain.ErrInvalidTable, label, i)
		}
		if err := checkLevelBounds(fmt.Sprintf("%s entry %s", label, e.IdentityKey()), e.MinLevel, e.MaxLevel); err != nil {
			return err
		}
	}
	return nil
}

func checkLevelBounds(label string, lo, hi int) error {
	if lo > 0 && hi > 0 && lo > hi {
		return fmt.Errorf("%w: "+ErrContextInvalidLevelBounds, domain.ErrInvalidTable, label, lo, hi)
	}
	return nil
}

// clampTable replaces negative weights and chances with zero.
func clampTable(table *Table) {
	clampEntries := func(entries []Entry) {
		for i := range entries {
			e := &entries[i]
			if e.Weight < 0 {
				logger.Warn(LogMsgNegativeValue, LogFieldTable, table.Name, LogFieldItem, e.IdentityKey(), LogFieldField, "weight")
				e.Weight = 0
			}
			if e.DropChance < 0 {
				logger.Warn(LogMsgNegativeValue, LogFieldTable, table.Name, LogFieldItem, e.IdentityKey(), LogFieldField, "drop_chance")
				e.DropChance = 0
			}
			e.DropChance = e.EffectiveDropChance()
		}
	}

	for i := range table.Pools {
		clampEntries(table.Pools[i].Entries)
	}
	for _, set := range table.EntrySets {
		clampEntries(set.Entries)
	}
}

// link attaches catalog definitions to entries that only carry an item id.
func (l *tableLoader) link(table *Table) {
	if l.resolver == nil {
		return
	}
	linkEntries := func(entries []Entry) {
		for i := range entries {
			e := &entries[i]
			if e.Definition != nil || e.ItemID == "" {
				continue
			}
			if def, ok := l.resolver.Resolve(e.ItemID); ok {
				e.Definition = def
			} else {
				logger.Warn(LogMsgUnresolvedItem, LogFieldTable, table.Name, LogFieldItem, e.ItemID)
			}
		}
	}

	for i := range table.Pools {
		linkEntries(table.Pools[i].Entries)
	}
	for _, set := range table.EntrySets {
		linkEntries(set.Entries)
	}
}

func countEntries(table *Table) int {
	n := 0
	for i := range table.Pools {
		n += len(table.CollectEntries(&table.Pools[i]))
	}
	return n
}
