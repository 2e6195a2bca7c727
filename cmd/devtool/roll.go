package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/osse101/LootForge_Go/internal/catalog"
	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/loot"
	"github.com/osse101/LootForge_Go/internal/loottable"
	"github.com/osse101/LootForge_Go/internal/stats"
	"github.com/osse101/LootForge_Go/internal/validation"
)

type RollCommand struct{}

func (c *RollCommand) Name() string {
	return "roll"
}

func (c *RollCommand) Usage() string {
	return "[-n N] [-player P] [-catalog F] [-source T] [-level L] <table>"
}

func (c *RollCommand) Description() string {
	return "Roll a loot table N times and print the rarity distribution"
}

func (c *RollCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	n := fs.Int("n", defaultRollCount, "number of rolls")
	player := fs.String("player", "", "player ref; enables pity tracking")
	items := fs.String("catalog", "", "item catalog file")
	source := fs.String("source", "", "source tag for the rolls")
	level := fs.Int("level", domain.DefaultEnemyLevel, "enemy level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: roll [flags] <table>")
	}
	if *n <= 0 {
		return fmt.Errorf("-n must be positive")
	}

	result, err := rollTable(context.Background(), rollOptions{
		TablePath:   fs.Arg(0),
		CatalogPath: *items,
		Count:       *n,
		Player:      *player,
		SourceTag:   domain.NormalizeTag(*source),
		Level:       *level,
	})
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("%d rolls", *n))
	for _, r := range domain.AllRarities() {
		count := result.ByRarity[r]
		if count == 0 {
			continue
		}
		fmt.Printf("  %-18s %7d  %6.2f%%\n", r.DisplayName(), count, 100*float64(count)/float64(*n))
	}
	if result.Empty > 0 {
		PrintWarning("%d rolls produced nothing", result.Empty)
	}
	if result.PityForced > 0 {
		PrintInfo("%d rolls forced by hard pity", result.PityForced)
	}
	return nil
}

type rollOptions struct {
	TablePath   string
	CatalogPath string
	Count       int
	Player      string
	SourceTag   domain.Tag
	Level       int
}

type rollSummary struct {
	ByRarity   map[domain.Rarity]int
	Empty      int
	PityForced int
}

func rollTable(ctx context.Context, opts rollOptions) (rollSummary, error) {
	v := validation.NewSchemaValidator()

	var (
		engineOpts []loot.Option
		resolver   loottable.DefinitionResolver
	)
	if opts.CatalogPath != "" {
		c, err := catalog.Load(v, opts.CatalogPath, catalog.CacheConfig{})
		if err != nil {
			return rollSummary{}, err
		}
		resolver = c
		engineOpts = append(engineOpts, loot.WithCatalog(c))
	}

	table, err := loottable.NewLoader(v, resolver).Load(opts.TablePath)
	if err != nil {
		return rollSummary{}, err
	}

	engineOpts = append(engineOpts, loot.WithStatsStore(stats.NewMemoryStore(true)))
	engine := loot.NewEngine(table, engineOpts...)

	lc := domain.NewLootContext()
	lc.PlayerRef = opts.Player
	lc.SourceTag = opts.SourceTag
	lc.EnemyLevel = opts.Level

	summary := rollSummary{ByRarity: make(map[domain.Rarity]int)}
	for range opts.Count {
		roll := engine.RollDetailed(ctx, lc)
		if roll.Result.IsEmpty() {
			summary.Empty++
			continue
		}
		summary.ByRarity[roll.Result.Rarity]++
		if roll.PityForced {
			summary.PityForced++
		}
	}
	return summary, nil
}
