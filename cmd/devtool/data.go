package main

import (
	"fmt"
	"strings"

	"github.com/osse101/LootForge_Go/internal/catalog"
	"github.com/osse101/LootForge_Go/internal/lootrules"
	"github.com/osse101/LootForge_Go/internal/loottable"
	"github.com/osse101/LootForge_Go/internal/validation"
)

const (
	dataKindTable   = "table"
	dataKindCatalog = "catalog"
	dataKindRules   = "rules"
)

// dataKind loads one kind of loot data file and summarizes it.
type dataKind struct {
	name string
	load func(v validation.SchemaValidator, path string) (string, error)
}

var dataKinds = []dataKind{
	{dataKindTable, func(v validation.SchemaValidator, path string) (string, error) {
		table, err := loottable.NewLoader(v, nil).Load(path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("table %q: %d pools, %d entry sets", table.Name, len(table.Pools), len(table.EntrySets)), nil
	}},
	{dataKindCatalog, func(v validation.SchemaValidator, path string) (string, error) {
		c, err := catalog.Load(v, path, catalog.CacheConfig{})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("catalog: %d items", c.Len()), nil
	}},
	{dataKindRules, func(v validation.SchemaValidator, path string) (string, error) {
		rs, err := lootrules.Load(v, path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rules: %d rules", len(rs.Rules)), nil
	}},
}

// dataKindNames renders the accepted kinds as "table|catalog|rules".
func dataKindNames() string {
	names := make([]string, len(dataKinds))
	for i, k := range dataKinds {
		names[i] = k.name
	}
	return strings.Join(names, "|")
}

// loadData validates one data file of the given kind and returns a short
// summary line.
func loadData(v validation.SchemaValidator, kind, path string) (string, error) {
	for _, k := range dataKinds {
		if k.name == kind {
			return k.load(v, path)
		}
	}
	return "", fmt.Errorf("unknown data kind %q: want %s", kind, dataKindNames())
}
