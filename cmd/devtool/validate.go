package main

import (
	"fmt"

	"github.com/osse101/LootForge_Go/internal/validation"
)

type ValidateCommand struct{}

func (c *ValidateCommand) Name() string {
	return "validate"
}

func (c *ValidateCommand) Usage() string {
	return "<" + dataKindNames() + "> <file>"
}

func (c *ValidateCommand) Description() string {
	return "Validate a loot data file (table, catalog, rules) against its schema"
}

func (c *ValidateCommand) Run(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s %s", c.Name(), c.Usage())
	}

	summary, err := loadData(validation.NewSchemaValidator(), args[0], args[1])
	if err != nil {
		return err
	}
	PrintSuccess("%s OK (%s)", args[1], summary)
	return nil
}
