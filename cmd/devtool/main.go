package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := NewRegistry(
		&MigrateCommand{},
		&ValidateCommand{},
		&RollCommand{},
		&DoctorCommand{},
	)

	if err := registry.Dispatch(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			PrintError("%v", err)
		}
		os.Exit(1)
	}
}
