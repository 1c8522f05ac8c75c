// Package main provides the seed command for populating the inventory with
// reference data. Seeders run individually or all together.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/JaimeStill/device-inventory/internal/devices"
)

// Seeder populates one domain's data through its system.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed writes the seed data. Re-running a seeder must not duplicate records.
	Seed(ctx context.Context, sys devices.System, logger *slog.Logger) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry. Seeders self-register via init().
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

func runSeeder(ctx context.Context, sys devices.System, logger *slog.Logger, name string) error {
	seeder, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}
	if err := seeder.Seed(ctx, sys, logger); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	return nil
}

func runAllSeeders(ctx context.Context, sys devices.System, logger *slog.Logger) error {
	for _, s := range listSeeders() {
		if err := runSeeder(ctx, sys, logger, s.Name()); err != nil {
			return err
		}
	}
	return nil
}
