package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/device-inventory/internal/config"
	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/pkg/database"
	"github.com/JaimeStill/device-inventory/pkg/logging"
	"github.com/joho/godotenv"
)

func main() {
	var (
		all  = flag.Bool("all", false, "Run all seeders")
		devs = flag.Bool("devices", false, "Seed devices")
		file = flag.String("file", "", "External seed file (overrides embedded)")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && !*devs {
		fmt.Println("usage: seed [-all|-devices] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("env file load failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Connection().Close()

	ctx := context.Background()
	if err := db.Ping(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sys := devices.New(devices.NewPostgresStore(db.Connection()), logger)

	switch {
	case *all:
		if err := runAllSeeders(ctx, sys, logger); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("all seeders completed successfully")

	case *devs:
		if *file != "" {
			if seeder, ok := getSeeder("devices"); ok {
				seeder.(*DeviceSeeder).SetFile(*file)
			}
		}
		if err := runSeeder(ctx, sys, logger, "devices"); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("devices seeded successfully")
	}
}
