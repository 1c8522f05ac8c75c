// Command migrate applies or rolls back the embedded schema migrations.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/device-inventory/internal/config"
	"github.com/JaimeStill/device-inventory/migrations"
	"github.com/JaimeStill/device-inventory/pkg/database"
	"github.com/JaimeStill/device-inventory/pkg/logging"
	"github.com/joho/godotenv"
)

func main() {
	steps := flag.Int("steps", 1, "Number of migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [-steps n] up|down|version")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
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

	m, err := database.NewMigrator(db.Connection(), migrations.FS, ".", logger)
	if err != nil {
		log.Fatalf("migrator init failed: %v", err)
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down(*steps)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("version %d (dirty: %t)\n", v, dirty)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("migrate %s failed: %v", flag.Arg(0), err)
	}
}
