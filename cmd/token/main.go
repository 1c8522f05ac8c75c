// Command token issues a signed session token for local use and testing.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/device-inventory/internal/auth"
	"github.com/JaimeStill/device-inventory/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	var (
		user  = flag.String("user", "", "Subject of the token")
		admin = flag.Bool("admin", false, "Grant administrator privileges")
	)
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user <name> [-admin]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("env file load failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	token, err := auth.NewTokens(&cfg.Auth).Issue(*user, *admin)
	if err != nil {
		log.Fatalf("issue token failed: %v", err)
	}
	fmt.Println(token)
}
