package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/oksasatya/event-portal/config"
	"github.com/oksasatya/event-portal/internal/application"
	pginfra "github.com/oksasatya/event-portal/internal/infrastructure/postgres"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

// seed creates the first administrator. There is no public registration, so
// every other account is created by an administrator through the API.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	password := cfg.SeedAdminPassword
	if password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		p, err := readPassword(cfg.SeedAdminUsername)
		if err != nil {
			log.Fatalf("failed to read password: %v", err)
		}
		password = p
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	dir := application.NewDirectoryService(pginfra.NewAccountRepository(pool), nil, nil, logger)
	created, err := dir.EnsureAdmin(ctx, cfg.SeedAdminUsername, password, cfg.SeedAdminEmail)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	helpers.LogInfo(logger, "admin ensured", logrus.Fields{"username": cfg.SeedAdminUsername, "created": created})
}

// readPassword prompts twice without echo and requires both entries to match.
func readPassword(username string) (string, error) {
	fmt.Printf("password for %s: ", username)
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	fmt.Print("confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}
