package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"food-details/api"
	"food-details/bot"
	"food-details/config"
	"food-details/db"
	"food-details/server"
	"food-details/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "migrate":
		runMigrate(cfg)
	case "serve":
		runServe(cfg)
	case "", "bot":
		runBot(cfg)
	default:
		fmt.Fprintln(os.Stderr, "usage: food-details [bot|serve|migrate]")
		os.Exit(2)
	}
}

func initDB(cfg *config.Config) {
	if err := db.Init(context.Background(), cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}

	// Optional auto-migration (useful for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(context.Background(), cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

// runServe starts the reference food backend.
func runServe(cfg *config.Config) {
	initDB(cfg)
	defer db.Close()

	r := server.NewRouter(server.NewPGStore(db.Pool))
	log.Printf("Starting food API on :%s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		log.Fatal(err)
	}
}

func runBot(cfg *config.Config) {
	if cfg.Telegram.Token == "" {
		fmt.Fprintln(os.Stderr, "TOKEN not set")
		os.Exit(1)
	}

	var sessions services.SessionStore
	switch cfg.Screen.SessionStore {
	case "postgres":
		initDB(cfg)
		defer db.Close()
		sessions = services.NewPGSessionStore(db.Pool)
	case "memory":
		sessions = services.NewMemorySessionStore()
	default:
		fmt.Fprintln(os.Stderr, "SESSION_STORE must be memory or postgres, got", cfg.Screen.SessionStore)
		os.Exit(1)
	}

	backend := api.New(cfg.API.BaseURL, cfg.API.Timeout)
	b, err := bot.New(cfg, backend, sessions)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bot:", err)
		os.Exit(1)
	}

	log.Printf("Bot started, food API at %s", cfg.API.BaseURL)
	b.Start()
}
