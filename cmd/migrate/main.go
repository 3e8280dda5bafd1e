package main

import (
	"flag"
	"fmt"
	"os"
	"remindchat/internal/config"
	"remindchat/internal/db"
)

func main() {
	path := flag.String("path", "", "migrations directory, defaults to MIGRATIONS_PATH")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	migrationsPath := cfg.MigrationsPath
	if *path != "" {
		migrationsPath = *path
	}

	if err := db.ApplyMigrations(migrationsPath, cfg.PostgresqlURL); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations applied.")
}
