package main

import (
	"flag"
	"log"

	"github.com/resiplicity/backend/config"
	"github.com/resiplicity/backend/internal/database"
)

func main() {
	dir := flag.String("dir", "migrations", "path to the migrations directory")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Migrate] failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("[Migrate] failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, *dir); err != nil {
		log.Fatalf("[Migrate] migration failed: %v", err)
	}

	log.Println("[Migrate] migrations applied")
}
