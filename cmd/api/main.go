package main

import (
	"context"
	"log"

	"github.com/resiplicity/backend/config"
	"github.com/resiplicity/backend/internal/database"
	"github.com/resiplicity/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Main] failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("[Main] failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("[Main] redis unavailable, drafts and rate limiting disabled: %v", err)
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("[Main] S3 unavailable, plating images will not be re-hosted: %v", err)
		s3Config = nil
	}

	srv, err := server.New(cfg, db, redisClient, s3Config)
	if err != nil {
		log.Fatalf("[Main] failed to build server: %v", err)
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("[Main] server error: %v", err)
	}
}
