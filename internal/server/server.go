package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/resiplicity/backend/config"
	"github.com/resiplicity/backend/internal/api"
	"github.com/resiplicity/backend/internal/middleware"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router *gin.Engine
	srv    *http.Server
	cfg    *config.Config
}

// New builds the HTTP server with all routes registered.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORS())

	if err := api.RegisterRoutes(router, db, redisClient, s3Config, cfg.JWTSecret); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return &Server{
		router: router,
		cfg:    cfg,
		srv: &http.Server{
			Addr:    fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler: router,
		},
	}, nil
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully with a 10 second drain window.
func (s *Server) Run() error {
	go func() {
		log.Printf("[Server] listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Println("[Server] stopped")
	return nil
}
