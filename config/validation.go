package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks the loaded configuration and reports every problem at
// once. Outside production, a missing JWT secret falls back to a development
// default so the service can start without secrets plumbing.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		if IsProduction() {
			errors = append(errors, "JWT_SECRET (or jwt_secret secret) is required in production")
		} else {
			cfg.JWTSecret = "dev-secret-do-not-use-in-production"
		}
	}

	if IsProduction() {
		if cfg.DBPassword == "" || cfg.DBPassword == "postgres" {
			errors = append(errors, "DB_PASSWORD (or db_password secret) is required in production")
		}
	}

	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
