package config

import (
	"errors"
	"fmt"
)

// ValidateConfig checks that every required configuration value is present.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	required := map[string]string{
		"DB_USER":        cfg.DBUser,
		"DB_PASSWORD":    cfg.DBPassword,
		"DB_NAME":        cfg.DBName,
		"JWT_SECRET":     cfg.JWTSecret,
		"OPENAI_API_KEY": cfg.OpenAIAPIKey,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if len(cfg.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	return nil
}
