package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv(requiredVars []string) (map[string]string, error) {
	_ = godotenv.Load()

	envVars := make(map[string]string)

	for _, key := range requiredVars {
		value := os.Getenv(key)
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", key)
		}
		envVars[key] = value
	}

	return envVars, nil
}

// OptionalEnv returns the value of key, or fallback when the variable is
// unset or empty.
func OptionalEnv(key, fallback string) string {
	_ = godotenv.Load()

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
