package utils

import (
	"log"
	"os"
	"strconv"
	"time"
)

func GetEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("env %s=%q is not an integer, using %d: %v", key, value, fallback, err)
		return fallback
	}
	return parsed
}

func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("env %s=%q is not a boolean, using %t: %v", key, value, fallback, err)
		return fallback
	}
	return parsed
}

func GetEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("env %s=%q is not a number, using %g: %v", key, value, fallback, err)
		return fallback
	}
	return parsed
}

// GetEnvDuration accepts either a Go duration string ("45s", "5m") or a bare
// number, which is read as seconds.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("env %s=%q is not a duration, using %s: %v", key, value, fallback, err)
		return fallback
	}
	return parsed
}
