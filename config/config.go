package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultOriginalsSubDir   = "originals"
	DefaultDerivativesSubDir = "derivatives"
)

const defaultMaintenanceLockFile = "maintenance.lock"

type Config struct {
	// database path
	DatabasePath string

	// media storage configuration
	MediaStoragePath string // primary root for stored assets
	OriginalsPath    string // full-calculated path for content-addressed originals
	DerivativesPath  string // full-calculated path for generated derivatives

	// maintenance job lock file path
	MaintenanceLockPath string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "photocms.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	originalsSubDir := getEnvOrDefault("ORIGINALS_SUBDIR", DefaultOriginalsSubDir)
	absOriginalsPath := filepath.Join(absMediaStorage, originalsSubDir)

	derivativesSubDir := getEnvOrDefault("DERIVATIVES_SUBDIR", DefaultDerivativesSubDir)
	absDerivativesPath := filepath.Join(absMediaStorage, derivativesSubDir)

	lockPath := getEnvOrDefault("MAINTENANCE_LOCK_PATH", filepath.Join(absMediaStorage, defaultMaintenanceLockFile))

	cfg := Config{
		DatabasePath:        dbPath,
		MediaStoragePath:    absMediaStorage,
		OriginalsPath:       absOriginalsPath,
		DerivativesPath:     absDerivativesPath,
		MaintenanceLockPath: lockPath,
	}

	return cfg, nil
}
