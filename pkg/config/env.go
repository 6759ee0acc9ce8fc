// Env loader
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the environment-driven settings. Everything has a default so
// the binary runs without any environment at all.
type Config struct {
	DBPath       string
	EnableWAL    bool
	SyncPragma   string
	BackupRoot   string
	SyncEmail    string
	SyncDelayMs  int
	Verbose      bool
}

// LoadConfig reads an optional .env file and the SELAH_* environment
// variables. A missing .env file is not an error.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:      getEnv("SELAH_DB", ""),
		EnableWAL:   getBoolEnv("SELAH_WAL", true),
		SyncPragma:  getEnv("SELAH_SYNC_PRAGMA", "NORMAL"),
		BackupRoot:  getEnv("SELAH_BACKUP_ROOT", ""),
		SyncEmail:   getEnv("SELAH_SYNC_EMAIL", ""),
		SyncDelayMs: getIntEnv("SELAH_SYNC_DELAY_MS", 1500),
		Verbose:     getBoolEnv("SELAH_VERBOSE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getIntEnv(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
