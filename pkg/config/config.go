// pkg/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/guap-codes/ordmap/pkg/logger"
)

// Backend selects which ordstore.Storage implementation the CLI wires up
// for the persistent tree variant.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
)

// Config holds the application configuration.
type Config struct {
	TreeDegree     int          // B-tree degree
	LogLevel       logger.Level // Logging level (debug, info, warn, error)
	StoragePath    string       // Path to a storage file, from STORAGE_PATH; no command reads it
	StorageBackend Backend      // Storage backend for the persistent variant
	StorageDir     string       // Root directory for the file-backed node store
}

// Load loads the configuration from environment variables.
func Load() (*Config, error) {
	// Default values
	cfg := &Config{
		TreeDegree:     3,
		LogLevel:       logger.Info,
		StoragePath:    "data/tree.json",
		StorageBackend: BackendMemory,
		StorageDir:     "data/nodes",
	}

	// Load TreeDegree from environment
	if degreeStr := os.Getenv("TREE_DEGREE"); degreeStr != "" {
		degree, err := strconv.Atoi(degreeStr)
		if err != nil || degree < 2 {
			return nil, fmt.Errorf("invalid TREE_DEGREE: %s (must be >= 2)", degreeStr)
		}
		cfg.TreeDegree = degree
	}

	// Load LogLevel from environment
	if logLevelStr := os.Getenv("LOG_LEVEL"); logLevelStr != "" {
		logLevel, err := logger.ParseLevel(logLevelStr)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %s", logLevelStr)
		}
		cfg.LogLevel = logLevel
	}

	// Load StoragePath from environment
	if storagePath := os.Getenv("STORAGE_PATH"); storagePath != "" {
		cfg.StoragePath = storagePath
	}

	// Load StorageBackend from environment
	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		switch Backend(backend) {
		case BackendMemory, BackendFile:
			cfg.StorageBackend = Backend(backend)
		default:
			return nil, fmt.Errorf("invalid STORAGE_BACKEND: %s (must be memory or file)", backend)
		}
	}

	// Load StorageDir from environment
	if dir := os.Getenv("STORAGE_DIR"); dir != "" {
		cfg.StorageDir = dir
	}

	return cfg, nil
}
