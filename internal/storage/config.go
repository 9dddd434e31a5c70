// Manages the store configuration stored in config.json.

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const configFileName = "config.json"

// Config stores the store and server configuration.
// Loaded from config.json, created with defaults if missing.
type Config struct {
	// FilesDirectory is the directory holding the record and counter files.
	// Relative paths are resolved against the data directory.
	FilesDirectory string `json:"files_directory"`

	// FileName is the room record file name.
	FileName string `json:"file_name"`

	// RoomIDFileName is the room id counter file name.
	RoomIDFileName string `json:"room_id_file_name"`

	// ItemIDFileName is the item id counter file name.
	ItemIDFileName string `json:"item_id_file_name"`

	// MaxRequestBodyBytes limits the size of any single HTTP request body.
	MaxRequestBodyBytes int64 `json:"max_request_body_bytes"`

	// RateLimits defines rate limiting configuration.
	RateLimits RateLimits `json:"rate_limits"`
}

// RateLimits defines rate limiting configuration (requests per minute).
type RateLimits struct {
	// WriteRatePerMin limits write operations (POST/PUT/DELETE).
	// 0 means unlimited.
	WriteRatePerMin int `json:"write_rate_per_min"`

	// ReadRatePerMin limits read operations.
	// 0 means unlimited.
	ReadRatePerMin int `json:"read_rate_per_min"`
}

// Validate checks that rate limit values are non-negative.
func (r *RateLimits) Validate() error {
	if r.WriteRatePerMin < 0 {
		return errors.New("write_rate_per_min must be non-negative")
	}
	if r.ReadRatePerMin < 0 {
		return errors.New("read_rate_per_min must be non-negative")
	}
	return nil
}

// DefaultRateLimits returns the default rate limits.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		WriteRatePerMin: 120,  // 120 req/min for writes
		ReadRatePerMin:  6000, // 6k req/min for reads
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FilesDirectory:      "db",
		FileName:            "rooms.txt",
		RoomIDFileName:      "room_id.txt",
		ItemIDFileName:      "item_id.txt",
		MaxRequestBodyBytes: 1024 * 1024, // 1 MiB
		RateLimits:          DefaultRateLimits(),
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FilesDirectory) == "" {
		return errors.New("files_directory is required")
	}
	names := map[string]string{
		"file_name":         c.FileName,
		"room_id_file_name": c.RoomIDFileName,
		"item_id_file_name": c.ItemIDFileName,
	}
	seen := map[string]string{}
	for field, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s is required", field)
		}
		if filepath.Base(name) != name {
			return fmt.Errorf("%s must be a file name, got %q", field, name)
		}
		if other, ok := seen[strings.ToLower(name)]; ok {
			return fmt.Errorf("%s and %s must differ", other, field)
		}
		seen[strings.ToLower(name)] = field
	}
	if c.MaxRequestBodyBytes < 0 {
		return errors.New("max_request_body_bytes must be non-negative")
	}
	if err := c.RateLimits.Validate(); err != nil {
		return fmt.Errorf("rate_limits: %w", err)
	}
	return nil
}

// FilesDir returns the directory holding the store files.
func (c *Config) FilesDir(dataDir string) string {
	if filepath.IsAbs(c.FilesDirectory) {
		return c.FilesDirectory
	}
	return filepath.Join(dataDir, c.FilesDirectory)
}

// LoadConfig loads configuration from dataDir/config.json.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, configFileName)

	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from dataDir, not user input
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config.json: %w", err)
		}
		// File doesn't exist, will create with defaults
		if err := cfg.Save(dataDir); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config.json: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config.json: %w", err)
	}
	return &cfg, nil
}

// Save saves configuration to dataDir/config.json.
func (c *Config) Save(dataDir string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(dataDir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, configFileName), data, 0o600); err != nil {
		return fmt.Errorf("failed to write config.json: %w", err)
	}
	return nil
}
