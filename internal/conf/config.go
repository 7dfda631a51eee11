// Package conf loads and holds the runtime settings for the focal client.
package conf

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// LogConfig holds settings for a rotating log output.
type LogConfig struct {
	Enabled    bool   // true to enable this log
	Path       string // path to the log file
	MaxSizeMB  int    // rotate after this many megabytes
	MaxBackups int    // rotated files to keep
	MaxAgeDays int    // days to keep rotated files
}

// APISettings configures the connection to the LIMS backend.
type APISettings struct {
	URL     string        // base URL of the REST backend
	Timeout time.Duration // fixed per-request timeout
	Mock    bool          // serve from the in-process mock backend instead
}

// MockSettings configures the offline development backend.
type MockSettings struct {
	Listen string // listen address for the mock server
	Seed   bool   // seed fixture data on startup
}

// MetadataSettings configures reference-data caching.
type MetadataSettings struct {
	CacheTTL time.Duration // how long metadata lookups stay cached
}

// Settings is the top-level configuration structure.
type Settings struct {
	Debug bool // enable debug logging

	Main struct {
		Name string    // client instance name, used in logs
		Log  LogConfig // service log file settings
	}

	API      APISettings
	Mock     MockSettings
	Metadata MetadataSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration from defaults, an optional config file, and
// the environment, and returns the resulting settings.
func Load() (*Settings, error) {
	setDefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	for _, path := range configPaths() {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("focal")
	viper.AutomaticEnv()
	// FOCAL_API_URL selects the backend, falling back to the local default.
	if err := viper.BindEnv("api.url", "FOCAL_API_URL"); err != nil {
		return nil, fmt.Errorf("error binding api.url: %w", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !asConfigFileNotFound(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults and environment apply.
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	settingsMutex.Lock()
	settingsInstance = settings
	settingsMutex.Unlock()

	return settings, nil
}

// Setting returns the shared settings instance, loading it on first use.
func Setting() *Settings {
	once.Do(func() {
		settingsMutex.RLock()
		loaded := settingsInstance != nil
		settingsMutex.RUnlock()
		if !loaded {
			if _, err := Load(); err != nil {
				log.Fatalf("error loading settings: %v", err)
			}
		}
	})

	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

func validateSettings(s *Settings) error {
	if s.API.URL == "" {
		return fmt.Errorf("api.url must not be empty")
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", s.API.Timeout)
	}
	return nil
}
