// conf/defaults.go default values for settings
package conf

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIURL is used when no config file or environment override is set.
const DefaultAPIURL = "http://localhost:8000/api/v1"

// DefaultAPITimeout bounds every request to the backend. There is no retry,
// a timed-out call fails the caller exactly once.
const DefaultAPITimeout = 10 * time.Second

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "focal")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/focal.log")
	viper.SetDefault("main.log.maxsizemb", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxagedays", 28)

	viper.SetDefault("api.url", DefaultAPIURL)
	viper.SetDefault("api.timeout", DefaultAPITimeout)
	viper.SetDefault("api.mock", false)

	viper.SetDefault("mock.listen", "127.0.0.1:8000")
	viper.SetDefault("mock.seed", true)

	viper.SetDefault("metadata.cachettl", 15*time.Minute)
}

// configPaths returns the directories searched for a config file, in order.
func configPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "focal"))
	}
	return paths
}

func asConfigFileNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	return errors.As(err, target)
}
