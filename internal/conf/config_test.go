package conf

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, settings.API.URL)
	assert.Equal(t, DefaultAPITimeout, settings.API.Timeout)
	assert.False(t, settings.API.Mock)
	assert.Equal(t, "focal", settings.Main.Name)
	assert.Equal(t, 15*time.Minute, settings.Metadata.CacheTTL)
}

func TestLoad_EnvOverridesAPIURL(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("FOCAL_API_URL", "https://lims.example.com/api/v1")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://lims.example.com/api/v1", settings.API.URL)
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	s := &Settings{}
	s.API.URL = ""
	s.API.Timeout = DefaultAPITimeout
	require.Error(t, validateSettings(s))

	s.API.URL = DefaultAPIURL
	s.API.Timeout = 0
	require.Error(t, validateSettings(s))

	s.API.Timeout = DefaultAPITimeout
	require.NoError(t, validateSettings(s))
}
