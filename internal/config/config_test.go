package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("MARKETFRAME_PORT")
	os.Unsetenv("MARKETFRAME_EXCHANGES")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8090, cfg.Port)
	require.Contains(t, cfg.Exchanges, "NYSE")
}

func TestLoadOverridesFromEnv(t *testing.T) {
	os.Setenv("MARKETFRAME_PORT", "9099")
	os.Setenv("MARKETFRAME_EXCHANGES", "NYSE,CBOE")
	defer os.Unsetenv("MARKETFRAME_PORT")
	defer os.Unsetenv("MARKETFRAME_EXCHANGES")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9099, cfg.Port)
	require.Equal(t, []string{"NYSE", "CBOE"}, cfg.Exchanges)
}
