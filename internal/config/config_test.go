package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"map": { "width": 200, "seed": 99 },
		"radio": { "latencyTicks": 7 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "command_tent.cfg.json"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 200, viper.GetInt("map.width"))
	assert.Equal(t, int64(99), viper.GetInt64("map.seed"))
	assert.Equal(t, 7, viper.GetInt("radio.latencyTicks"))
	// Untouched keys keep their defaults.
	assert.Equal(t, 100, viper.GetInt("map.height"))
	assert.Equal(t, 5, viper.GetInt("radio.suppressWindowTicks"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "command_tent.cfg.json"), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, 100, viper.GetInt("map.width"))
	assert.Equal(t, 100, viper.GetInt("map.height"))
	assert.Equal(t, int64(1), viper.GetInt64("map.seed"))
	assert.Equal(t, 3, viper.GetInt("radio.latencyTicks"))
	assert.Equal(t, 5, viper.GetInt("radio.suppressWindowTicks"))
	assert.Equal(t, 0.35, viper.GetFloat64("weapon.near"))
	assert.Equal(t, 0.2, viper.GetFloat64("weapon.medium"))
	assert.Equal(t, 0.05, viper.GetFloat64("weapon.far"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))
	assert.Equal(t, 100, viper.GetInt("map.width"))
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "command_tent.cfg.json"), []byte(`{not json`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGameConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"map": { "width": 50, "height": 60, "seed": 12 },
		"weapon": { "near": 0.5 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "command_tent.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	gc := GameConfig()
	assert.Equal(t, 50, gc.Width)
	assert.Equal(t, 60, gc.Height)
	assert.Equal(t, int64(12), gc.Seed)
	assert.Equal(t, 3, gc.RadioLatencyTicks)
	assert.Equal(t, 0.5, gc.Weapon.Near)
	assert.Equal(t, 0.2, gc.Weapon.Medium)
}

func TestLogLevel(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("logLevel", "warn")
	assert.Equal(t, zerolog.WarnLevel, LogLevel())

	viper.Set("logLevel", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, LogLevel())
}
