package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Garsondee/Command-Tent/internal/game"
)

// Load reads configuration from a JSON file and sets default values.
// configDir is the directory containing the config file; a missing file is
// not an error, the defaults simply apply.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("map.width", 100)
	viper.SetDefault("map.height", 100)
	viper.SetDefault("map.seed", 1)

	viper.SetDefault("radio.latencyTicks", 3)
	viper.SetDefault("radio.suppressWindowTicks", 5)

	viper.SetDefault("weapon.near", 0.35)
	viper.SetDefault("weapon.medium", 0.2)
	viper.SetDefault("weapon.far", 0.05)

	viper.SetConfigName("command_tent.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GameConfig assembles the simulation configuration from the loaded values.
func GameConfig() game.GameConfig {
	return game.GameConfig{
		Width:               viper.GetInt("map.width"),
		Height:              viper.GetInt("map.height"),
		Seed:                viper.GetInt64("map.seed"),
		RadioLatencyTicks:   viper.GetInt("radio.latencyTicks"),
		SuppressWindowTicks: viper.GetInt("radio.suppressWindowTicks"),
		Weapon: game.WeaponProfile{
			Near:   viper.GetFloat64("weapon.near"),
			Medium: viper.GetFloat64("weapon.medium"),
			Far:    viper.GetFloat64("weapon.far"),
		},
	}
}

// LogLevel parses the configured zerolog level, falling back to info.
func LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(viper.GetString("logLevel"))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}
