package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LoadSettings initializes the application-level settings, as opposed to the
// per-mission files handled by Load/Save. Values resolve in ascending
// precedence: built-in defaults, an optional rocketops.yaml inside dataDir,
// then ROCKETOPS_* environment variables. A missing settings file is fine;
// a malformed one is not.
func LoadSettings(dataDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("runsDir", filepath.Join(dataDir, "runs"))
	viper.SetDefault("missionsDir", filepath.Join(dataDir, "missions"))
	viper.SetDefault("reportsDir", filepath.Join(dataDir, "reports"))
	viper.SetDefault("sweepWorkers", 4)

	viper.SetConfigName("rocketops")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dataDir)

	viper.SetEnvPrefix("ROCKETOPS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

// GetString returns a string settings value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an integer settings value.
func GetInt(key string) int {
	return viper.GetInt(key)
}
