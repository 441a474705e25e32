// Package config loads CLI configuration from flags, files and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used for existence checks, swappable in tests.
var AppFs = afero.NewOsFs()

// DefaultDatabase is the fallback database path.
const DefaultDatabase = "simydb.db"

// Config holds the CLI configuration.
type Config struct {
	// Database is the SQLite database path.
	Database string

	// Debug enables statement-level logging.
	Debug bool
}

// Load resolves configuration from, in rising priority: defaults, a
// .simydb.yaml config file (current dir, home, ~/.config/simydb), SIMYDB_*
// environment variables, and DATABASE_URL from a .env file. Command-line
// flags override the result at the call site.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".simydb")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "simydb"))

	viper.SetEnvPrefix("SIMYDB")
	viper.AutomaticEnv()

	viper.SetDefault("database", DefaultDatabase)
	viper.SetDefault("debug", false)

	// Missing config file is fine.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		Database: viper.GetString("database"),
		Debug:    viper.GetBool("debug"),
	}

	// DATABASE_URL from the environment (typically a .env file) beats the
	// default but not an explicit SIMYDB_DATABASE or config-file setting.
	if cfg.Database == DefaultDatabase {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			cfg.Database = url
		}
	}

	return cfg, nil
}
