package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/biorefs/internal/config"
	"github.com/agentstation/biorefs/pkg/constants"
	"github.com/agentstation/biorefs/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Load configuration
	Manifest   string
	FastaWidth int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (BIOREFS_*, LOG_*)
// 3. .env files
// 4. Config file (~/.biorefs.yaml or ./.biorefs.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// loadConfig loads configuration, reading configFile when it is set.
func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.GetViper()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetDefault("output", "")
	v.SetDefault("fasta_width", constants.DefaultFastaWidth)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless it was asked for explicitly
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configFile != "" {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	}

	cfg := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		Manifest:   v.GetString("manifest"),
		FastaWidth: config.GetInt("fasta_width", constants.DefaultFastaWidth),

		// Logging configuration
		LogLevel:  config.GetString("LOG_LEVEL"),
		LogFormat: config.GetStringDefault("LOG_FORMAT", "auto"),
		LogOutput: config.GetStringDefault("LOG_OUTPUT", "stderr"),
	}
	if cfg.FastaWidth <= 0 {
		cfg.FastaWidth = constants.DefaultFastaWidth
	}

	return cfg, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win; godotenv never
// overrides a variable that is already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
