package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/cribbage/rules"
)

const (
	ConfigDebug        = "debug"
	ConfigWinningScore = "winning-score"
	ConfigPeggingLimit = "pegging-limit"
	ConfigEvalGames    = "eval-games"
	ConfigEvalThreads  = "eval-threads"
	ConfigEvalDuration = "eval-duration"
	ConfigEvalSeedFile = "eval-seed-file"
	ConfigEvalLogFile  = "eval-log-file"
	ConfigEvalSeed     = "eval-seed"
	ConfigPolicy0      = "policy0"
	ConfigPolicy1      = "policy1"
)

// Config holds every setting. Settings come from, in order of precedence,
// command line flags, CRIBBAGE_* environment variables, the config file and
// the defaults below.
type Config struct {
	*viper.Viper
	configFile string
	args       []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigWinningScore, 121)
	v.SetDefault(ConfigPeggingLimit, 31)
	v.SetDefault(ConfigEvalGames, 2)
	v.SetDefault(ConfigEvalThreads, 1)
	v.SetDefault(ConfigEvalDuration, time.Duration(0))
	v.SetDefault(ConfigEvalSeedFile, "")
	v.SetDefault(ConfigEvalLogFile, "")
	v.SetDefault(ConfigEvalSeed, "")
	v.SetDefault(ConfigPolicy0, "greedy")
	v.SetDefault(ConfigPolicy1, "random")
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("cribbage", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.Int(ConfigWinningScore, 121, "score needed to win a match")
	fs.Int(ConfigPeggingLimit, 31, "running total limit while pegging")
	fs.Int(ConfigEvalGames, 2, "number of matches to play when evaluating")
	fs.Int(ConfigEvalThreads, 1, "number of evaluation workers")
	fs.Duration(ConfigEvalDuration, 0, "evaluate for this long instead of a fixed number of matches")
	fs.String(ConfigEvalSeedFile, "", "file with one base64 seed per line for evaluation matches")
	fs.String(ConfigEvalLogFile, "", "CSV file to log each evaluated match to")
	fs.String(ConfigEvalSeed, "", "base64 master seed to derive match seeds from")
	fs.String(ConfigPolicy0, "greedy", "policy under evaluation")
	fs.String(ConfigPolicy1, "random", "baseline policy")
	fs.String("config", "", "path to a YAML config file")
	// flags end at the first shell command word
	fs.SetInterspersed(false)
	return fs
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cribbage", "config.yaml")
}

// Load reads the config file, the environment and the given command line
// arguments. Arguments that are not flags are left for the caller.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("cribbage")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.configFile, _ = fs.GetString("config")
	if c.configFile == "" {
		c.configFile = defaultConfigFile()
	}
	if c.configFile == "" {
		return nil
	}
	c.SetConfigFile(c.configFile)
	c.SetConfigType("yaml")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// Args returns the command line arguments left after the flags.
func (c *Config) Args() []string {
	return c.args
}

// DefaultConfig returns a config with default values only.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// SanitizedSettings returns the settings in a form fit for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	delete(settings, "config")
	return settings
}

// Write saves the current settings to the config file.
func (c *Config) Write() error {
	path := c.configFile
	if path == "" {
		path = defaultConfigFile()
	}
	if path == "" {
		return errors.New("no config file location")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return c.WriteConfigAs(path)
}

// RuleSet builds the rules the settings describe.
func (c *Config) RuleSet() (*rules.RuleSet, error) {
	r, err := rules.New(
		rules.WithWinningScore(c.GetInt(ConfigWinningScore)),
		rules.WithPeggingLimit(c.GetInt(ConfigPeggingLimit)))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return r, nil
}
