// Package config holds run settings unmarshalled from Viper. Sources, highest
// precedence first: command line flags, PICHIA_* environment variables (a
// .env file is loaded into the environment), the YAML config file, defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/liserjrqlxue/pichia/pkg/blast"
	"github.com/liserjrqlxue/pichia/pkg/report"
)

// EnvPrefix of environment overrides, e.g. PICHIA_BLAST_EMAIL.
const EnvPrefix = "PICHIA"

var ErrInvalid = errors.New("invalid config")

// BlastConfig is for the optional homology search
type BlastConfig struct {
	// search mature proteins after the batch
	Enabled bool `mapstructure:"enabled"`

	URL      string `mapstructure:"url"`
	Program  string `mapstructure:"program"`
	Database string `mapstructure:"database"`

	// hits kept per record
	MaxHits int `mapstructure:"max-hits"`

	PollInterval time.Duration `mapstructure:"poll-interval"`
	Timeout      time.Duration `mapstructure:"timeout"`

	// NCBI asks for a contact address and accepts an API key
	Email  string `mapstructure:"email"`
	APIKey string `mapstructure:"api-key"`

	// raw XML cache, empty to disable
	CacheDir string `mapstructure:"cache-dir"`
}

// Config is the root-level settings struct
type Config struct {
	Workers     int    `mapstructure:"workers"`
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	BothStrands bool   `mapstructure:"both-strands"`
	// titration plots, empty to skip
	PlotDir    string `mapstructure:"plot-dir"`
	PlotFormat string `mapstructure:"plot-format"`
	Verbose    bool   `mapstructure:"verbose"`

	Blast BlastConfig `mapstructure:"blast"`
}

// SetDefaults registers every key so environment overrides apply to all of
// them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("format", report.TSV)
	v.SetDefault("output", "-")
	v.SetDefault("both-strands", false)
	v.SetDefault("plot-dir", "")
	v.SetDefault("plot-format", "png")
	v.SetDefault("verbose", false)

	v.SetDefault("blast.enabled", false)
	v.SetDefault("blast.url", blast.DefaultURL)
	v.SetDefault("blast.program", blast.DefaultProgram)
	v.SetDefault("blast.database", blast.DefaultDatabase)
	v.SetDefault("blast.max-hits", 5)
	v.SetDefault("blast.poll-interval", time.Minute)
	v.SetDefault("blast.timeout", 15*time.Minute)
	v.SetDefault("blast.email", "")
	v.SetDefault("blast.api-key", "")
	v.SetDefault("blast.cache-dir", "")
}

// NewViper returns a Viper with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadEnvFile loads path into the environment without overriding variables
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ReadFile merges a YAML (or any Viper-supported) config file into v.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	return v.ReadInConfig()
}

// Load unmarshals v and validates the result.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	}
	if !slices.Contains(report.Formats, c.Format) {
		return fmt.Errorf("%w: format %q not one of %s", ErrInvalid, c.Format, strings.Join(report.Formats, ", "))
	}
	if c.PlotDir != "" && !slices.Contains([]string{"png", "svg", "pdf"}, c.PlotFormat) {
		return fmt.Errorf("%w: plot format %q", ErrInvalid, c.PlotFormat)
	}
	if !c.Blast.Enabled {
		return nil
	}
	switch {
	case c.Blast.URL == "":
		return fmt.Errorf("%w: blast.url is empty", ErrInvalid)
	case c.Blast.MaxHits < 0:
		return fmt.Errorf("%w: blast.max-hits is negative", ErrInvalid)
	case c.Blast.PollInterval <= 0:
		return fmt.Errorf("%w: blast.poll-interval must be positive", ErrInvalid)
	}
	return nil
}

// Client builds the BLAST client described by b.
func (b BlastConfig) Client() *blast.Client {
	c := blast.NewClient()
	c.URL = b.URL
	c.Program = b.Program
	c.Database = b.Database
	c.HitlistSize = b.MaxHits
	c.PollInterval = b.PollInterval
	c.Timeout = b.Timeout
	c.Email = b.Email
	c.APIKey = b.APIKey
	c.CacheDir = b.CacheDir
	return c
}
