// Package config loads the agxb command configuration from the environment.
package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"

	"github.com/arloliu/agx/format"
)

// EnvPrefix is the prefix of every variable read by Load.
const EnvPrefix = "AGXB_"

// Config holds the command configuration. Command line flags override it.
type Config struct {
	Logger         LoggerConfig `envPrefix:"LOG_"`
	S3             S3Config     `envPrefix:"S3_"`
	UseMmap        bool         `env:"USE_MMAP"         envDefault:"false"`
	Compression    string       `env:"COMPRESSION"      envDefault:"auto"`
	ReadBufferSize int          `env:"READ_BUFFER_SIZE" envDefault:"65536"`
}

// LoggerConfig controls the log output.
type LoggerConfig struct {
	Level string `env:"LEVEL" envDefault:"warn"`
	Human bool   `env:"HUMAN" envDefault:"true"`
}

// S3Config configures access to s3:// fixtures.
type S3Config struct {
	Region   string `env:"REGION"`
	Endpoint string `env:"ENDPOINT"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Options{Prefix: EnvPrefix})
}

// LoadFrom reads the configuration from the given variables instead of the process
// environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return load(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if _, err := cfg.CompressionType(); err != nil {
		return nil, err
	}
	if cfg.ReadBufferSize <= 0 {
		return nil, fmt.Errorf("invalid %sREAD_BUFFER_SIZE %d", EnvPrefix, cfg.ReadBufferSize)
	}

	return &cfg, nil
}

// CompressionType resolves Compression. "auto" and "" detect the container and
// resolve to the zero CompressionType.
func (c *Config) CompressionType() (format.CompressionType, error) {
	if c.Compression == "" || c.Compression == "auto" {
		return 0, nil
	}

	typ, ok := format.ParseCompressionType(c.Compression)
	if !ok {
		return 0, fmt.Errorf("invalid %sCOMPRESSION %q", EnvPrefix, c.Compression)
	}

	return typ, nil
}
