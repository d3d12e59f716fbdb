package framekit

import (
	"fmt"
	"os"

	"github.com/gobeaver/beaver-kit/config"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the project configuration file discovered by walking
// up from the working directory.
const DefaultConfigName = "framekit.yaml"

// Config holds library defaults, loaded from BEAVER_FRAMEKIT_* environment
// variables and optionally overlaid from a YAML project file.
type Config struct {
	// Pattern parsing
	UDIMIdentifier  string `env:"FRAMEKIT_UDIM_IDENTIFIER,default:<UDIM>" yaml:"udim_identifier"`
	StrictUDIM      bool   `env:"FRAMEKIT_STRICT_UDIM,default:true" yaml:"strict_udim"`
	MatchHashLength bool   `env:"FRAMEKIT_MATCH_HASH_LENGTH,default:false" yaml:"match_hash_length"`

	// Deduplicating store
	StoreDir      string `env:"FRAMEKIT_STORE_DIR" yaml:"store_dir"`
	Checksum      string `env:"FRAMEKIT_CHECKSUM,default:sha256" yaml:"checksum"`
	VersionPrefix string `env:"FRAMEKIT_VERSION_PREFIX,default:v" yaml:"version_prefix"`
	VersionDigits int    `env:"FRAMEKIT_VERSION_DIGITS,default:4" yaml:"version_digits"`
	VerifiedCopy  bool   `env:"FRAMEKIT_VERIFIED_COPY,default:false" yaml:"verified_copy"`
	BlockSize     int    `env:"FRAMEKIT_BLOCK_SIZE,default:1048576" yaml:"block_size"`

	// Command-line behaviour
	LogLevel string `env:"FRAMEKIT_LOG_LEVEL,default:info" yaml:"log_level"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile overlays the YAML file at path onto cfg. Keys present in
// the file win over whatever cfg already held; absent keys leave cfg
// untouched.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &PathError{Op: "loadconfig", Path: path, Err: underlying(err)}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &PathError{Op: "loadconfig", Path: path, Err: err}
	}
	return cfg.Validate()
}

// Validate reports the first nonsensical setting.
func (c *Config) Validate() error {
	if c.VersionDigits < 1 {
		return fmt.Errorf("%w: version digits must be at least 1", ErrInvalidArgument)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be positive", ErrInvalidArgument)
	}
	if _, err := NewHasher(ChecksumAlgorithm(c.Checksum)); err != nil {
		return err
	}
	return nil
}

// PatternOptions expresses the pattern-related settings as options for
// [Resolve], [ExpandSequence] and [PatternToRegexp].
func (c *Config) PatternOptions() []Option {
	return []Option{
		WithUDIMIdentifier(c.UDIMIdentifier),
		WithStrictUDIM(c.StrictUDIM),
		WithMatchHashLength(c.MatchHashLength),
	}
}
