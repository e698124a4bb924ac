package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ytget/ai-generator/internal/generate"
	"github.com/ytget/ai-generator/internal/platform"
)

// Environment variables that override the config file
const (
	EnvConfigPath     = "AIGEN_CONFIG"
	EnvImageEndpoint  = "AIGEN_IMAGE_ENDPOINT"
	EnvVideoEndpoint  = "AIGEN_VIDEO_ENDPOINT"
	EnvRequestTimeout = "AIGEN_REQUEST_TIMEOUT"
	EnvDownloadDir    = "AIGEN_DOWNLOAD_DIR"
	EnvLanguage       = "AIGEN_LANGUAGE"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvLogFile        = "LOG_FILE"
)

// Request timeout bounds
const (
	DefaultRequestTimeout = 2 * time.Minute
	MinRequestTimeout     = 10 * time.Second
	MaxRequestTimeout     = 10 * time.Minute
)

const (
	appDirName     = "ai-generator"
	configFileName = "config.yaml"
)

// Duration is a time.Duration that reads and writes as "90s", "2m" in YAML
type Duration time.Duration

// UnmarshalYAML parses a Go duration string or a number of seconds
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in Go notation
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the on-disk configuration shared by both frontends
type Config struct {
	Endpoints       EndpointsConfig `yaml:"endpoints"`
	SafetyTolerance int             `yaml:"safety_tolerance"`
	RequestTimeout  Duration        `yaml:"request_timeout"`
	DownloadDir     string          `yaml:"download_dir"`
	Language        string          `yaml:"language"`
	Log             LogConfig       `yaml:"log"`
}

// EndpointsConfig holds the per-kind generation URLs
type EndpointsConfig struct {
	Image string `yaml:"image"`
	Video string `yaml:"video"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	downloadDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		downloadDir = filepath.Join(os.TempDir(), "ai-generator")
	}
	return &Config{
		Endpoints: EndpointsConfig{
			Image: generate.DefaultImageEndpoint,
			Video: generate.DefaultVideoEndpoint,
		},
		SafetyTolerance: generate.DefaultSafetyTolerance,
		RequestTimeout:  Duration(DefaultRequestTimeout),
		DownloadDir:     downloadDir,
		Language:        DefaultLanguage,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location inside the user config dir
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// ResolvePath returns path, or $AIGEN_CONFIG, or DefaultPath when both are
// empty. The result is empty only when no user config dir is known.
func ResolvePath(path string) string {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	return platform.ExpandHome(path)
}

// Load reads path (or the default location when empty), applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	path = ResolvePath(path)
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// No config exists, keep defaults (don't auto-create)
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// WriteDefault saves the default configuration to path (resolved like Load)
// and returns the written location. An existing file is left untouched.
func WriteDefault(path string) (string, error) {
	path = ResolvePath(path)
	if path == "" {
		return "", errors.New("no config path: set --config or " + EnvConfigPath)
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config %s: %w", path, os.ErrExist)
	} else if !errors.Is(err, os.ErrNotExist) {
		return path, err
	}
	if err := Save(path, DefaultConfig()); err != nil {
		return path, fmt.Errorf("write config %s: %w", path, err)
	}
	return path, nil
}

// GenerateEndpoints converts the endpoint section for the generation client
func (c *Config) GenerateEndpoints() generate.Endpoints {
	return generate.Endpoints{Image: c.Endpoints.Image, Video: c.Endpoints.Video}
}

// Timeout returns the request timeout as a time.Duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvImageEndpoint); v != "" {
		c.Endpoints.Image = v
	}
	if v := os.Getenv(EnvVideoEndpoint); v != "" {
		c.Endpoints.Video = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = Duration(d)
	}
	if v := os.Getenv(EnvDownloadDir); v != "" {
		c.DownloadDir = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	return nil
}

func (c *Config) normalize() {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Endpoints.Image) == "" {
		c.Endpoints.Image = defaults.Endpoints.Image
	}
	if strings.TrimSpace(c.Endpoints.Video) == "" {
		c.Endpoints.Video = defaults.Endpoints.Video
	}
	if c.SafetyTolerance <= 0 {
		c.SafetyTolerance = defaults.SafetyTolerance
	}
	c.RequestTimeout = Duration(ClampTimeout(time.Duration(c.RequestTimeout)))
	if c.DownloadDir == "" {
		c.DownloadDir = defaults.DownloadDir
	}
	c.DownloadDir = platform.ExpandHome(c.DownloadDir)
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
}

// ClampTimeout keeps d within [MinRequestTimeout, MaxRequestTimeout];
// zero selects the default
func ClampTimeout(d time.Duration) time.Duration {
	if d == 0 {
		return DefaultRequestTimeout
	}
	if d < MinRequestTimeout {
		return MinRequestTimeout
	}
	if d > MaxRequestTimeout {
		return MaxRequestTimeout
	}
	return d
}

// parseDuration accepts "90s"/"2m" or a bare number of seconds
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
