package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "ARTGRIP_"

// Start screens
const (
	ScreenExplore    = "explore"
	ScreenCategories = "categories"
	ScreenFavorites  = "favorites"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	API        APISettings     `toml:"api"`
	Storage    StorageSettings `toml:"storage"`
	Log        LogSettings     `toml:"log"`
	UISettings UISettings      `toml:"ui"`
}

// APISettings configures the catalog client
type APISettings struct {
	BaseURL           string  `toml:"base_url" env:"API_BASE"`
	ImageBaseURL      string  `toml:"image_base_url" env:"IMAGE_BASE"`
	TimeoutSeconds    int     `toml:"timeout_seconds" env:"HTTP_TIMEOUT"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"RATE_LIMIT"`
	Burst             int     `toml:"burst"`
}

// Timeout returns the HTTP timeout as a duration
func (a APISettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// StorageSettings locates on-disk state
type StorageSettings struct {
	DataDir string `toml:"data_dir" env:"DATA_DIR"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	StartScreen   string `toml:"start_screen" env:"START_SCREEN"`
	ShowImageURLs bool   `toml:"show_image_urls"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service for path. An empty path selects
// the user config directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = filepath.Join(defaultDir(), "config.toml")
	}
	return &configService{filePath: path}
}

func defaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "artgrip")
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the config file, falling back to defaults when it does not
// exist, then applies environment overrides
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := ApplyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("config file not found: %s", path)
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// ApplyEnv overlays ARTGRIP_* environment variables onto cfg
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.Wrap(err, "failed to read environment")
	}
	cfg.normalize()
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:           "https://api.artic.edu/api/v1",
			ImageBaseURL:      "https://www.artic.edu/iiif/2",
			TimeoutSeconds:    15,
			RequestsPerSecond: 5,
			Burst:             4,
		},
		Storage: StorageSettings{
			DataDir: defaultDir(),
		},
		Log: LogSettings{
			Level: "info",
		},
		UISettings: UISettings{
			StartScreen:   ScreenExplore,
			ShowImageURLs: true,
		},
	}
}

// normalize replaces unusable values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.ImageBaseURL == "" {
		c.API.ImageBaseURL = def.API.ImageBaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if c.API.RequestsPerSecond < 0 {
		c.API.RequestsPerSecond = 0
	}
	if c.API.Burst < 1 {
		c.API.Burst = 1
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = def.Storage.DataDir
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	switch c.UISettings.StartScreen {
	case ScreenExplore, ScreenCategories, ScreenFavorites:
	default:
		c.UISettings.StartScreen = ScreenExplore
	}
}
