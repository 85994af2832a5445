package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

// envPrefix prefixes environment overrides: MOSAICFLOW_LAYOUT_THRESHOLD
// overrides layout.threshold.
const envPrefix = "MOSAICFLOW"

// Config holds CLI configuration loaded from mosaicflow.toml and the
// environment.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Store  StoreConfig  `mapstructure:"store"`
	Serve  ServeConfig  `mapstructure:"serve"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// LayoutConfig holds default engine options.
type LayoutConfig struct {
	MinItemWidth float64 `mapstructure:"min_item_width"`
	Threshold    float64 `mapstructure:"threshold"`
	LevelBottom  bool    `mapstructure:"level_bottom"`
}

// CacheConfig selects the layout cache backend. RedisURL takes precedence
// over Dir. Namespace scopes keys so deployments can share one backend.
type CacheConfig struct {
	Dir       string `mapstructure:"dir"`
	RedisURL  string `mapstructure:"redis_url"`
	Namespace string `mapstructure:"namespace"`
}

// StoreConfig selects the snapshot store backend. MongoURI takes precedence
// over Dir.
type StoreConfig struct {
	Dir      string `mapstructure:"dir"`
	MongoURI string `mapstructure:"mongo_uri"`
	MongoDB  string `mapstructure:"mongo_db"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Options returns engine options with the configured layout defaults.
func (c Config) Options() masonry.Options {
	opts := masonry.DefaultOptions()
	opts.MinItemWidth = c.Layout.MinItemWidth
	opts.Threshold = c.Layout.Threshold
	opts.LevelBottom = c.Layout.LevelBottom
	return opts
}

// loadConfig reads path, or mosaicflow.toml from the config directory when
// path is empty, and applies MOSAICFLOW_* environment overrides. A missing
// default config file is not an error.
func loadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("layout.min_item_width", masonry.DefaultMinItemWidth)
	v.SetDefault("layout.threshold", masonry.DefaultThreshold)
	v.SetDefault("layout.level_bottom", true)
	v.SetDefault("cache.dir", defaultCacheDir())
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.namespace", "")
	v.SetDefault("store.dir", defaultDataDir())
	v.SetDefault("store.mongo_uri", "")
	v.SetDefault("store.mongo_db", appName)
	v.SetDefault("serve.addr", ":8080")

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName(appName)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.File = v.ConfigFileUsed()
	if c.File != "" {
		if _, err := os.Stat(c.File); err != nil {
			c.File = ""
		}
	}
	return c, nil
}

// =============================================================================
// Paths
// =============================================================================

// defaultCacheDir follows XDG: $XDG_CACHE_HOME/mosaicflow or ~/.cache/mosaicflow.
func defaultCacheDir() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// defaultDataDir is where the file snapshot store lives.
func defaultDataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "snapshots")
}

// configDir is where mosaicflow.toml is looked up.
func configDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, fallback, appName)
}
