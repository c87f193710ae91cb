package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// Feed is the JSON or YAML file the backend bridge reads. Empty selects
	// the built-in demo catalogue.
	Feed string `mapstructure:"feed"`
	// RefreshTTL bounds how long one backend snapshot is reused.
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
	// WatchDebounce coalesces bursts of feed file writes.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// LogFile receives debug output; empty disables logging.
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`

	UI      UIConfig      `mapstructure:"ui"`
	Virtual VirtualConfig `mapstructure:"virtual"`
	Click   ClickConfig   `mapstructure:"click"`
}

// UIConfig maps the terminal grid to render pixels.
type UIConfig struct {
	Zoom         float64 `mapstructure:"zoom"`
	InputScale   float64 `mapstructure:"input_scale"`
	CellWidthPx  float64 `mapstructure:"cell_width_px"`
	CellHeightPx float64 `mapstructure:"cell_height_px"`
	// WheelNotchPx is the pixel delta the terminal host reports for one
	// wheel notch. Terminals only report notches, so the host emulates a
	// host with small notch deltas.
	WheelNotchPx float64 `mapstructure:"wheel_notch_px"`
}

// VirtualConfig tunes list virtualization.
type VirtualConfig struct {
	MinRows       int           `mapstructure:"min_rows"`
	Overscan      int           `mapstructure:"overscan"`
	MinSpacing    time.Duration `mapstructure:"min_spacing"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

// ClickConfig tunes click correction.
type ClickConfig struct {
	SuppressWindow   time.Duration `mapstructure:"suppress_window"`
	SuppressRadiusPx float64       `mapstructure:"suppress_radius_px"`
	ScaleTolerance   float64       `mapstructure:"scale_tolerance"`
}

// Load reads configuration from ~/.config/modpanel/config.yaml (or
// TOML/JSON), or from path when it is non-empty. Environment variables
// prefixed MODPANEL_ override the file, e.g. MODPANEL_UI_ZOOM.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDirectory())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MODPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// No config file is fine; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the engines cannot work with. Zero scale factors
// are allowed and read as 1.
func (c *Config) Validate() error {
	switch {
	case c.UI.Zoom < 0:
		return fmt.Errorf("ui.zoom must not be negative, got %v", c.UI.Zoom)
	case c.UI.InputScale < 0:
		return fmt.Errorf("ui.input_scale must not be negative, got %v", c.UI.InputScale)
	case c.UI.CellWidthPx <= 0 || c.UI.CellHeightPx <= 0:
		return fmt.Errorf("ui cell size must be positive, got %vx%v", c.UI.CellWidthPx, c.UI.CellHeightPx)
	case c.UI.WheelNotchPx <= 0:
		return fmt.Errorf("ui.wheel_notch_px must be positive, got %v", c.UI.WheelNotchPx)
	case c.Virtual.MinRows < 0:
		return fmt.Errorf("virtual.min_rows must not be negative, got %d", c.Virtual.MinRows)
	case c.Virtual.FrameInterval <= 0:
		return fmt.Errorf("virtual.frame_interval must be positive, got %v", c.Virtual.FrameInterval)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("feed", "")
	v.SetDefault("refresh_ttl", time.Second)
	v.SetDefault("watch_debounce", 300*time.Millisecond)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")

	v.SetDefault("ui.zoom", 1.0)
	v.SetDefault("ui.input_scale", 1.0)
	v.SetDefault("ui.cell_width_px", 8.0)
	v.SetDefault("ui.cell_height_px", 16.0)
	v.SetDefault("ui.wheel_notch_px", 4.0)

	v.SetDefault("virtual.min_rows", 24)
	v.SetDefault("virtual.overscan", 6)
	v.SetDefault("virtual.min_spacing", 32*time.Millisecond)
	v.SetDefault("virtual.frame_interval", 16*time.Millisecond)

	v.SetDefault("click.suppress_window", 250*time.Millisecond)
	v.SetDefault("click.suppress_radius_px", 1.0)
	v.SetDefault("click.scale_tolerance", 0.01)
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "modpanel")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "modpanel")
}
