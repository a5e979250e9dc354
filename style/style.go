// Package style holds the process-wide figure style: fonts, figure
// dimensions, output DPI, and background transparency. Style is explicit
// configuration applied once, not a side effect of computing statistics;
// orchestrators call Ensure so repeated calls are idempotent and never
// clobber a style the caller installed earlier.
package style

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config describes the shared visual style.
type Config struct {
	// FontSize is the base size in points for titles and legends.
	FontSize float64 `mapstructure:"font_size" yaml:"font_size"`
	// TickFontSize is the size for axis tick labels.
	TickFontSize float64 `mapstructure:"tick_font_size" yaml:"tick_font_size"`
	// LabelFontSize is the size for axis labels.
	LabelFontSize float64 `mapstructure:"label_font_size" yaml:"label_font_size"`
	// FigureWidth and FigureHeight are canvas dimensions in inches.
	FigureWidth  float64 `mapstructure:"figure_width" yaml:"figure_width"`
	FigureHeight float64 `mapstructure:"figure_height" yaml:"figure_height"`
	// DPI is the raster resolution of saved figures.
	DPI int `mapstructure:"dpi" yaml:"dpi"`
	// Transparent renders figures with a transparent background.
	Transparent bool `mapstructure:"transparent" yaml:"transparent"`
}

// Default returns the house style.
func Default() Config {
	return Config{
		FontSize:      12,
		TickFontSize:  10,
		LabelFontSize: 12,
		FigureWidth:   6,
		FigureHeight:  4.5,
		DPI:           300,
		Transparent:   true,
	}
}

var (
	mu      sync.RWMutex
	current = Default()
	applied bool
)

// Apply installs c as the process-wide style.
func Apply(c Config) {
	mu.Lock()
	defer mu.Unlock()
	current = c
	applied = true
}

// Ensure installs the default style unless a style has already been
// applied. Safe to call before every figure.
func Ensure() {
	mu.Lock()
	defer mu.Unlock()
	if !applied {
		current = Default()
		applied = true
	}
}

// Current returns the active style.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Load reads a style from cfgFile, environment (CORRPLOT_ prefix), and
// defaults, in ascending precedence of defaults < file < env. An empty
// cfgFile skips the file layer.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CORRPLOT")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("font_size", d.FontSize)
	v.SetDefault("tick_font_size", d.TickFontSize)
	v.SetDefault("label_font_size", d.LabelFontSize)
	v.SetDefault("figure_width", d.FigureWidth)
	v.SetDefault("figure_height", d.FigureHeight)
	v.SetDefault("dpi", d.DPI)
	v.SetDefault("transparent", d.Transparent)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read style config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal style config: %w", err)
	}
	return c, nil
}

// Save writes the style to path as YAML, creating parent directories as
// needed.
func Save(c Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir style dir: %w", err)
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal style: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write style: %w", err)
	}
	return nil
}
