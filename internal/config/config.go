package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/teasheet/sheet"
)

// Config holds demo application configuration.
type Config struct {
	Sheet SheetConfig
	Log   LogConfig
}

// SheetConfig holds sheet presentation settings. Snap sizes are size
// expressions, see ParseSize.
type SheetConfig struct {
	Edge      string
	Snaps     []string
	Title     string
	CellUnit  float64 `mapstructure:"cell_unit"`
	Handle    bool
	Barrier   bool
	InitialAt int `mapstructure:"initial_at"`
}

// LogConfig holds gesture log settings. The log must go to a file: the
// terminal belongs to the UI.
type LogConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix TEASHEET_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("sheet.edge", "bottom")
	v.SetDefault("sheet.snaps", []string{"fixed:160", "half", "full"})
	v.SetDefault("sheet.title", "teasheet demo")
	v.SetDefault("sheet.cell_unit", 16.0)
	v.SetDefault("sheet.handle", true)
	v.SetDefault("sheet.barrier", true)
	v.SetDefault("sheet.initial_at", 0)
	v.SetDefault("log.path", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TEASHEET_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "teasheet"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TEASHEET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// ParseEdge maps an edge name to the engine edge.
func ParseEdge(s string) (sheet.Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bottom":
		return sheet.EdgeBottom, nil
	case "top":
		return sheet.EdgeTop, nil
	}
	return sheet.EdgeBottom, fmt.Errorf("unknown edge %q", s)
}

// ParseSize parses a size expression: "fixed:<points>", "frac:<0..1>",
// "half", or "full".
func ParseSize(s string) (sheet.Size, error) {
	expr := strings.ToLower(strings.TrimSpace(s))
	switch {
	case expr == "half":
		return sheet.Half, nil
	case expr == "full":
		return sheet.Full(), nil
	case strings.HasPrefix(expr, "fixed:"):
		points, err := strconv.ParseFloat(strings.TrimPrefix(expr, "fixed:"), 64)
		if err != nil {
			return sheet.Size{}, fmt.Errorf("parse size %q: %w", s, err)
		}
		return sheet.Fixed(points), nil
	case strings.HasPrefix(expr, "frac:"):
		f, err := strconv.ParseFloat(strings.TrimPrefix(expr, "frac:"), 64)
		if err != nil {
			return sheet.Size{}, fmt.Errorf("parse size %q: %w", s, err)
		}
		if f <= 0 || f > 1 {
			return sheet.Size{}, fmt.Errorf("parse size %q: fraction out of range", s)
		}
		return sheet.Proportional(f), nil
	}
	return sheet.Size{}, fmt.Errorf("unknown size expression %q", s)
}

// ParseSizes parses a snap size list, preserving order.
func ParseSizes(exprs []string) ([]sheet.Size, error) {
	sizes := make([]sheet.Size, 0, len(exprs))
	for _, e := range exprs {
		size, err := ParseSize(e)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
