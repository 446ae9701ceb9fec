// Package config loads the editor settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"MaskBoard/internal/export"
	"MaskBoard/internal/state"
)

const (
	appDir   = "maskboard"
	fileName = "config.toml"
)

type Config struct {
	Stage   Stage       `toml:"stage"`
	Style   state.Style `toml:"style"`
	Keys    Keys        `toml:"keys"`
	Export  Export      `toml:"export"`
	Session Session     `toml:"session"`
	Feed    Feed        `toml:"feed"`
	Log     Log         `toml:"log"`
}

type Stage struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	StrokeWidth float64 `toml:"stroke_width"`
}

// Keys binds key names (as reported by fyne, e.g. "N", "Delete") to actions.
// An empty binding disables the shortcut.
type Keys struct {
	Close  string `toml:"close"`
	Toggle string `toml:"toggle"`
	Clear  string `toml:"clear"`
}

type Export struct {
	Dir          string `toml:"dir"`
	RasterFormat string `toml:"raster_format"`
}

type Session struct {
	// ClearOnImageLoad empties the mask whenever a new background is loaded.
	ClearOnImageLoad bool `toml:"clear_on_image_load"`
}

type Feed struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

type Log struct {
	Debug bool `toml:"debug"`
}

func Default() Config {
	return Config{
		Stage:  Stage{Width: 1024, Height: 768, StrokeWidth: 2},
		Style:  state.DefaultStyle,
		Keys:   Keys{Close: "N", Toggle: "E", Clear: "Delete"},
		Export: Export{Dir: ".", RasterFormat: string(export.PNG)},
		Feed:   Feed{Port: 8888, Advertise: true},
	}
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	if c.Stage.Width <= 0 || c.Stage.Height <= 0 {
		return fmt.Errorf("stage size must be positive, got %dx%d", c.Stage.Width, c.Stage.Height)
	}
	if _, err := export.ParseFormat(c.Export.RasterFormat); err != nil {
		return err
	}
	if c.Feed.Enabled && (c.Feed.Port <= 0 || c.Feed.Port > 65535) {
		return fmt.Errorf("feed port %d out of range", c.Feed.Port)
	}
	return nil
}

// Format returns the configured raster format, PNG if unset.
func (c Config) Format() export.Format {
	f, err := export.ParseFormat(c.Export.RasterFormat)
	if err != nil {
		return export.PNG
	}
	return f
}

// Dir returns the per-user config directory.
func Dir() string {
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, appDir)
	}
	return filepath.Join(os.TempDir(), appDir)
}

// Path returns the default config file location.
func Path() string { return filepath.Join(Dir(), fileName) }

// Load reads path on top of the defaults. A missing file is not an error:
// the defaults are written there so the user has something to edit.
func Load(path string) (Config, error) {
	conf := Default()
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[CONFIG] No config at %s, writing defaults", path)
			if werr := Write(path, conf); werr != nil {
				log.Printf("[CONFIG] Could not write defaults: %v", werr)
			}
			return conf, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

func Write(path string, conf Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
