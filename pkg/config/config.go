// Package config loads vamsha settings from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/vamsha/config.toml, falling back to
// ~/.config/vamsha/config.toml. A missing file is not an error. Every key
// is optional:
//
//	language = "Tamil"
//
//	[text]
//	api_key = "..."
//	model = "gemini-3-flash-preview"
//
//	[render]
//	width = 1024
//	height = 768
//	script_font = "NotoSansDevanagari-Regular.ttf"
//
//	[export]
//	dir = "~/Pictures"
//	product = "VamshaVriksha"
//	quality = 95
//	padding = 50
//
// GEMINI_API_KEY (or API_KEY) and VAMSHA_MODEL override the file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/export"
	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/layout"
	"github.com/matzehuels/vamsha/pkg/textgen"
)

const appName = "vamsha"

// Environment variables consulted by [Load].
const (
	EnvAPIKey         = "GEMINI_API_KEY"
	EnvAPIKeyFallback = "API_KEY"
	EnvModel          = "VAMSHA_MODEL"
)

// Config is the merged configuration.
type Config struct {
	Language string `toml:"language"`
	Text     Text   `toml:"text"`
	Render   Render `toml:"render"`
	Export   Export `toml:"export"`

	// Path is the file the configuration was read from, "" when none existed.
	Path string `toml:"-"`
}

// Text configures the generative-text service.
type Text struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// Render configures the drawing surface and fonts.
type Render struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	ScriptFont string  `toml:"script_font"`
}

// Export configures timestamped exports.
type Export struct {
	Dir     string  `toml:"dir"`
	Product string  `toml:"product"`
	Quality int     `toml:"quality"`
	Padding float64 `toml:"padding"` // must be positive
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Language: string(family.DefaultLanguage),
		Text:     Text{Model: textgen.DefaultModel},
		Render:   Render{Width: layout.DefaultWidth, Height: layout.DefaultHeight},
		Export: Export{
			Product: export.DefaultProduct,
			Quality: export.DefaultQuality,
			Padding: export.DefaultPadding,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads path, or [DefaultPath] when path is empty, and applies
// environment overrides. An explicitly named file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg := Default()
			cfg.applyEnv()
			return cfg, cfg.Validate()
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
		cfg.Path = path
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	default:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	cfg.applyEnv()
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	cfg.Render.ScriptFont = expandHome(cfg.Render.ScriptFont)
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.Text.APIKey = key
	} else if key := os.Getenv(EnvAPIKeyFallback); key != "" {
		c.Text.APIKey = key
	}
	if model := os.Getenv(EnvModel); model != "" {
		c.Text.Model = model
	}
}

// Validate checks value ranges and normalises the language name.
func (c *Config) Validate() error {
	lang, err := family.ParseLanguage(c.Language)
	if err != nil {
		return err
	}
	c.Language = string(lang)

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render size must be positive, got %gx%g", c.Render.Width, c.Render.Height)
	}
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidInput, "export quality must be 1..100, got %d", c.Export.Quality)
	}
	if c.Export.Padding <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "export padding must be positive")
	}
	return errors.ValidateProductName(c.Export.Product)
}

// Lang returns the configured language.
func (c Config) Lang() family.Language {
	return family.Language(c.Language)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
