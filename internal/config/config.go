package config

import (
	"maps"
	"slices"
)

// Config is the global dataview configuration (config.toml).
type Config struct {
	Display  DisplayConfig           `toml:"display"`
	Database DatabaseConfig          `toml:"database"`
	Screens  map[string]ScreenConfig `toml:"screens,omitempty"`
}

// DisplayConfig controls how tables are paged and rendered.
type DisplayConfig struct {
	PerPage         int    `toml:"per_page" config:"display.per_page" default:"10" min:"1" max:"1000" desc:"Rows per page"`
	MaxVisiblePages int    `toml:"max_visible_pages" config:"display.max_visible_pages" default:"5" min:"1" max:"25" desc:"Page links shown in the footer"`
	Locale          string `toml:"locale" config:"display.locale" default:"es" desc:"Collation locale for sorting text"`
	DateFormat      string `toml:"date_format" config:"display.date_format" default:"2006-01-02 15:04" desc:"Go layout for date columns, relative or relative-short"`
	Accessible      bool   `toml:"accessible" config:"display.accessible" default:"false" desc:"Plain output, no interactive table"`
}

// DatabaseConfig is used by `dataview sql`.
type DatabaseConfig struct {
	URL     string `toml:"url" config:"database.url" desc:"PostgreSQL connection URL"`
	Timeout int    `toml:"timeout" config:"database.timeout" default:"30" min:"1" max:"3600" desc:"Query timeout in seconds"`
}

// Default returns a config with default values and no screen overrides.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			PerPage:         10,
			MaxVisiblePages: 5,
			Locale:          "es",
			DateFormat:      "2006-01-02 15:04",
		},
		Database: DatabaseConfig{
			Timeout: 30,
		},
		Screens: make(map[string]ScreenConfig),
	}
}

// applyDefaults fills values a partial config file left empty.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Display.PerPage == 0 {
		c.Display.PerPage = defaults.Display.PerPage
	}
	if c.Display.MaxVisiblePages == 0 {
		c.Display.MaxVisiblePages = defaults.Display.MaxVisiblePages
	}
	if c.Display.Locale == "" {
		c.Display.Locale = defaults.Display.Locale
	}
	if c.Display.DateFormat == "" {
		c.Display.DateFormat = defaults.Display.DateFormat
	}
	if c.Database.Timeout == 0 {
		c.Database.Timeout = defaults.Database.Timeout
	}
	if c.Screens == nil {
		c.Screens = make(map[string]ScreenConfig)
	}
}

// Screen returns a screen by name: a configured one first, then a
// built-in.
func (c *Config) Screen(name string) (ScreenConfig, bool) {
	if s, ok := c.Screens[name]; ok {
		return s, true
	}
	s, ok := builtinScreens[name]
	return s, ok
}

// ScreenNames lists configured and built-in screens, sorted.
func (c *Config) ScreenNames() []string {
	names := make(map[string]struct{}, len(builtinScreens)+len(c.Screens))
	for name := range builtinScreens {
		names[name] = struct{}{}
	}
	for name := range c.Screens {
		names[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(names))
}

// GetValue returns a config value by key (uses reflection)
func (c *Config) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue sets a config value by key (uses reflection with validation)
func (c *Config) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}
