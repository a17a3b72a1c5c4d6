package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
)

// Env holds the environment overrides. Empty values leave the file
// config alone.
type Env struct {
	ConfigPath  string `env:"DATAVIEW_CONFIG"`
	DatabaseURL string `env:"DATAVIEW_DATABASE_URL"`
	Locale      string `env:"DATAVIEW_LOCALE"`
	PerPage     int    `env:"DATAVIEW_PER_PAGE"`

	NoColor         string `env:"NO_COLOR"`
	DataviewNoColor string `env:"DATAVIEW_NO_COLOR"`
	Accessible      string `env:"DATAVIEW_ACCESSIBLE"`
}

// ReadEnv parses the process environment.
func ReadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Wrap(err, "parse environment")
	}
	return e, nil
}

// ReadEnvFrom parses an explicit environment, for tests and embedding.
func ReadEnvFrom(environ map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return Env{}, errors.Wrap(err, "parse environment")
	}
	return e, nil
}

// ColorDisabled reports whether NO_COLOR or DATAVIEW_NO_COLOR is set to
// anything.
func (e Env) ColorDisabled() bool {
	return e.NoColor != "" || e.DataviewNoColor != ""
}

// AccessibleMode reports whether DATAVIEW_ACCESSIBLE is "1" or "true".
func (e Env) AccessibleMode() bool {
	return e.Accessible == "1" || e.Accessible == "true"
}

// Apply overlays the environment onto cfg.
func (e Env) Apply(cfg *Config) {
	if e.DatabaseURL != "" {
		cfg.Database.URL = e.DatabaseURL
	}
	if e.Locale != "" {
		cfg.Display.Locale = e.Locale
	}
	if e.PerPage > 0 {
		cfg.Display.PerPage = e.PerPage
	}
	if e.AccessibleMode() {
		cfg.Display.Accessible = true
	}
}
