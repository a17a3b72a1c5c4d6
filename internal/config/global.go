package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
)

// DefaultPath returns the path to the global config file.
// Follows XDG Base Directory spec on Linux, platform conventions elsewhere
func DefaultPath() string {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "dataview")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "dataview")
	default: // Linux and others - follow XDG
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "dataview")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "dataview")
		}
	}

	return filepath.Join(configDir, "config.toml")
}

// Path returns the config file in use: DATAVIEW_CONFIG when set, the
// platform default otherwise.
func Path(env Env) string {
	if env.ConfigPath != "" {
		return env.ConfigPath
	}
	return DefaultPath()
}

// Load reads the config file, applies environment overrides, and fills
// defaults. A missing file is not an error.
func Load() (*Config, Env, error) {
	env, err := ReadEnv()
	if err != nil {
		return nil, Env{}, err
	}
	cfg, err := LoadFrom(Path(env))
	if err != nil {
		return nil, env, err
	}
	env.Apply(cfg)
	return cfg, env, nil
}

// LoadFrom reads one config file, creating defaults if it doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

// Validate checks every configured screen.
func (c *Config) Validate() error {
	for _, name := range c.ScreenNames() {
		screen, _ := c.Screen(name)
		if _, err := screen.Schema(); err != nil {
			return errors.Wrapf(err, "screen %s", name)
		}
	}
	return nil
}

// SaveTo writes the config file, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config file")
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return nil
}
