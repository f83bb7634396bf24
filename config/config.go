// Package config loads the keymap file: named accelerators plus an
// optional log directory. TOML is the default format; .yaml and .yml files
// are read as YAML.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"globalhotkey/hotkey"
	"globalhotkey/log"
)

const (
	EnvPath  = "GLOBALHOTKEY_CONFIG"
	FileName = "keymap.toml"
)

type Config struct {
	LogPath  string            `toml:"log_path" yaml:"log_path"`
	Bindings map[string]string `toml:"bindings" yaml:"bindings"`
}

// ResolvePath picks the keymap file: flagPath, then $GLOBALHOTKEY_CONFIG,
// then <user config dir>/globalhotkey/keymap.toml.
func ResolvePath(flagPath string) (string, error) {
	if flagPath != "" {
		return filepath.Abs(flagPath)
	}
	if envPath := os.Getenv(EnvPath); envPath != "" {
		return filepath.Abs(envPath)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "globalhotkey", FileName), nil
}

// Load reads path. A missing file yields an empty Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{Bindings: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the format implied by name's extension.
func Decode(name string, data []byte) (*Config, error) {
	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			log.Warnf("config %s: unknown keys %v", name, undecoded)
		}
	}
	if cfg.Bindings == nil {
		cfg.Bindings = map[string]string{}
	}
	return cfg, nil
}

// Keymap parses every binding. Errors name the offending binding; all of
// them are reported.
func (c *Config) Keymap() (map[string]hotkey.HotKey, error) {
	names := make([]string, 0, len(c.Bindings))
	for name := range c.Bindings {
		names = append(names, name)
	}
	slices.Sort(names)

	keymap := make(map[string]hotkey.HotKey, len(names))
	var errs []error
	for _, name := range names {
		hk, err := hotkey.Parse(c.Bindings[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %q: %w", name, err))
			continue
		}
		keymap[name] = hk
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return keymap, nil
}

// InitLog opens the diagnostics log in LogPath, falling back to
// $GLOBALHOTKEY_LOG_PATH and then the OS default.
func (c *Config) InitLog() error {
	dir, err := log.ResolveDir(c.LogPath)
	if err != nil {
		return fmt.Errorf("resolve log dir: %w", err)
	}
	log.SetDir(dir)
	return log.Init()
}

const debounceDelay = 100 * time.Millisecond

// Watch calls onChange with the reloaded config each time path is written,
// until ctx is done. The directory is watched so editors that replace the
// file are followed. Reload errors are passed to onChange with a nil
// config.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go func() {
		defer w.Close()

		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()
		reload := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			case <-reload:
				cfg, err := Load(path)
				if err != nil {
					log.Warnf("reload %s: %v", path, err)
				}
				onChange(cfg, err)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warnf("watch %s: %v", path, err)
			}
		}
	}()
	return nil
}
