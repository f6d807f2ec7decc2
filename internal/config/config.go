package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is wavesd's configuration, loaded from an optional toml file
// layered with built-in defaults.
type Config struct {
	MaxLength      int      `koanf:"max_length"`     // queue capacity
	HashMult       int      `koanf:"hash_mult"`       // IdMap sparsity factor
	LibraryPath    string   `koanf:"library_path"`    // sqlite catalog file
	StatePath      string   `koanf:"state_path"`      // sqlite snapshot file
	LibrarySources []string `koanf:"library_sources"` // paths to scan for music
}

const (
	defaultMaxLength = 8192
	defaultHashMult  = 4
)

// Load reads config files in order of priority (last wins), applies
// defaults for anything left unset, and expands ~ in path fields.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		MaxLength: defaultMaxLength,
		HashMult:  defaultHashMult,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.MaxLength <= 0 {
		cfg.MaxLength = defaultMaxLength
	}
	if cfg.HashMult <= 0 {
		cfg.HashMult = defaultHashMult
	}

	if cfg.LibraryPath == "" {
		path, err := xdg.DataFile(filepath.Join("wavesd", "library.db"))
		if err != nil {
			return nil, err
		}
		cfg.LibraryPath = path
	} else {
		cfg.LibraryPath = expandPath(cfg.LibraryPath)
	}

	if cfg.StatePath != "" {
		cfg.StatePath = expandPath(cfg.StatePath)
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}

	return cfg, nil
}

func configPaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wavesd", "config.toml"))
	}
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
