package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"tilde with nested path", "~/music/library/albums", filepath.Join(home, "music", "library", "albums")},
		{"absolute path unchanged", "/usr/local/music", "/usr/local/music"},
		{"relative path unchanged", "music/albums", "music/albums"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
		{"tilde with slash", "~/", filepath.Join(home, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	paths := configPaths()

	if len(paths) == 0 {
		t.Error("configPaths() returned empty slice")
	}

	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "wavesd", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() { _ = os.Chdir(originalWd) }()

	if err := os.WriteFile("config.toml", []byte(""), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxLength != defaultMaxLength {
		t.Errorf("MaxLength = %d, want default %d", cfg.MaxLength, defaultMaxLength)
	}
	if cfg.HashMult != defaultHashMult {
		t.Errorf("HashMult = %d, want default %d", cfg.HashMult, defaultHashMult)
	}
	if cfg.LibraryPath == "" {
		t.Error("LibraryPath should default to an XDG data path when unset")
	}
}

func TestLoad_BasicConfig(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() { _ = os.Chdir(originalWd) }()

	configContent := `
max_length = 512
hash_mult = 8
library_sources = ["/music", "~/library"]
`
	if err := os.WriteFile("config.toml", []byte(configContent), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxLength != 512 {
		t.Errorf("MaxLength = %d, want 512", cfg.MaxLength)
	}
	if cfg.HashMult != 8 {
		t.Errorf("HashMult = %d, want 8", cfg.HashMult)
	}
	if len(cfg.LibrarySources) != 2 || cfg.LibrarySources[0] != "/music" {
		t.Errorf("LibrarySources = %v", cfg.LibrarySources)
	}
	home, _ := os.UserHomeDir()
	if cfg.LibrarySources[1] != filepath.Join(home, "library") {
		t.Errorf("LibrarySources[1] = %q, want expanded ~/library", cfg.LibrarySources[1])
	}
}

func TestLoad_InvalidMaxLengthFallsBackToDefault(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() { _ = os.Chdir(originalWd) }()

	if err := os.WriteFile("config.toml", []byte("max_length = -5\n"), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxLength != defaultMaxLength {
		t.Errorf("MaxLength with invalid value = %d, want default %d", cfg.MaxLength, defaultMaxLength)
	}
}
