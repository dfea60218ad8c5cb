package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// SettingsEnv names the environment variable that overrides the settings path.
const SettingsEnv = "KEYIP_SETTINGS"

//go:embed default_settings.yaml
var defaultSettings []byte

// DefaultSettings returns a copy of the bundled settings document.
func DefaultSettings() []byte {
	out := make([]byte, len(defaultSettings))
	copy(out, defaultSettings)
	return out
}

// DefaultSettingsPath returns $KEYIP_SETTINGS when set, otherwise
// ~/.keyip/settings.yaml.
func DefaultSettingsPath() string {
	if p := os.Getenv(SettingsEnv); p != "" {
		return ExpandHome(p)
	}
	return ExpandHome(filepath.Join("~", ".keyip", "settings.yaml"))
}

// EnsureSettings writes the bundled default to path when nothing exists there.
// It reports whether the file was created.
func EnsureSettings(fs afero.Fs, path string) (bool, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, fmt.Errorf("config: stat %q: %w", path, err)
	}
	if exists {
		return false, nil
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("config: create settings dir: %w", err)
	}
	if err := afero.WriteFile(fs, path, defaultSettings, 0o600); err != nil {
		return false, fmt.Errorf("config: seed settings %q: %w", path, err)
	}
	return true, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.  The path
// is returned unchanged when the home directory cannot be determined.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

//Personal.AI order the ending
