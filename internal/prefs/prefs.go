// Package prefs persists user preferences for qdev: the defaults pre-filled
// into the generator configuration and the display settings. Preferences are
// stored as YAML in the platform config directory and loaded once per
// process. The generator's own Configuration remains session-scoped; prefs
// only seed its starting values.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nathanielng/qdev/internal/layer"
)

const (
	appName    = "qdev"
	configFile = "config.yaml"
)

var (
	globalPrefs     *Preferences
	globalPrefsOnce sync.Once
	globalPrefsErr  error

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// Preferences is the entire persisted preference file.
type Preferences struct {
	Version int `yaml:"version"`

	// Defaults seed the generator configuration at startup.
	Defaults GeneratorDefaults `yaml:"defaults"`

	// Display controls how scripts are rendered.
	Display DisplayPrefs `yaml:"display"`
}

// GeneratorDefaults are the values pre-filled into a fresh configuration.
type GeneratorDefaults struct {
	PythonVersion string `yaml:"python_version"` // e.g. "3.13"
	Strategy      string `yaml:"strategy"`       // "legacy-venv" or "fast-venv"
	BaseName      string `yaml:"base_name,omitempty"`
}

// DisplayPrefs are rendering preferences.
type DisplayPrefs struct {
	Theme       string `yaml:"theme"`        // chroma style name
	LineNumbers bool   `yaml:"line_numbers"`
}

// NewPreferences returns preferences with default values.
func NewPreferences() *Preferences {
	return &Preferences{
		Version: 1,
		Defaults: GeneratorDefaults{
			PythonVersion: layer.DefaultRuntimeVersion,
			Strategy:      layer.StrategyLegacyVenv.String(),
		},
		Display: DisplayPrefs{
			Theme:       "monokai",
			LineNumbers: true,
		},
	}
}

// ApplyTo seeds a generator configuration from the stored defaults. Invalid
// stored values are skipped silently; the config keeps its own defaults.
func (p *Preferences) ApplyTo(cfg *layer.Config) {
	if layer.IsSupportedVersion(p.Defaults.PythonVersion) {
		_ = cfg.SelectRuntimeVersion(p.Defaults.PythonVersion)
	}
	if s, err := layer.ParseStrategy(p.Defaults.Strategy); err == nil {
		_ = cfg.SelectStrategy(s)
	}
	if p.Defaults.BaseName != "" {
		cfg.SetBaseName(p.Defaults.BaseName)
	}
}

// ConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/qdev or $HOME/.config/qdev
//   - macOS: $HOME/.config/qdev (XDG convention)
//   - Windows: %LOCALAPPDATA%\qdev
func ConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" && runtime.GOOS != "darwin" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// ConfigPath returns the full path to the preference file.
func ConfigPath() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load loads preferences from disk. A missing file yields defaults.
// Thread-safe; repeated calls return the same instance.
func Load() (*Preferences, error) {
	globalPrefsOnce.Do(func() {
		globalPrefs, globalPrefsErr = loadFromDisk()
	})
	return globalPrefs, globalPrefsErr
}

func loadFromDisk() (*Preferences, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return NewPreferences(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preference file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a preference file, filling omitted sections with defaults.
func Parse(data []byte) (*Preferences, error) {
	p := NewPreferences()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse preference file: %w", err)
	}
	if p.Version != 1 {
		return nil, fmt.Errorf("unsupported preference file version: %d (expected 1)", p.Version)
	}
	return p, nil
}

// Save writes the preferences to disk atomically (tmp file + rename).
func (p *Preferences) Save() error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	header := []byte(`# qdev preference file.
# Stores generator defaults and display settings.
#
# Location: ` + configPath + `

`)
	data = append(header, data...)

	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary preference file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save preference file: %w", err)
	}

	return nil
}
