package prefs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathanielng/qdev/internal/layer"
)

func TestConfigDir(t *testing.T) {
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if dir == "" {
		t.Fatal("ConfigDir() returned empty string")
	}
	if !strings.Contains(dir, "qdev") {
		t.Errorf("ConfigDir() = %v, should contain 'qdev'", dir)
	}
}

func TestConfigPath(t *testing.T) {
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("ConfigPath() should end with config.yaml, got %v", path)
	}
}

func TestNewPreferences(t *testing.T) {
	p := NewPreferences()

	if p.Version != 1 {
		t.Errorf("Version = %d, want 1", p.Version)
	}
	if p.Defaults.PythonVersion != layer.DefaultRuntimeVersion {
		t.Errorf("default python version = %q, want %q", p.Defaults.PythonVersion, layer.DefaultRuntimeVersion)
	}
	if p.Defaults.Strategy != "legacy-venv" {
		t.Errorf("default strategy = %q, want legacy-venv", p.Defaults.Strategy)
	}
	if !p.Display.LineNumbers {
		t.Error("line numbers should default to enabled")
	}
}

func TestParse(t *testing.T) {
	data := []byte(`version: 1
defaults:
  python_version: "3.10"
  strategy: fast-venv
  base_name: team-layer
display:
  theme: dracula
  line_numbers: false
`)

	p, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Defaults.PythonVersion != "3.10" {
		t.Errorf("PythonVersion = %q, want 3.10", p.Defaults.PythonVersion)
	}
	if p.Defaults.Strategy != "fast-venv" {
		t.Errorf("Strategy = %q, want fast-venv", p.Defaults.Strategy)
	}
	if p.Display.Theme != "dracula" {
		t.Errorf("Theme = %q, want dracula", p.Display.Theme)
	}
	if p.Display.LineNumbers {
		t.Error("LineNumbers should be false")
	}
}

func TestParse_UnsupportedVersion(t *testing.T) {
	if _, err := Parse([]byte("version: 2\n")); err == nil {
		t.Error("Parse() should reject unknown file versions")
	}
}

func TestApplyTo(t *testing.T) {
	p := NewPreferences()
	p.Defaults.PythonVersion = "3.9"
	p.Defaults.Strategy = "fast-venv"
	p.Defaults.BaseName = "team-layer"

	cfg := layer.NewConfig()
	p.ApplyTo(cfg)

	snap := cfg.Snapshot()
	if snap.RuntimeVersion != "3.9" {
		t.Errorf("RuntimeVersion = %q, want 3.9", snap.RuntimeVersion)
	}
	if snap.Strategy != layer.StrategyFastVenv {
		t.Errorf("Strategy = %v, want fast-venv", snap.Strategy)
	}
	if snap.BaseName != "team-layer" {
		t.Errorf("BaseName = %q, want team-layer", snap.BaseName)
	}
}

func TestApplyTo_InvalidValuesSkipped(t *testing.T) {
	p := NewPreferences()
	p.Defaults.PythonVersion = "2.7"
	p.Defaults.Strategy = "conda"

	cfg := layer.NewConfig()
	p.ApplyTo(cfg)

	snap := cfg.Snapshot()
	if snap.RuntimeVersion != layer.DefaultRuntimeVersion {
		t.Errorf("invalid stored version should be skipped, got %q", snap.RuntimeVersion)
	}
	if snap.Strategy != layer.StrategyLegacyVenv {
		t.Errorf("invalid stored strategy should be skipped, got %v", snap.Strategy)
	}
}
