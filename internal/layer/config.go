package layer

import (
	"fmt"
	"strings"
)

// SupportedVersions lists the python runtime versions a generated script can
// target, oldest first. Exactly one is selected at any time.
var SupportedVersions = []string{"3.9", "3.10", "3.11", "3.12", "3.13"}

// Defaults substituted at generation time when the corresponding free-text
// field is empty or whitespace-only.
const (
	// DefaultRuntimeVersion is the version selected in a fresh Config.
	DefaultRuntimeVersion = "3.13"

	// DefaultDependency is the manifest line used when no dependencies were
	// entered.
	DefaultDependency = "boto3"

	// DefaultBaseName is the archive base name used when none was entered.
	DefaultBaseName = "layer"
)

// IsSupportedVersion reports whether v is in SupportedVersions.
func IsSupportedVersion(v string) bool {
	for _, s := range SupportedVersions {
		if s == v {
			return true
		}
	}
	return false
}

// Snapshot is an immutable copy of the store's state, taken at notification
// time and handed to Generate.
type Snapshot struct {
	// RuntimeVersion is the selected python version, e.g. "3.11". Always a
	// member of SupportedVersions.
	RuntimeVersion string

	// Strategy is the selected packaging strategy.
	Strategy Strategy

	// DependencySpec is the free-text dependency list, one requirement per
	// line. May be empty; Generate substitutes DefaultDependency.
	DependencySpec string

	// BaseName is the free-text archive base name. May be empty; Generate
	// substitutes DefaultBaseName.
	BaseName string
}

// Config holds the current generator selections and notifies a subscriber on
// every successful change. The zero value is not usable; call NewConfig.
type Config struct {
	runtimeVersion string
	strategy       Strategy
	dependencySpec string
	baseName       string

	onChange func(Snapshot)
}

// NewConfig returns a store with the default runtime version and the
// legacy-venv strategy selected.
func NewConfig() *Config {
	return &Config{
		runtimeVersion: DefaultRuntimeVersion,
		strategy:       StrategyLegacyVenv,
	}
}

// Subscribe registers fn to be called synchronously after every successful
// update. A single subscriber is supported; a later call replaces the
// earlier one. Pass nil to unsubscribe.
func (c *Config) Subscribe(fn func(Snapshot)) {
	c.onChange = fn
}

// Snapshot returns a copy of the current state.
func (c *Config) Snapshot() Snapshot {
	return Snapshot{
		RuntimeVersion: c.runtimeVersion,
		Strategy:       c.strategy,
		DependencySpec: c.dependencySpec,
		BaseName:       c.baseName,
	}
}

// SelectRuntimeVersion replaces the selected python version. Unknown
// versions are rejected with ErrInvalidVersion and the store is left
// unchanged, with no notification. Reselecting the current version is a
// no-op that still notifies, so the display refreshes.
func (c *Config) SelectRuntimeVersion(v string) error {
	if !IsSupportedVersion(v) {
		return fmt.Errorf("%w: %q (supported: %s)",
			ErrInvalidVersion, v, strings.Join(SupportedVersions, ", "))
	}
	c.runtimeVersion = v
	c.notify()
	return nil
}

// SelectStrategy replaces the selected packaging strategy. Values outside
// the closed set are rejected with ErrInvalidStrategy and the store is left
// unchanged, with no notification.
func (c *Config) SelectStrategy(s Strategy) error {
	if !s.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStrategy, int(s))
	}
	c.strategy = s
	c.notify()
	return nil
}

// SetDependencySpec replaces the dependency list. Any string is accepted,
// including empty.
func (c *Config) SetDependencySpec(text string) {
	c.dependencySpec = text
	c.notify()
}

// SetBaseName replaces the archive base name. Any string is accepted,
// including empty.
func (c *Config) SetBaseName(text string) {
	c.baseName = text
	c.notify()
}

func (c *Config) notify() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}
