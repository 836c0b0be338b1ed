package layer

import (
	"fmt"
	"strings"
)

// Strategy selects the dependency-management tooling used inside a generated
// script. The set is closed: adding a strategy means adding a branch to the
// generator, so every switch over Strategy stays exhaustively checkable.
type Strategy int

const (
	// StrategyLegacyVenv creates the environment with "python -m venv" and
	// installs dependencies with pip. Works with a stock python install.
	StrategyLegacyVenv Strategy = iota

	// StrategyFastVenv creates the environment and installs dependencies
	// with uv. Much faster, but requires uv on the machine running the
	// script.
	StrategyFastVenv
)

// strategies lists every supported variant, in display order.
var strategies = []Strategy{StrategyLegacyVenv, StrategyFastVenv}

// Strategies returns all supported strategies in display order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// String returns the stable identifier for the strategy ("legacy-venv" or
// "fast-venv"). This is the form accepted by ParseStrategy and used on the
// command line.
func (s Strategy) String() string {
	switch s {
	case StrategyLegacyVenv:
		return "legacy-venv"
	case StrategyFastVenv:
		return "fast-venv"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Tag returns the short token embedded in archive and script filenames
// ("pip" or "uv").
func (s Strategy) Tag() string {
	switch s {
	case StrategyLegacyVenv:
		return "pip"
	case StrategyFastVenv:
		return "uv"
	default:
		return "unknown"
	}
}

// Description returns a one-line human-readable summary for menus.
func (s Strategy) Description() string {
	switch s {
	case StrategyLegacyVenv:
		return "python -m venv + pip (works everywhere)"
	case StrategyFastVenv:
		return "uv venv + uv pip (fast, requires uv)"
	default:
		return "unknown strategy"
	}
}

// valid reports whether s is one of the supported variants. Guards against
// callers converting arbitrary ints.
func (s Strategy) valid() bool {
	return s == StrategyLegacyVenv || s == StrategyFastVenv
}

// ParseStrategy converts a string identifier to a Strategy. Accepts the
// canonical names ("legacy-venv", "fast-venv") and the short tags
// ("pip", "uv") for command-line convenience.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy-venv", "pip":
		return StrategyLegacyVenv, nil
	case "fast-venv", "uv":
		return StrategyFastVenv, nil
	default:
		return 0, fmt.Errorf("%w: %q (supported: legacy-venv, fast-venv)", ErrInvalidStrategy, name)
	}
}
