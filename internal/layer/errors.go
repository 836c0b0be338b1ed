package layer

import "errors"

// Sentinel errors returned by the Config store. Callers match them with
// errors.Is; the wrapped message carries the rejected value and the set of
// accepted ones.
var (
	// ErrInvalidVersion is returned when a python runtime version is not in
	// the supported set.
	ErrInvalidVersion = errors.New("invalid python version")

	// ErrInvalidStrategy is returned when a packaging strategy is not one of
	// the supported variants.
	ErrInvalidStrategy = errors.New("invalid packaging strategy")
)
