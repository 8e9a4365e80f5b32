// Package settings defines the contract for the mutable store of per-feature
// enablement flags and configuration values.
//
// The engine treats the store as an external collaborator: it only ever talks
// to the Settings interface. A reference in-memory implementation lives in
// the memsettings package.
package settings

import "errors"

// ErrChangesPrevented is returned by every mutating operation once
// PreventChanges has been called. The activation engine locks the store after
// the activation pass completes; any later write attempt is a defect in the
// caller.
var ErrChangesPrevented = errors.New("settings: changes prevented after configuration was locked")

// Settings is the per-feature flag and value store shared by every feature
// during the resolve and activate passes.
//
// Access is single-threaded by contract: callers must not mutate the store
// concurrently. Implementations are not required to synchronize.
type Settings interface {
	// IsFeatureEnabled reports whether the named feature is currently
	// enabled or active.
	IsFeatureEnabled(name string) bool

	// EnableFeatureByDefault enables the named feature unless a stronger
	// state (active or deactivated) has already been recorded. Calling it
	// repeatedly for the same feature is a no-op.
	EnableFeatureByDefault(name string) error

	// EnableFeature force-enables the named feature, overriding an earlier
	// default or disable.
	EnableFeature(name string) error

	// DisableFeature marks the named feature as deactivated so the resolver
	// will never select it.
	DisableFeature(name string) error

	// MarkFeatureAsActive records that the named feature passed activation.
	MarkFeatureAsActive(name string) error

	// MarkFeatureAsDeactivated records that the named feature failed
	// activation (unmet dependencies or prerequisites).
	MarkFeatureAsDeactivated(name string) error

	// PreventChanges locks the store. Every subsequent mutation fails with
	// ErrChangesPrevented. Locking is one-way.
	PreventChanges()

	// Get returns the configuration value stored under key.
	Get(key string) (any, bool)

	// Set stores a configuration value under key, replacing any existing one.
	Set(key string, value any) error

	// SetDefault stores a configuration value under key only when no value
	// exists yet. Feature ConfigureDefaults hooks use it so host-supplied
	// overrides win.
	SetDefault(key string, value any) error
}
